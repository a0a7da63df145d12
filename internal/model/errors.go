package model

import "fmt"

// ErrorEntry is one recorded validation failure. Field is empty for
// form-level entries; that absence is what lets consumers tell the two
// scopes apart.
type ErrorEntry struct {
	Field          string `json:"field,omitempty"`
	ObjectName     string `json:"objectName"`
	Code           string `json:"code"`
	DefaultMessage string `json:"defaultMessage"`
	RejectedValue  string `json:"rejectedValue,omitempty"`
}

// Errors collects field-level and form-level validation failures for one
// submission. Validators only append; the sink is never cleared.
type Errors struct {
	objectName   string
	fieldErrors  []ErrorEntry
	globalErrors []ErrorEntry
}

func NewErrors(objectName string) *Errors {
	return &Errors{objectName: objectName}
}

// RejectValue records a field-level error. rejected may be nil when no
// offending value applies.
func (e *Errors) RejectValue(field, code, message string, rejected any) {
	entry := ErrorEntry{
		Field:          field,
		ObjectName:     e.objectName,
		Code:           code,
		DefaultMessage: message,
	}
	if rejected != nil {
		entry.RejectedValue = fmt.Sprintf("%v", rejected)
	}
	e.fieldErrors = append(e.fieldErrors, entry)
}

// Reject records a form-level error.
func (e *Errors) Reject(code, message string) {
	e.globalErrors = append(e.globalErrors, ErrorEntry{
		ObjectName:     e.objectName,
		Code:           code,
		DefaultMessage: message,
	})
}

func (e *Errors) HasErrors() bool {
	return len(e.fieldErrors) > 0 || len(e.globalErrors) > 0
}

func (e *Errors) FieldErrors() []ErrorEntry {
	return e.fieldErrors
}

func (e *Errors) GlobalErrors() []ErrorEntry {
	return e.globalErrors
}

// Entries returns every recorded error, field-level entries first.
func (e *Errors) Entries() []ErrorEntry {
	out := make([]ErrorEntry, 0, len(e.fieldErrors)+len(e.globalErrors))
	out = append(out, e.fieldErrors...)
	out = append(out, e.globalErrors...)
	return out
}
