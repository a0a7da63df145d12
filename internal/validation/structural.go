package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/myrestapi/backend/internal/model"
)

// New builds the struct validator used for the structural stage. Field
// names in reported errors follow the json tag so they match the wire
// representation of the submission.
func New() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}

// Collect folds validator output into the error sink as field-level
// entries. The error code is the failed tag, mirroring how business rules
// use short codes.
func Collect(err error, errs *model.Errors) {
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		errs.Reject("invalid", err.Error())
		return
	}

	for _, fe := range fieldErrs {
		message := fmt.Sprintf("Field validation failed on the '%s' tag", fe.Tag())
		rejected := fe.Value()
		if isZero(rejected) {
			rejected = nil
		}
		errs.RejectValue(fe.Field(), fe.Tag(), message, rejected)
	}
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}
