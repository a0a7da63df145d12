// Package validation holds the business rules applied to lecture
// submissions after structural field checks pass.
package validation

import (
	"github.com/myrestapi/backend/internal/model"
)

// LectureValidator records business-rule violations into an error sink.
// It never rejects by returning an error and never mutates the submission.
type LectureValidator struct{}

func NewLectureValidator() *LectureValidator {
	return &LectureValidator{}
}

// Validate appends field-level and form-level errors for req. All rules are
// evaluated; nothing short-circuits. MaxPrice of zero means "no cap" and
// disables the price rule entirely.
func (v *LectureValidator) Validate(req *model.LectureRequest, errs *model.Errors) {
	if req.MaxPrice != 0 && req.BasePrice > req.MaxPrice {
		errs.RejectValue("basePrice", "wrongPrice", "BasePrice is wrong", req.BasePrice)
		errs.RejectValue("maxPrice", "wrongPrice", "MaxPrice is wrong", req.MaxPrice)
		errs.Reject("wrongPrices", "BasePrice must not be greater than MaxPrice")
	}

	end := req.EndLectureDateTime
	if end.Before(req.BeginLectureDateTime) ||
		end.Before(req.CloseEnrollmentDateTime) ||
		end.Before(req.BeginEnrollmentDateTime) {
		errs.RejectValue("endLectureDateTime", "wrongDateTime",
			"endLectureDateTime is earlier than a preceding date", end)
	}

	// Overlaps with the end-time rule for some inputs; both are kept.
	begin := req.BeginLectureDateTime
	if begin.Before(req.CloseEnrollmentDateTime) ||
		begin.Before(req.BeginEnrollmentDateTime) ||
		begin.After(req.EndLectureDateTime) {
		errs.RejectValue("beginLectureDateTime", "wrongDateTime",
			"beginLectureDateTime conflicts with the enrollment or end dates", begin)
	}
}
