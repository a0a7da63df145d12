package model

import (
	"strings"
	"time"
)

type LectureStatus string

const (
	StatusDraft     LectureStatus = "DRAFT"
	StatusPublished LectureStatus = "PUBLISHED"
	StatusClosed    LectureStatus = "CLOSED"
)

// Lecture is the persisted course listing. Offline and Free are derived
// from Location and the two prices and are never set directly.
type Lecture struct {
	ID                      int64
	Name                    string
	Description             string
	BeginEnrollmentDateTime time.Time
	CloseEnrollmentDateTime time.Time
	BeginLectureDateTime    time.Time
	EndLectureDateTime      time.Time
	Location                string
	BasePrice               int
	MaxPrice                int
	LimitOfEnrollment       int
	Offline                 bool
	Free                    bool
	LectureStatus           LectureStatus
	Owner                   *UserInfo
}

// ApplyDerivedFields recomputes Free and Offline from the current prices
// and location. Idempotent, no I/O.
func (l *Lecture) ApplyDerivedFields() {
	l.Free = l.BasePrice == 0 && l.MaxPrice == 0
	l.Offline = strings.TrimSpace(l.Location) != ""
}

// LectureRequest is the client submission for create and update.
type LectureRequest struct {
	Name                    string    `json:"name" validate:"required"`
	Description             string    `json:"description"`
	BeginEnrollmentDateTime time.Time `json:"beginEnrollmentDateTime" validate:"required"`
	CloseEnrollmentDateTime time.Time `json:"closeEnrollmentDateTime" validate:"required"`
	BeginLectureDateTime    time.Time `json:"beginLectureDateTime" validate:"required"`
	EndLectureDateTime      time.Time `json:"endLectureDateTime" validate:"required"`
	Location                string    `json:"location"`
	BasePrice               int       `json:"basePrice" validate:"min=0"`
	MaxPrice                int       `json:"maxPrice" validate:"min=0"`
	LimitOfEnrollment       int       `json:"limitOfEnrollment" validate:"min=0"`
}

// ToLecture builds a new lecture record from a submission. Derived fields
// are left for the service to recompute.
func (r *LectureRequest) ToLecture() *Lecture {
	l := &Lecture{LectureStatus: StatusDraft}
	r.Apply(l)
	return l
}

// Apply overwrites the mapped fields of an existing record with the
// submission values. Identifier, status, owner and derived fields are kept.
func (r *LectureRequest) Apply(l *Lecture) {
	l.Name = r.Name
	l.Description = r.Description
	l.BeginEnrollmentDateTime = r.BeginEnrollmentDateTime
	l.CloseEnrollmentDateTime = r.CloseEnrollmentDateTime
	l.BeginLectureDateTime = r.BeginLectureDateTime
	l.EndLectureDateTime = r.EndLectureDateTime
	l.Location = r.Location
	l.BasePrice = r.BasePrice
	l.MaxPrice = r.MaxPrice
	l.LimitOfEnrollment = r.LimitOfEnrollment
}

// LectureResponse is the outward representation of a lecture. Email carries
// the owner's address when the lecture has one; no other owner field is
// ever exposed.
type LectureResponse struct {
	ID                      int64         `json:"id"`
	Name                    string        `json:"name"`
	Description             string        `json:"description"`
	BeginEnrollmentDateTime time.Time     `json:"beginEnrollmentDateTime"`
	CloseEnrollmentDateTime time.Time     `json:"closeEnrollmentDateTime"`
	BeginLectureDateTime    time.Time     `json:"beginLectureDateTime"`
	EndLectureDateTime      time.Time     `json:"endLectureDateTime"`
	Location                string        `json:"location"`
	BasePrice               int           `json:"basePrice"`
	MaxPrice                int           `json:"maxPrice"`
	LimitOfEnrollment       int           `json:"limitOfEnrollment"`
	Offline                 bool          `json:"offline"`
	Free                    bool          `json:"free"`
	LectureStatus           LectureStatus `json:"lectureStatus"`
	Email                   string        `json:"email,omitempty"`
}
