package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/myrestapi/backend/internal/db"
	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/validation"
)

type LectureRepo interface {
	InsertLecture(ctx context.Context, l *model.Lecture) (*model.Lecture, error)
	GetLecture(ctx context.Context, id int64) (*model.Lecture, error)
	UpdateLecture(ctx context.Context, l *model.Lecture) (*model.Lecture, error)
	ListLectures(ctx context.Context, offset, limit int) ([]model.Lecture, error)
	CountLectures(ctx context.Context) (int64, error)
}

type LectureService struct {
	repo     LectureRepo
	validate *validator.Validate
	rules    *validation.LectureValidator
}

func NewLectureService(repo LectureRepo, validate *validator.Validate, rules *validation.LectureValidator) *LectureService {
	return &LectureService{repo: repo, validate: validate, rules: rules}
}

// LecturePage is one page of records with the total for page metadata.
type LecturePage struct {
	Lectures      []model.Lecture
	TotalElements int64
	Number        int
	Size          int
}

// Create validates the submission, maps it to a record with derived fields
// recomputed, attaches the owner, and persists. Nothing is persisted on a
// validation failure.
func (s *LectureService) Create(ctx context.Context, req *model.LectureRequest, owner *model.UserInfo) (*model.Lecture, error) {
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	lecture := req.ToLecture()
	lecture.ApplyDerivedFields()
	lecture.Owner = owner

	return s.repo.InsertLecture(ctx, lecture)
}

// Update merges the submission onto the existing record and persists.
// Fails with ErrNotFound when absent and ErrForbidden when the record has
// an owner other than the requester.
func (s *LectureService) Update(ctx context.Context, id int64, req *model.LectureRequest, requester *model.UserInfo) (*model.Lecture, error) {
	existing, err := s.repo.GetLecture(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, fmt.Errorf("%w: Id = %d Lecture Not Found", ErrNotFound, id)
		}
		return nil, err
	}

	if existing.Owner != nil && !isOwner(existing, requester) {
		return nil, fmt.Errorf("%w: lecture belongs to another user", ErrForbidden)
	}

	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	req.Apply(existing)
	existing.ApplyDerivedFields()

	return s.repo.UpdateLecture(ctx, existing)
}

// Get returns the record plus a capability flag telling whether the
// requester may ask for a subsequent update.
func (s *LectureService) Get(ctx context.Context, id int64, requester *model.UserInfo) (*model.Lecture, bool, error) {
	lecture, err := s.repo.GetLecture(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, false, fmt.Errorf("%w: Lecture Not Found", ErrNotFound)
		}
		return nil, false, err
	}
	return lecture, isOwner(lecture, requester), nil
}

// List returns one page of lectures with the total element count.
func (s *LectureService) List(ctx context.Context, page, size int) (*LecturePage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	lectures, err := s.repo.ListLectures(ctx, page*size, size)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountLectures(ctx)
	if err != nil {
		return nil, err
	}

	return &LecturePage{
		Lectures:      lectures,
		TotalElements: total,
		Number:        page,
		Size:          size,
	}, nil
}

// validateRequest runs the structural stage first and, only when it is
// clean, the business rules. Either stage failing yields the full list of
// recorded errors.
func (s *LectureService) validateRequest(req *model.LectureRequest) error {
	errs := model.NewErrors("lectureRequest")

	validation.Collect(s.validate.Struct(req), errs)
	if errs.HasErrors() {
		return &ValidationError{Errors: errs}
	}

	s.rules.Validate(req, errs)
	if errs.HasErrors() {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// isOwner is the capability check behind the update link: true only when
// the record has an owner and the requester is that owner.
func isOwner(l *model.Lecture, requester *model.UserInfo) bool {
	return l.Owner != nil && requester != nil && l.Owner.Email == requester.Email
}
