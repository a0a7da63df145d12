package handler

import (
	"fmt"

	"github.com/myrestapi/backend/internal/model"
	"github.com/myrestapi/backend/internal/service"
)

const (
	indexPath    = "/api"
	lecturesPath = "/api/lectures"
)

func lectureSelfHref(id int64) string {
	return fmt.Sprintf("%s/%d", lecturesPath, id)
}

// toLectureResponse copies the lecture fields into the outward shape. Only
// the owner's email crosses the boundary; the rest of the account never
// does.
func toLectureResponse(l *model.Lecture) model.LectureResponse {
	res := model.LectureResponse{
		ID:                      l.ID,
		Name:                    l.Name,
		Description:             l.Description,
		BeginEnrollmentDateTime: l.BeginEnrollmentDateTime,
		CloseEnrollmentDateTime: l.CloseEnrollmentDateTime,
		BeginLectureDateTime:    l.BeginLectureDateTime,
		EndLectureDateTime:      l.EndLectureDateTime,
		Location:                l.Location,
		BasePrice:               l.BasePrice,
		MaxPrice:                l.MaxPrice,
		LimitOfEnrollment:       l.LimitOfEnrollment,
		Offline:                 l.Offline,
		Free:                    l.Free,
		LectureStatus:           l.LectureStatus,
	}
	if l.Owner != nil {
		res.Email = l.Owner.Email
	}
	return res
}

// newLectureResource wraps a lecture with its self link; callers add the
// conditional links their capability flags allow.
func newLectureResource(l *model.Lecture) model.LectureResource {
	return model.LectureResource{
		LectureResponse: toLectureResponse(l),
		Links: model.Links{
			"self": {Href: lectureSelfHref(l.ID)},
		},
	}
}

// newPagedLectures assembles a listing page. The create link is attached
// only for authenticated requesters.
func newPagedLectures(page *service.LecturePage, authenticated bool) model.PagedLectures {
	resources := make([]model.LectureResource, 0, len(page.Lectures))
	for i := range page.Lectures {
		resources = append(resources, newLectureResource(&page.Lectures[i]))
	}

	totalPages := 0
	if page.Size > 0 {
		totalPages = int((page.TotalElements + int64(page.Size) - 1) / int64(page.Size))
	}

	pageHref := func(n int) string {
		return fmt.Sprintf("%s?page=%d&size=%d", lecturesPath, n, page.Size)
	}

	links := model.Links{
		"self": {Href: pageHref(page.Number)},
	}
	if totalPages > 0 {
		links["first"] = model.Link{Href: pageHref(0)}
		links["last"] = model.Link{Href: pageHref(totalPages - 1)}
	}
	if page.Number > 0 {
		links["prev"] = model.Link{Href: pageHref(page.Number - 1)}
	}
	if page.Number < totalPages-1 {
		links["next"] = model.Link{Href: pageHref(page.Number + 1)}
	}
	if authenticated {
		links["create-lecture"] = model.Link{Href: lecturesPath}
	}

	return model.PagedLectures{
		Embedded: model.EmbeddedLectures{Lectures: resources},
		Links:    links,
		Page: model.PageMetadata{
			Size:          page.Size,
			TotalElements: page.TotalElements,
			TotalPages:    totalPages,
			Number:        page.Number,
		},
	}
}

// newErrorsResource shapes a validation failure: one entry per field error
// followed by one per form error, plus a link back to the index.
func newErrorsResource(errs *model.Errors) model.ErrorsResource {
	return model.ErrorsResource{
		Errors: errs.Entries(),
		Links: model.Links{
			"index": {Href: indexPath},
		},
	}
}
