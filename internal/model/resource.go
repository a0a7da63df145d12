package model

// Hypermedia types for HAL-style responses.

type Link struct {
	Href string `json:"href"`
}

type Links map[string]Link

// LectureResource is a lecture response plus its hypermedia links.
type LectureResource struct {
	LectureResponse
	Links Links `json:"_links"`
}

type PageMetadata struct {
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
}

type EmbeddedLectures struct {
	Lectures []LectureResource `json:"lectures"`
}

type PagedLectures struct {
	Embedded EmbeddedLectures `json:"_embedded"`
	Links    Links            `json:"_links"`
	Page     PageMetadata     `json:"page"`
}

// ErrorsResource is the 400 payload: every recorded error, field entries
// first, plus a link back to the index.
type ErrorsResource struct {
	Errors []ErrorEntry `json:"errors"`
	Links  Links        `json:"_links"`
}

type IndexResource struct {
	Links Links `json:"_links"`
}
