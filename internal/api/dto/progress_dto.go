package dto

// DTOs for progress-related operations in the HTTP API

// UpdateProgressRequest accepts either a raw percent or a pages pair,
// matching the two entry modes of the progress form.
type UpdateProgressRequest struct {
	Percent    *float64 `json:"percent,omitempty"`
	PagesRead  *int     `json:"pages_read,omitempty"`
	TotalPages *int     `json:"total_pages,omitempty"`
}

type ProgressResponse struct {
	BookID  int64   `json:"book_id"`
	Percent float64 `json:"percent"`
}
