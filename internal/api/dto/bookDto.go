package dto

type CreateBookRequest struct {
	Title  string `json:"title" binding:"required"`
	Author string `json:"author"`
}
