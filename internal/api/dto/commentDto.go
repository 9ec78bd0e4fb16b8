package dto

import (
	"time"

	"github.com/JEerdekens/bookclub/internal/api/models"
)

type CreateCommentRequest struct {
	Text    string `json:"text" binding:"required"`
	Spoiler bool   `json:"spoiler"`
}

type UpdateCommentRequest struct {
	Text    string `json:"text" binding:"required"`
	Spoiler bool   `json:"spoiler"`
}

type CommentResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	Spoiler   bool      `json:"spoiler"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromModelToCommentResponse(comment *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        comment.ID,
		Text:      comment.Text,
		Spoiler:   comment.Spoiler,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
	if comment.User.ID != "" {
		resp.Username = comment.User.Username
	}
	return resp
}
