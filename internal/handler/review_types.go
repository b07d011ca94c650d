package handler

import (
	"time"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	BookID  uuid.UUID `json:"book_id" binding:"required"`
	Rating  int       `json:"rating" binding:"required,min=1,max=5"`
	Comment string    `json:"comment" binding:"required"`
}

type AddReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" binding:"omitempty,min=1"`
}

type ReviewUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type Review struct {
	ID        uuid.UUID  `json:"id"`
	BookID    uuid.UUID  `json:"book_id"`
	User      ReviewUser `json:"user"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type ListReviewsResponse struct {
	Data       []Review   `json:"data"`
	Pagination Pagination `json:"pagination"`
}
