package handler

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required,max=200"`
	Author        string  `json:"author" binding:"required,max=200"`
	Genre         *string `json:"genre" binding:"omitempty,max=100"`
	YearPublished *int    `json:"year_published" binding:"omitempty,gte=1000,lte=9999"`
	Description   string  `json:"description" binding:"required"`
}

// UpdateBookRequest has no rating field. Ratings only change through
// reviews.
type UpdateBookRequest struct {
	Title         *string `json:"title" binding:"omitempty,min=1,max=200"`
	Author        *string `json:"author" binding:"omitempty,min=1,max=200"`
	Genre         *string `json:"genre" binding:"omitempty,max=100"`
	YearPublished *int    `json:"year_published" binding:"omitempty,gte=1000,lte=9999"`
	Description   *string `json:"description" binding:"omitempty,min=1"`
}

type Book struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         *string   `json:"genre"`
	YearPublished *int      `json:"year_published"`
	Description   string    `json:"description"`
	Summary       *string   `json:"summary"`
	Rating        float64   `json:"rating"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type ListBooksResponse struct {
	Data       []Book     `json:"data"`
	Pagination Pagination `json:"pagination"`
}

type BookSummaryResponse struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Description   string    `json:"description"`
	Summary       *string   `json:"summary"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int64     `json:"review_count"`
	LatestReviews []Review  `json:"latest_reviews"`
}

type RecommendationResponse struct {
	ID              uuid.UUID `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	Description     string    `json:"description"`
	Rating          float64   `json:"rating"`
	SimilarityScore float64   `json:"similarity_score"`
}

type ContentSummaryRequest struct {
	Content string `json:"content" binding:"required"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}
