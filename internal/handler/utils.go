package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
	"github.com/snnyvrz/shelfreview/internal/validation"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Guards are the middlewares a handler attaches to its protected routes.
// A nil RateLimit disables limiting.
type Guards struct {
	Auth      gin.HandlerFunc
	RateLimit gin.HandlerFunc
}

func (g Guards) protected(h gin.HandlerFunc) []gin.HandlerFunc {
	return []gin.HandlerFunc{g.Auth, h}
}

func (g Guards) limited(h gin.HandlerFunc) []gin.HandlerFunc {
	if g.RateLimit == nil {
		return g.protected(h)
	}
	return []gin.HandlerFunc{g.Auth, g.RateLimit, h}
}

func writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, validation.ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  nil,
	})
}

func parseIntQuery(c *gin.Context, key string, def int) int {
	if s := c.Query(key); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

func parsePaging(c *gin.Context) (page, pageSize int) {
	page = parseIntQuery(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = parseIntQuery(c, "page_size", defaultPageSize)
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

func newPagination(page, pageSize int, total int64) Pagination {
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}

// parseBookID reads the :id path parameter and writes a 400 when it is not
// a UUID.
func parseBookID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_BOOK_ID",
			"invalid book id",
		)
		return uuid.Nil, false
	}
	return id, true
}

func parseReviewID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, http.StatusBadRequest,
			"INVALID_REVIEW_ID",
			"invalid review id",
		)
		return uuid.Nil, false
	}
	return id, true
}

func toBookResponse(b model.Book, stat model.RatingStat) Book {
	return Book{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		YearPublished: b.YearPublished,
		Description:   b.Description,
		Summary:       b.Summary,
		Rating:        b.Rating,
		AverageRating: stat.Average,
		ReviewCount:   stat.Count,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func toReviewResponse(r model.Review) Review {
	return Review{
		ID:     r.ID,
		BookID: r.BookID,
		User: ReviewUser{
			ID:       r.UserID,
			Username: r.Username,
		},
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func toReviewResponses(reviews []model.Review) []Review {
	res := make([]Review, 0, len(reviews))
	for _, r := range reviews {
		res = append(res, toReviewResponse(r))
	}
	return res
}
