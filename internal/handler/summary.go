package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"github.com/snnyvrz/shelfreview/internal/summary"
	"github.com/snnyvrz/shelfreview/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Summarizer turns text into a summary. It always yields a displayable
// string, falling back to a failure message.
type Summarizer interface {
	Summarize(ctx context.Context, text string) string
}

type SummaryHandler struct {
	books      repository.BookRepository
	summarizer Summarizer
	logger     *zap.Logger
}

func NewSummaryHandler(books repository.BookRepository, summarizer Summarizer, logger *zap.Logger) *SummaryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SummaryHandler{books: books, summarizer: summarizer, logger: logger}
}

func (h *SummaryHandler) RegisterRoutes(r *gin.RouterGroup, g Guards) {
	books := r.Group("/books")
	{
		books.POST("/:id/generate_summary", g.limited(h.GenerateBookSummary)...)
		books.POST("/generate_content_summary", g.limited(h.GenerateContentSummary)...)
	}
}

// GenerateBookSummary godoc
// @Summary      Generate an AI summary of a book
// @Description  Summarizes the book description and stores the result on the book. Failures of the summarization service are reported in the summary text.
// @Tags         summaries
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  SummaryResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      401  {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      429  {object}  validation.ErrorResponse   "Rate limited"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/generate_summary [post]
func (h *SummaryHandler) GenerateBookSummary(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	book, err := h.books.FindByID(ctx, bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		h.logger.Error("fetch book", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return
	}

	text := h.summarizer.Summarize(ctx, book.Description)

	// A failure message is returned to the caller but never replaces a
	// stored summary.
	if !summary.IsFailure(text) {
		if err := h.books.UpdateSummary(context.WithoutCancel(ctx), bookID, text); err != nil {
			h.logger.Error("store summary", zap.Stringer("book_id", bookID), zap.Error(err))
			writeError(c, http.StatusInternalServerError,
				"BOOK_UPDATE_FAILED",
				"failed to store summary",
			)
			return
		}
	}

	c.JSON(http.StatusOK, SummaryResponse{Summary: text})
}

// GenerateContentSummary godoc
// @Summary      Generate an AI summary of arbitrary content
// @Tags         summaries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      ContentSummaryRequest  true  "Content to summarize"
// @Success      200      {object}  SummaryResponse
// @Failure      400      {object}  validation.ErrorResponse   "Content is required"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      429      {object}  validation.ErrorResponse   "Rate limited"
// @Router       /books/generate_content_summary [post]
func (h *SummaryHandler) GenerateContentSummary(c *gin.Context) {
	var req ContentSummaryRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Summary: h.summarizer.Summarize(c.Request.Context(), req.Content),
	})
}
