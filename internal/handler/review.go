package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/model"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"github.com/snnyvrz/shelfreview/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RatingRecomputer refreshes a book's stored rating from its reviews.
type RatingRecomputer interface {
	Recompute(ctx context.Context, bookID uuid.UUID) (*model.Book, error)
}

type ReviewHandler struct {
	reviews repository.ReviewRepository
	books   repository.BookRepository
	ratings RatingRecomputer
	logger  *zap.Logger
}

func NewReviewHandler(
	reviews repository.ReviewRepository,
	books repository.BookRepository,
	ratings RatingRecomputer,
	logger *zap.Logger,
) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{reviews: reviews, books: books, ratings: ratings, logger: logger}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup, g Guards) {
	books := r.Group("/books")
	{
		books.GET("/:id/reviews", h.ListBookReviews)
		books.POST("/:id/add_review", g.protected(h.AddReview)...)
	}

	reviews := r.Group("/reviews")
	{
		reviews.GET("", h.ListReviews)
		reviews.POST("", g.protected(h.CreateReview)...)
		reviews.GET("/:id", h.GetReviewByID)
		reviews.PATCH("/:id", g.protected(h.UpdateReview)...)
		reviews.DELETE("/:id", g.protected(h.DeleteReview)...)
	}
}

func (h *ReviewHandler) bookExists(c *gin.Context, id uuid.UUID) bool {
	if _, err := h.books.FindByID(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return false
		}

		h.logger.Error("fetch book", zap.Stringer("book_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return false
	}
	return true
}

// findOwnedReview loads the review and checks the caller wrote it.
func (h *ReviewHandler) findOwnedReview(c *gin.Context, id uuid.UUID) (*model.Review, bool) {
	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return nil, false
		}

		h.logger.Error("fetch review", zap.Stringer("review_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch review",
		)
		return nil, false
	}

	user, _ := auth.CurrentUser(c)
	if review.UserID != user.ID {
		writeError(c, http.StatusForbidden,
			"FORBIDDEN",
			"only the author of a review may change it",
		)
		return nil, false
	}

	return review, true
}

func (h *ReviewHandler) createReview(c *gin.Context, review *model.Review) bool {
	if err := h.reviews.Create(c.Request.Context(), review); err != nil {
		if errors.Is(err, repository.ErrBookNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return false
		}

		h.logger.Error("create review", zap.Stringer("book_id", review.BookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_CREATE_FAILED",
			"failed to create review",
		)
		return false
	}
	return true
}

// recompute runs after every review write so the book's rating stays the
// mean of its reviews.
func (h *ReviewHandler) recompute(c *gin.Context, bookID uuid.UUID) (*model.Book, bool) {
	book, err := h.ratings.Recompute(c.Request.Context(), bookID)
	if err != nil {
		h.logger.Error("recompute rating", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"RATING_UPDATE_FAILED",
			"failed to update book rating",
		)
		return nil, false
	}
	return book, true
}

func newReview(bookID uuid.UUID, user auth.User, rating int, comment string) model.Review {
	return model.Review{
		BookID:   bookID,
		UserID:   user.ID,
		Username: user.Username,
		Rating:   rating,
		Comment:  comment,
	}
}

// ListBookReviews godoc
// @Summary      List reviews of a book
// @Description  All reviews of a book, newest first
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {array}   Review
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListBookReviews(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	if !h.bookExists(c, bookID) {
		return
	}

	reviews, err := h.reviews.ListByBook(c.Request.Context(), bookID, 0)
	if err != nil {
		h.logger.Error("list book reviews", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_LIST_FAILED",
			"failed to fetch reviews",
		)
		return
	}

	c.JSON(http.StatusOK, toReviewResponses(reviews))
}

// AddReview godoc
// @Summary      Review a book
// @Description  Add a review by the current user and return the book with its refreshed rating
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string            true  "Book ID (UUID)"
// @Param        payload  body      AddReviewRequest  true  "Review"
// @Success      201      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/add_review [post]
func (h *ReviewHandler) AddReview(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	if !h.bookExists(c, bookID) {
		return
	}

	var req AddReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	user, _ := auth.CurrentUser(c)
	review := newReview(bookID, user, req.Rating, req.Comment)
	if !h.createReview(c, &review) {
		return
	}

	book, ok := h.recompute(c, bookID)
	if !ok {
		return
	}

	stat, err := h.reviews.StatsForBook(c.Request.Context(), bookID)
	if err != nil {
		h.logger.Error("fetch rating stats", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_STATS_FAILED",
			"failed to fetch rating stats",
		)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(*book, stat))
}

// CreateReview godoc
// @Summary      Create a review
// @Description  Create a review for the book named in the payload
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateReviewRequest  true  "Review"
// @Success      201      {object}  Review
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /reviews [post]
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req CreateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if !h.bookExists(c, req.BookID) {
		return
	}

	user, _ := auth.CurrentUser(c)
	review := newReview(req.BookID, user, req.Rating, req.Comment)
	if !h.createReview(c, &review) {
		return
	}

	if _, ok := h.recompute(c, req.BookID); !ok {
		return
	}

	c.JSON(http.StatusCreated, toReviewResponse(review))
}

// ListReviews godoc
// @Summary      List reviews
// @Description  List reviews with pagination, optionally filtered by book or user
// @Tags         reviews
// @Produce      json
// @Param        page       query     int     false  "Page number"      default(1) minimum(1)
// @Param        page_size  query     int     false  "Items per page"   default(20) minimum(1) maximum(100)
// @Param        book_id    query     string  false  "Filter by book ID (UUID)"
// @Param        user_id    query     string  false  "Filter by user ID"
// @Success      200  {object}  ListReviewsResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, pageSize := parsePaging(c)

	params := repository.ReviewListParams{
		Page:     page,
		PageSize: pageSize,
		UserID:   c.Query("user_id"),
	}

	if s := c.Query("book_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			writeError(c, http.StatusBadRequest,
				"INVALID_BOOK_ID",
				"book_id must be a valid UUID",
			)
			return
		}
		params.BookID = &id
	}

	reviews, total, err := h.reviews.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("list reviews", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_LIST_FAILED",
			"failed to fetch reviews",
		)
		return
	}

	c.JSON(http.StatusOK, ListReviewsResponse{
		Data:       toReviewResponses(reviews),
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetReviewByID godoc
// @Summary      Get a review by ID
// @Tags         reviews
// @Produce      json
// @Param        id   path      string  true  "Review ID (UUID)"
// @Success      200  {object}  Review
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Review not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /reviews/{id} [get]
func (h *ReviewHandler) GetReviewByID(c *gin.Context) {
	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	review, err := h.reviews.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return
		}

		h.logger.Error("fetch review", zap.Stringer("review_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch review",
		)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(*review))
}

// UpdateReview godoc
// @Summary      Update a review
// @Description  Partially update one of the caller's reviews and refresh the book rating
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Review ID (UUID)"
// @Param        payload  body      UpdateReviewRequest  true  "Fields to update"
// @Success      200      {object}  Review
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      403      {object}  validation.ErrorResponse   "Not the review author"
// @Failure      404      {object}  validation.ErrorResponse   "Review not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /reviews/{id} [patch]
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	review, ok := h.findOwnedReview(c, id)
	if !ok {
		return
	}

	var req UpdateReviewRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Rating == nil && req.Comment == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}

	ctx := c.Request.Context()

	if err := h.reviews.Update(ctx, review); err != nil {
		h.logger.Error("update review", zap.Stringer("review_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_UPDATE_FAILED",
			"failed to update review",
		)
		return
	}

	if _, ok := h.recompute(c, review.BookID); !ok {
		return
	}

	updated, err := h.reviews.FindByID(ctx, id)
	if err != nil {
		h.logger.Error("fetch review", zap.Stringer("review_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_FETCH_FAILED",
			"failed to fetch updated review",
		)
		return
	}

	c.JSON(http.StatusOK, toReviewResponse(*updated))
}

// DeleteReview godoc
// @Summary      Delete a review
// @Description  Delete one of the caller's reviews and refresh the book rating
// @Tags         reviews
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Review ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      401  {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      403  {object}  validation.ErrorResponse   "Not the review author"
// @Failure      404  {object}  validation.ErrorResponse   "Review not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /reviews/{id} [delete]
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id, ok := parseReviewID(c)
	if !ok {
		return
	}

	review, ok := h.findOwnedReview(c, id)
	if !ok {
		return
	}

	if err := h.reviews.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"REVIEW_NOT_FOUND",
				"review not found",
			)
			return
		}

		h.logger.Error("delete review", zap.Stringer("review_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_DELETE_FAILED",
			"failed to delete review",
		)
		return
	}

	if _, ok := h.recompute(c, review.BookID); !ok {
		return
	}

	c.Status(http.StatusNoContent)
}
