package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"github.com/snnyvrz/shelfreview/internal/validation"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const latestReviewsLimit = 5

type BookHandler struct {
	books   repository.BookRepository
	reviews repository.ReviewRepository
	logger  *zap.Logger
}

func NewBookHandler(books repository.BookRepository, reviews repository.ReviewRepository, logger *zap.Logger) *BookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BookHandler{books: books, reviews: reviews, logger: logger}
}

func (h *BookHandler) RegisterRoutes(r *gin.RouterGroup, g Guards) {
	books := r.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.POST("", g.protected(h.CreateBook)...)
		books.GET("/:id", h.GetBookByID)
		books.PATCH("/:id", g.protected(h.UpdateBook)...)
		books.DELETE("/:id", g.protected(h.DeleteBook)...)
		books.GET("/:id/summary", h.GetBookSummary)
	}
}

// findBook loads the book or writes the matching error response.
func (h *BookHandler) findBook(c *gin.Context, id uuid.UUID) (*model.Book, bool) {
	book, err := h.books.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return nil, false
		}

		h.logger.Error("fetch book", zap.Stringer("book_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_FETCH_FAILED",
			"failed to fetch book",
		)
		return nil, false
	}
	return book, true
}

func (h *BookHandler) stat(c *gin.Context, id uuid.UUID) (model.RatingStat, bool) {
	stat, err := h.reviews.StatsForBook(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("fetch rating stats", zap.Stringer("book_id", id), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_STATS_FAILED",
			"failed to fetch rating stats",
		)
		return model.RatingStat{}, false
	}
	return stat, true
}

// CreateBook godoc
// @Summary      Create a book
// @Description  Create a new book. The rating starts at 0 and is derived from reviews.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      CreateBookRequest          true  "Book to create"
// @Success      201      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse   "Validation error"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	var req CreateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	book := model.Book{
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		YearPublished: req.YearPublished,
		Description:   req.Description,
	}

	if err := h.books.Create(c.Request.Context(), &book); err != nil {
		h.logger.Error("create book", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_CREATE_FAILED",
			"failed to create book",
		)
		return
	}

	c.JSON(http.StatusCreated, toBookResponse(book, model.RatingStat{BookID: book.ID}))
}

// ListBooks godoc
// @Summary      List books
// @Description  List books with pagination, search and filters
// @Tags         books
// @Produce      json
// @Param        page        query     int     false  "Page number"      default(1) minimum(1)
// @Param        page_size   query     int     false  "Items per page"   default(20) minimum(1) maximum(100)
// @Param        sort        query     string  false  "Sort field and direction" Enums(created_at_desc,created_at_asc,title_asc,title_desc,rating_desc,rating_asc,year_desc,year_asc)
// @Param        q           query     string  false  "Search in title, author and description"
// @Param        genre       query     string  false  "Filter by genre"
// @Param        author      query     string  false  "Filter by author name"
// @Param        min_rating  query     number  false  "Filter: rating >= min_rating"
// @Success      200  {object}  ListBooksResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid query parameters"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	ctx := c.Request.Context()

	page, pageSize := parsePaging(c)

	params := repository.BookListParams{
		Page:     page,
		PageSize: pageSize,
		Sort:     c.DefaultQuery("sort", "created_at_desc"),
		Query:    c.Query("q"),
		Genre:    c.Query("genre"),
		Author:   c.Query("author"),
	}

	if s := c.Query("min_rating"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 || v > model.MaxReviewRating {
			writeError(c, http.StatusBadRequest,
				"INVALID_MIN_RATING",
				"min_rating must be a number between 0 and 5",
			)
			return
		}
		params.MinRating = &v
	}

	result, err := h.books.List(ctx, params)
	if err != nil {
		h.logger.Error("list books", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}

	ids := make([]uuid.UUID, 0, len(result.Books))
	for _, b := range result.Books {
		ids = append(ids, b.ID)
	}
	stats, err := h.reviews.StatsForBooks(ctx, ids)
	if err != nil {
		h.logger.Error("list rating stats", zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_LIST_FAILED",
			"failed to fetch books",
		)
		return
	}
	byBook := make(map[uuid.UUID]model.RatingStat, len(stats))
	for _, s := range stats {
		byBook[s.BookID] = s
	}

	data := make([]Book, 0, len(result.Books))
	for _, b := range result.Books {
		data = append(data, toBookResponse(b, byBook[b.ID]))
	}

	c.JSON(http.StatusOK, ListBooksResponse{
		Data:       data,
		Pagination: newPagination(page, pageSize, result.Total),
	})
}

// GetBookByID godoc
// @Summary      Get a book by ID
// @Description  Get a single book with its aggregate rating stats
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  Book
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBookByID(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	book, ok := h.findBook(c, bookID)
	if !ok {
		return
	}

	stat, ok := h.stat(c, bookID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*book, stat))
}

// UpdateBook godoc
// @Summary      Update a book
// @Description  Partially update a book. The rating cannot be set directly.
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string              true  "Book ID (UUID)"
// @Param        payload  body      UpdateBookRequest   true  "Fields to update"
// @Success      200      {object}  Book
// @Failure      400      {object}  validation.ErrorResponse   "Invalid ID or payload"
// @Failure      401      {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      404      {object}  validation.ErrorResponse   "Book not found"
// @Failure      500      {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [patch]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	book, ok := h.findBook(c, bookID)
	if !ok {
		return
	}

	var req UpdateBookRequest
	if !validation.BindAndValidateJSON(c, &req) {
		return
	}

	if req.Title == nil && req.Author == nil && req.Genre == nil &&
		req.YearPublished == nil && req.Description == nil {
		writeError(c, http.StatusBadRequest,
			"NO_FIELDS_TO_UPDATE",
			"at least one field must be provided to update",
		)
		return
	}

	if req.Title != nil {
		book.Title = *req.Title
	}
	if req.Author != nil {
		book.Author = *req.Author
	}
	if req.Genre != nil {
		book.Genre = req.Genre
	}
	if req.YearPublished != nil {
		book.YearPublished = req.YearPublished
	}
	if req.Description != nil {
		book.Description = *req.Description
	}

	ctx := c.Request.Context()

	if err := h.books.Update(ctx, book); err != nil {
		h.logger.Error("update book", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_UPDATE_FAILED",
			"failed to update book",
		)
		return
	}

	updated, ok := h.findBook(c, bookID)
	if !ok {
		return
	}

	stat, ok := h.stat(c, bookID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toBookResponse(*updated, stat))
}

// DeleteBook godoc
// @Summary      Delete a book
// @Description  Delete a book and all of its reviews
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      204  {string}  string  "No content"
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      401  {object}  validation.ErrorResponse   "Unauthorized"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(c, http.StatusNotFound,
				"BOOK_NOT_FOUND",
				"book not found",
			)
			return
		}

		h.logger.Error("delete book", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"BOOK_DELETE_FAILED",
			"failed to delete book",
		)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetBookSummary godoc
// @Summary      Book overview
// @Description  Book details with aggregate rating and the five most recent reviews
// @Tags         books
// @Produce      json
// @Param        id   path      string  true  "Book ID (UUID)"
// @Success      200  {object}  BookSummaryResponse
// @Failure      400  {object}  validation.ErrorResponse   "Invalid ID"
// @Failure      404  {object}  validation.ErrorResponse   "Book not found"
// @Failure      500  {object}  validation.ErrorResponse   "Internal server error"
// @Router       /books/{id}/summary [get]
func (h *BookHandler) GetBookSummary(c *gin.Context) {
	bookID, ok := parseBookID(c)
	if !ok {
		return
	}

	book, ok := h.findBook(c, bookID)
	if !ok {
		return
	}

	stat, ok := h.stat(c, bookID)
	if !ok {
		return
	}

	latest, err := h.reviews.ListByBook(c.Request.Context(), bookID, latestReviewsLimit)
	if err != nil {
		h.logger.Error("list latest reviews", zap.Stringer("book_id", bookID), zap.Error(err))
		writeError(c, http.StatusInternalServerError,
			"REVIEW_LIST_FAILED",
			"failed to fetch reviews",
		)
		return
	}

	c.JSON(http.StatusOK, BookSummaryResponse{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Description:   book.Description,
		Summary:       book.Summary,
		AverageRating: stat.Average,
		ReviewCount:   stat.Count,
		LatestReviews: toReviewResponses(latest),
	})
}
