package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/model"
	"github.com/snnyvrz/shelfreview/internal/rating"
	"github.com/snnyvrz/shelfreview/internal/recommend"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"gorm.io/gorm"
)

var testJWT = auth.NewJWTManager("handler-test-secret", "shelfreview-test", time.Hour)

type fakeBookRepo struct {
	CreateFn        func(ctx context.Context, b *model.Book) error
	FindByIDFn      func(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByIDsFn     func(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
	ListFn          func(ctx context.Context, p repository.BookListParams) (repository.BookListResult, error)
	UpdateFn        func(ctx context.Context, b *model.Book) error
	UpdateRatingFn  func(ctx context.Context, id uuid.UUID, rating float64) error
	UpdateSummaryFn func(ctx context.Context, id uuid.UUID, summary string) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
}

func (f *fakeBookRepo) Create(ctx context.Context, b *model.Book) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBookRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	if f.FindByIDsFn != nil {
		return f.FindByIDsFn(ctx, ids)
	}
	return nil, nil
}

func (f *fakeBookRepo) List(ctx context.Context, p repository.BookListParams) (repository.BookListResult, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, p)
	}
	return repository.BookListResult{}, nil
}

func (f *fakeBookRepo) Update(ctx context.Context, b *model.Book) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, b)
	}
	return nil
}

func (f *fakeBookRepo) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	if f.UpdateRatingFn != nil {
		return f.UpdateRatingFn(ctx, id, rating)
	}
	return nil
}

func (f *fakeBookRepo) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	if f.UpdateSummaryFn != nil {
		return f.UpdateSummaryFn(ctx, id, summary)
	}
	return nil
}

func (f *fakeBookRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

type fakeReviewRepo struct {
	CreateFn        func(ctx context.Context, r *model.Review) error
	FindByIDFn      func(ctx context.Context, id uuid.UUID) (*model.Review, error)
	ListFn          func(ctx context.Context, p repository.ReviewListParams) ([]model.Review, int64, error)
	ListByBookFn    func(ctx context.Context, bookID uuid.UUID, limit int) ([]model.Review, error)
	ListByUserFn    func(ctx context.Context, userID string) ([]model.Review, error)
	UpdateFn        func(ctx context.Context, r *model.Review) error
	DeleteFn        func(ctx context.Context, id uuid.UUID) error
	StatsForBookFn  func(ctx context.Context, bookID uuid.UUID) (model.RatingStat, error)
	StatsFn         func(ctx context.Context) ([]model.RatingStat, error)
	StatsForBooksFn func(ctx context.Context, ids []uuid.UUID) ([]model.RatingStat, error)
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *model.Review) error {
	if f.CreateFn != nil {
		return f.CreateFn(ctx, r)
	}
	return nil
}

func (f *fakeReviewRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	if f.FindByIDFn != nil {
		return f.FindByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeReviewRepo) List(ctx context.Context, p repository.ReviewListParams) ([]model.Review, int64, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx, p)
	}
	return nil, 0, nil
}

func (f *fakeReviewRepo) ListByBook(ctx context.Context, bookID uuid.UUID, limit int) ([]model.Review, error) {
	if f.ListByBookFn != nil {
		return f.ListByBookFn(ctx, bookID, limit)
	}
	return nil, nil
}

func (f *fakeReviewRepo) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	if f.ListByUserFn != nil {
		return f.ListByUserFn(ctx, userID)
	}
	return nil, nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *model.Review) error {
	if f.UpdateFn != nil {
		return f.UpdateFn(ctx, r)
	}
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeReviewRepo) StatsForBook(ctx context.Context, bookID uuid.UUID) (model.RatingStat, error) {
	if f.StatsForBookFn != nil {
		return f.StatsForBookFn(ctx, bookID)
	}
	return model.RatingStat{BookID: bookID}, nil
}

func (f *fakeReviewRepo) Stats(ctx context.Context) ([]model.RatingStat, error) {
	if f.StatsFn != nil {
		return f.StatsFn(ctx)
	}
	return nil, nil
}

func (f *fakeReviewRepo) StatsForBooks(ctx context.Context, ids []uuid.UUID) ([]model.RatingStat, error) {
	if f.StatsForBooksFn != nil {
		return f.StatsForBooksFn(ctx, ids)
	}
	return nil, nil
}

type fakeRecomputer struct {
	RecomputeFn func(ctx context.Context, bookID uuid.UUID) (*model.Book, error)
}

func (f *fakeRecomputer) Recompute(ctx context.Context, bookID uuid.UUID) (*model.Book, error) {
	if f.RecomputeFn != nil {
		return f.RecomputeFn(ctx, bookID)
	}
	return &model.Book{ID: bookID}, nil
}

type fakeRecommender struct {
	RecommendFn func(ctx context.Context, userID string) ([]recommend.Recommendation, error)
}

func (f *fakeRecommender) Recommend(ctx context.Context, userID string) ([]recommend.Recommendation, error) {
	if f.RecommendFn != nil {
		return f.RecommendFn(ctx, userID)
	}
	return nil, nil
}

type fakeSummarizer struct {
	mu     sync.Mutex
	result string
	inputs []string
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, text)
	return f.result
}

func (f *fakeSummarizer) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

type routerDeps struct {
	books       repository.BookRepository
	reviews     repository.ReviewRepository
	ratings     RatingRecomputer
	recommender Recommender
	summarizer  Summarizer
	rateLimit   gin.HandlerFunc
}

func setupTestRouterWithDeps(d routerDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	if d.books == nil {
		d.books = &fakeBookRepo{}
	}
	if d.reviews == nil {
		d.reviews = &fakeReviewRepo{}
	}
	if d.ratings == nil {
		d.ratings = &fakeRecomputer{}
	}
	if d.recommender == nil {
		d.recommender = &fakeRecommender{}
	}
	if d.summarizer == nil {
		d.summarizer = &fakeSummarizer{}
	}

	g := Guards{Auth: auth.RequireAuth(testJWT), RateLimit: d.rateLimit}
	api := r.Group("/api/v1")

	NewBookHandler(d.books, d.reviews, nil).RegisterRoutes(api, g)
	NewReviewHandler(d.reviews, d.books, d.ratings, nil).RegisterRoutes(api, g)
	NewSummaryHandler(d.books, d.summarizer, nil).RegisterRoutes(api, g)
	NewRecommendationHandler(d.recommender, nil).RegisterRoutes(api, g)

	return r
}

// setupTestRouter wires the handlers to real repositories on db.
func setupTestRouter(db *gorm.DB, summarizer Summarizer) *gin.Engine {
	books := repository.NewGormBookRepository(db)
	reviews := repository.NewGormReviewRepository(db)

	return setupTestRouterWithDeps(routerDeps{
		books:       books,
		reviews:     reviews,
		ratings:     rating.NewAggregator(books, reviews, nil),
		recommender: recommend.NewSelector(reviews, books),
		summarizer:  summarizer,
	})
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()

	token, err := testJWT.GenerateAccessToken(userID, "name-"+userID)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

func doRequest(t *testing.T, r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to unmarshal response %q: %v", w.Body.String(), err)
	}
	return v
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()

	if w.Code != want {
		t.Fatalf("expected status %d, got %d, body=%s", want, w.Code, w.Body.String())
	}
}
