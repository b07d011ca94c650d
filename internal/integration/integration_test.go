//go:build integration
// +build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/auth"
	"github.com/snnyvrz/shelfreview/internal/config"
	"github.com/snnyvrz/shelfreview/internal/db"
	"github.com/snnyvrz/shelfreview/internal/handler"
	"github.com/snnyvrz/shelfreview/internal/model"
	"github.com/snnyvrz/shelfreview/internal/rating"
	"github.com/snnyvrz/shelfreview/internal/recommend"
	"github.com/snnyvrz/shelfreview/internal/repository"
	"github.com/snnyvrz/shelfreview/internal/summary"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	testDB      *gorm.DB
	testRouter  *gin.Engine
	testJWT     = auth.NewJWTManager("integration-secret", "shelfreview-it", time.Hour)
	reviewRepo  *repository.GormReviewRepository
	ollamaStub  *httptest.Server
	stubSummary = "An integration tested summary."
)

func TestMain(m *testing.M) {
	cfg := &config.Config{
		DBDriver:  "postgres",
		DBHost:    os.Getenv("POSTGRES_HOST"),
		DBPort:    os.Getenv("POSTGRES_PORT"),
		DBUser:    os.Getenv("POSTGRES_USER"),
		DBPass:    os.Getenv("POSTGRES_PASSWORD"),
		DBName:    os.Getenv("POSTGRES_DB"),
		DBSSLMode: "disable",
		TZ:        os.Getenv("TZ"),
	}

	database, err := db.ConnectWithRetry(cfg, zap.NewNop())
	if err != nil {
		panic("failed to connect to test database: " + err.Error())
	}
	testDB = database

	if err := db.Migrate(database); err != nil {
		panic("failed to migrate: " + err.Error())
	}

	ollamaStub = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/generate" {
			_ = json.NewEncoder(w).Encode(map[string]string{"response": stubSummary})
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	summaryCfg := summary.DefaultConfig()
	summaryCfg.BaseURL = ollamaStub.URL

	books := repository.NewGormBookRepository(database)
	reviewRepo = repository.NewGormReviewRepository(database)

	gin.SetMode(gin.TestMode)
	r := gin.New()

	guards := handler.Guards{Auth: auth.RequireAuth(testJWT)}
	api := r.Group("/api/v1")
	{
		handler.NewBookHandler(books, reviewRepo, nil).RegisterRoutes(api, guards)
		handler.NewReviewHandler(reviewRepo, books, rating.NewAggregator(books, reviewRepo, nil), nil).RegisterRoutes(api, guards)
		handler.NewSummaryHandler(books, summary.New(summaryCfg), nil).RegisterRoutes(api, guards)
		handler.NewRecommendationHandler(recommend.NewSelector(reviewRepo, books), nil).RegisterRoutes(api, guards)
	}

	testRouter = r

	code := m.Run()
	ollamaStub.Close()
	os.Exit(code)
}

func resetDB(t *testing.T) {
	t.Helper()
	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("get sql.DB failed: %v", err)
	}
	_, err = sqlDB.Exec("TRUNCATE TABLE reviews, books RESTART IDENTITY CASCADE;")
	if err != nil {
		t.Fatalf("truncate failed: %v", err)
	}
}

func token(t *testing.T, userID string) string {
	t.Helper()

	tok, err := testJWT.GenerateAccessToken(userID, "it-"+userID)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return tok
}

func call(t *testing.T, srv *httptest.Server, method, path, tok string, body any, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func createBook(t *testing.T, srv *httptest.Server, title string) handler.Book {
	t.Helper()

	var book handler.Book
	status := call(t, srv, http.MethodPost, "/api/v1/books", token(t, "admin"), handler.CreateBookRequest{
		Title:       title,
		Author:      "Integration Author",
		Description: "Description of " + title,
	}, &book)
	if status != http.StatusCreated {
		t.Fatalf("expected 201 when creating book, got %d", status)
	}
	return book
}

func TestReviewLifecycleKeepsRatingInSync_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	book := createBook(t, srv, "Clean Code")
	base := "/api/v1/books/" + book.ID.String()

	var updated handler.Book
	if status := call(t, srv, http.MethodPost, base+"/add_review", token(t, "u1"), handler.AddReviewRequest{Rating: 4, Comment: "solid"}, &updated); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if updated.Rating != 4 {
		t.Fatalf("expected rating 4, got %v", updated.Rating)
	}

	if status := call(t, srv, http.MethodPost, base+"/add_review", token(t, "u2"), handler.AddReviewRequest{Rating: 5, Comment: "great"}, &updated); status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", status)
	}
	if updated.Rating != 4.5 || updated.ReviewCount != 2 {
		t.Fatalf("expected 4.5 over 2 reviews, got %v/%d", updated.Rating, updated.ReviewCount)
	}

	var reviews []handler.Review
	if status := call(t, srv, http.MethodGet, base+"/reviews", "", nil, &reviews); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(reviews) != 2 {
		t.Fatalf("expected 2 reviews, got %d", len(reviews))
	}

	var mine handler.Review
	for _, r := range reviews {
		if r.User.ID == "u1" {
			mine = r
		}
	}
	if status := call(t, srv, http.MethodDelete, "/api/v1/reviews/"+mine.ID.String(), token(t, "u1"), nil, nil); status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", status)
	}

	var fetched handler.Book
	if status := call(t, srv, http.MethodGet, base, "", nil, &fetched); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if fetched.Rating != 5 || fetched.ReviewCount != 1 {
		t.Fatalf("expected rating 5 over 1 review after delete, got %v/%d", fetched.Rating, fetched.ReviewCount)
	}
}

func TestGenerateSummaryStoresText_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	book := createBook(t, srv, "Refactoring")

	var resp handler.SummaryResponse
	if status := call(t, srv, http.MethodPost, "/api/v1/books/"+book.ID.String()+"/generate_summary", token(t, "u1"), nil, &resp); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if resp.Summary != stubSummary {
		t.Fatalf("expected %q, got %q", stubSummary, resp.Summary)
	}

	var overview handler.BookSummaryResponse
	if status := call(t, srv, http.MethodGet, "/api/v1/books/"+book.ID.String()+"/summary", "", nil, &overview); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if overview.Summary == nil || *overview.Summary != stubSummary {
		t.Fatalf("expected stored summary, got %v", overview.Summary)
	}
}

func TestRecommendations_BackendIntegration(t *testing.T) {
	resetDB(t)

	srv := httptest.NewServer(testRouter)
	defer srv.Close()

	liked := createBook(t, srv, "Liked")
	candidate := createBook(t, srv, "Candidate")

	call(t, srv, http.MethodPost, "/api/v1/books/"+liked.ID.String()+"/add_review", token(t, "reader"), handler.AddReviewRequest{Rating: 5, Comment: "c"}, nil)
	call(t, srv, http.MethodPost, "/api/v1/books/"+candidate.ID.String()+"/add_review", token(t, "other"), handler.AddReviewRequest{Rating: 4, Comment: "c"}, nil)

	var recs []handler.RecommendationResponse
	if status := call(t, srv, http.MethodGet, "/api/v1/books/recommendations", token(t, "reader"), nil, &recs); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if len(recs) != 1 || recs[0].ID != candidate.ID {
		t.Fatalf("expected only the candidate, got %+v", recs)
	}
}

func TestReviewForeignKeyViolation_BackendIntegration(t *testing.T) {
	resetDB(t)

	err := reviewRepo.Create(context.Background(), &model.Review{
		BookID:  uuid.New(),
		UserID:  "u1",
		Rating:  3,
		Comment: "orphan",
	})
	if !errors.Is(err, repository.ErrBookNotFound) {
		t.Fatalf("expected ErrBookNotFound, got %v", err)
	}
}
