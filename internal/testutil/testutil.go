package testutil

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:testdb_" + uuid.New().String() + "?mode=memory&cache=shared&_foreign_keys=on"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&model.Book{}, &model.Review{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

// NewUnmigratedDB returns a database without tables, so every query fails.
func NewUnmigratedDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:errdb_" + uuid.New().String() + "?mode=memory&cache=shared"

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to error test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB from gorm: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	return db
}

func SeedBook(t *testing.T, db *gorm.DB, title, author string) model.Book {
	t.Helper()

	book := model.Book{
		ID:          uuid.New(),
		Title:       title,
		Author:      author,
		Description: "Description of " + title,
	}

	if err := db.Create(&book).Error; err != nil {
		t.Fatalf("failed to seed book %q: %v", title, err)
	}

	return book
}

// SeedReview inserts a review directly. It does not touch the book's rating.
func SeedReview(t *testing.T, db *gorm.DB, book model.Book, userID string, rating int) model.Review {
	t.Helper()

	review := model.Review{
		ID:        uuid.New(),
		BookID:    book.ID,
		UserID:    userID,
		Username:  "user-" + userID,
		Rating:    rating,
		Comment:   "comment",
		CreatedAt: time.Now(),
	}

	if err := db.Create(&review).Error; err != nil {
		t.Fatalf("failed to seed review for %q: %v", book.Title, err)
	}

	return review
}
