// Package rating keeps a book's aggregate rating in step with its reviews.
package rating

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
	"go.uber.org/zap"
)

type BookStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
}

type ReviewStats interface {
	StatsForBook(ctx context.Context, bookID uuid.UUID) (model.RatingStat, error)
}

// Aggregator recomputes Book.Rating. Callers invoke Recompute after every
// review create, update or delete. The read and write are not isolated, so
// concurrent writers to the same book race and the last write wins.
type Aggregator struct {
	books   BookStore
	reviews ReviewStats
	logger  *zap.Logger
}

func NewAggregator(books BookStore, reviews ReviewStats, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{books: books, reviews: reviews, logger: logger}
}

// Recompute sets the book's rating to the mean of its review ratings, or 0
// when it has none, and returns the persisted book.
func (a *Aggregator) Recompute(ctx context.Context, bookID uuid.UUID) (*model.Book, error) {
	stat, err := a.reviews.StatsForBook(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("read review stats: %w", err)
	}

	rating := 0.0
	if stat.Count > 0 {
		rating = stat.Average
	}

	if err := a.books.UpdateRating(ctx, bookID, rating); err != nil {
		return nil, fmt.Errorf("update book rating: %w", err)
	}

	a.logger.Debug("book rating recomputed",
		zap.String("book_id", bookID.String()),
		zap.Float64("rating", rating),
		zap.Int64("review_count", stat.Count),
	)

	book, err := a.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, fmt.Errorf("reload book: %w", err)
	}
	return book, nil
}

// Mean is the arithmetic mean of ratings, 0 for an empty slice.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return float64(sum) / float64(len(ratings))
}
