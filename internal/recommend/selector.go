// Package recommend picks books for a user from rating aggregates. It is a
// naive baseline: exclusion plus a threshold, no personalization beyond that.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
)

const (
	// Limit is the maximum number of recommendations returned.
	Limit = 5
	// LikedRating is the lowest review rating that counts as the user liking a book.
	LikedRating = 4
	// MinAverage is the lowest mean rating a candidate may have once the user has reviews.
	MinAverage = 4.0
)

type Recommendation struct {
	Book model.Book
	// SimilarityScore is the candidate's own mean rating.
	SimilarityScore float64
}

type ReviewSource interface {
	ListByUser(ctx context.Context, userID string) ([]model.Review, error)
	Stats(ctx context.Context) ([]model.RatingStat, error)
}

type BookSource interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
}

type Selector struct {
	reviews ReviewSource
	books   BookSource
}

func NewSelector(reviews ReviewSource, books BookSource) *Selector {
	return &Selector{reviews: reviews, books: books}
}

func (s *Selector) Recommend(ctx context.Context, userID string) ([]Recommendation, error) {
	userReviews, err := s.reviews.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user reviews: %w", err)
	}

	stats, err := s.reviews.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("load rating stats: %w", err)
	}

	ranked := Rank(stats, userReviews, Limit)
	if len(ranked) == 0 {
		return []Recommendation{}, nil
	}

	ids := make([]uuid.UUID, len(ranked))
	for i, st := range ranked {
		ids[i] = st.BookID
	}

	books, err := s.books.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load recommended books: %w", err)
	}

	byID := make(map[uuid.UUID]model.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	out := make([]Recommendation, 0, len(ranked))
	for _, st := range ranked {
		b, ok := byID[st.BookID]
		if !ok {
			continue
		}
		out = append(out, Recommendation{Book: b, SimilarityScore: st.Average})
	}
	return out, nil
}

// Rank orders candidate books by mean rating.
//
// With no userReviews every reviewed book is a candidate. Otherwise books the
// user rated LikedRating or higher are excluded and the rest must average at
// least MinAverage. Ties go to the book with more reviews, then the lower id.
func Rank(stats []model.RatingStat, userReviews []model.Review, limit int) []model.RatingStat {
	personalized := len(userReviews) > 0

	liked := make(map[uuid.UUID]struct{})
	for _, r := range userReviews {
		if r.Rating >= LikedRating {
			liked[r.BookID] = struct{}{}
		}
	}

	candidates := make([]model.RatingStat, 0, len(stats))
	for _, st := range stats {
		if st.Count == 0 {
			continue
		}
		if personalized {
			if _, ok := liked[st.BookID]; ok {
				continue
			}
			if st.Average < MinAverage {
				continue
			}
		}
		candidates = append(candidates, st)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.BookID.String() < b.BookID.String()
	})

	if limit >= 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates
}
