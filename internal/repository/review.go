package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/snnyvrz/shelfreview/internal/model"
	"gorm.io/gorm"
)

// ErrBookNotFound is returned when a review references a missing book.
var ErrBookNotFound = errors.New("book not found")

const pgForeignKeyViolation = "23503"

type ReviewListParams struct {
	Page     int
	PageSize int
	BookID   *uuid.UUID
	UserID   string
}

type ReviewRepository interface {
	Create(ctx context.Context, review *model.Review) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error)
	List(ctx context.Context, params ReviewListParams) ([]model.Review, int64, error)
	ListByBook(ctx context.Context, bookID uuid.UUID, limit int) ([]model.Review, error)
	ListByUser(ctx context.Context, userID string) ([]model.Review, error)
	Update(ctx context.Context, review *model.Review) error
	Delete(ctx context.Context, id uuid.UUID) error
	StatsForBook(ctx context.Context, bookID uuid.UUID) (model.RatingStat, error)
	Stats(ctx context.Context) ([]model.RatingStat, error)
	StatsForBooks(ctx context.Context, bookIDs []uuid.UUID) ([]model.RatingStat, error)
}

type GormReviewRepository struct {
	db *gorm.DB
}

func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

func (r *GormReviewRepository) Create(ctx context.Context, review *model.Review) error {
	err := r.db.WithContext(ctx).Create(review).Error
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return ErrBookNotFound
	}
	return err
}

func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Review, error) {
	var review model.Review
	if err := r.db.WithContext(ctx).First(&review, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

func (r *GormReviewRepository) List(ctx context.Context, params ReviewListParams) ([]model.Review, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Review{})
	if params.BookID != nil {
		q = q.Where("book_id = ?", *params.BookID)
	}
	if params.UserID != "" {
		q = q.Where("user_id = ?", params.UserID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []model.Review
	if err := q.
		Order("created_at DESC").
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&reviews).Error; err != nil {

		return nil, 0, err
	}

	return reviews, total, nil
}

// ListByBook returns the newest reviews first. A limit <= 0 returns all of them.
func (r *GormReviewRepository) ListByBook(ctx context.Context, bookID uuid.UUID, limit int) ([]model.Review, error) {
	q := r.db.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var reviews []model.Review
	if err := q.Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) ListByUser(ctx context.Context, userID string) ([]model.Review, error) {
	var reviews []model.Review
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&reviews).Error; err != nil {

		return nil, err
	}
	return reviews, nil
}

func (r *GormReviewRepository) Update(ctx context.Context, review *model.Review) error {
	return r.db.WithContext(ctx).
		Model(&model.Review{}).
		Where("id = ?", review.ID).
		Updates(map[string]any{
			"rating":  review.Rating,
			"comment": review.Comment,
		}).Error
}

func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type ratingRow struct {
	BookID  uuid.UUID `gorm:"column:book_id"`
	Average float64   `gorm:"column:average_rating"`
	Count   int64     `gorm:"column:review_count"`
}

// StatsForBook averages with floating point division. A book without
// reviews yields Average 0 and Count 0.
func (r *GormReviewRepository) StatsForBook(ctx context.Context, bookID uuid.UUID) (model.RatingStat, error) {
	var row ratingRow
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(CAST(rating AS FLOAT)), 0) AS average_rating, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return model.RatingStat{}, err
	}

	return model.RatingStat{BookID: bookID, Average: row.Average, Count: row.Count}, nil
}

// Stats returns one row per book that has at least one review.
func (r *GormReviewRepository) Stats(ctx context.Context) ([]model.RatingStat, error) {
	return r.groupedStats(ctx, nil)
}

// StatsForBooks is Stats restricted to bookIDs. Books without reviews are
// absent from the result.
func (r *GormReviewRepository) StatsForBooks(ctx context.Context, bookIDs []uuid.UUID) ([]model.RatingStat, error) {
	if len(bookIDs) == 0 {
		return []model.RatingStat{}, nil
	}
	return r.groupedStats(ctx, bookIDs)
}

func (r *GormReviewRepository) groupedStats(ctx context.Context, bookIDs []uuid.UUID) ([]model.RatingStat, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("book_id, AVG(CAST(rating AS FLOAT)) AS average_rating, COUNT(*) AS review_count")
	if bookIDs != nil {
		q = q.Where("book_id IN ?", bookIDs)
	}

	var rows []ratingRow
	if err := q.Group("book_id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]model.RatingStat, 0, len(rows))
	for _, row := range rows {
		stats = append(stats, model.RatingStat{BookID: row.BookID, Average: row.Average, Count: row.Count})
	}
	return stats, nil
}
