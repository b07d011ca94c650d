package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/snnyvrz/shelfreview/internal/model"
	"gorm.io/gorm"
)

type BookListParams struct {
	Page      int
	PageSize  int
	Sort      string
	Query     string
	Genre     string
	Author    string
	MinRating *float64
}

type BookListResult struct {
	Books []model.Book
	Total int64
}

type BookRepository interface {
	Create(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error)
	List(ctx context.Context, params BookListParams) (BookListResult, error)
	Update(ctx context.Context, book *model.Book) error
	UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error
	UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

var bookSortColumns = map[string]string{
	"created_at_desc": "created_at DESC",
	"created_at_asc":  "created_at ASC",
	"title_asc":       "title ASC",
	"title_desc":      "title DESC",
	"rating_desc":     "rating DESC",
	"rating_asc":      "rating ASC",
	"year_desc":       "year_published DESC",
	"year_asc":        "year_published ASC",
}

type GormBookRepository struct {
	db *gorm.DB
}

func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

func (r *GormBookRepository) Create(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	var book model.Book
	if err := r.db.WithContext(ctx).First(&book, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

// FindByIDs returns the books that exist among ids, in no particular order.
func (r *GormBookRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Book, error) {
	if len(ids) == 0 {
		return []model.Book{}, nil
	}

	var books []model.Book
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) List(ctx context.Context, params BookListParams) (BookListResult, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = 20
	}

	q := r.db.WithContext(ctx).Model(&model.Book{})

	if s := strings.TrimSpace(params.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}
	if params.Genre != "" {
		q = q.Where("LOWER(genre) = ?", strings.ToLower(params.Genre))
	}
	if params.Author != "" {
		q = q.Where("LOWER(author) LIKE ?", "%"+strings.ToLower(params.Author)+"%")
	}
	if params.MinRating != nil {
		q = q.Where("rating >= ?", *params.MinRating)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return BookListResult{}, err
	}

	order, ok := bookSortColumns[params.Sort]
	if !ok {
		order = bookSortColumns["created_at_desc"]
	}

	var books []model.Book
	if err := q.
		Order(order).
		Offset((params.Page - 1) * params.PageSize).
		Limit(params.PageSize).
		Find(&books).Error; err != nil {

		return BookListResult{}, err
	}

	return BookListResult{Books: books, Total: total}, nil
}

// Update persists the client-editable fields. Rating and Summary are
// written only through UpdateRating and UpdateSummary.
func (r *GormBookRepository) Update(ctx context.Context, book *model.Book) error {
	return r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", book.ID).
		Updates(map[string]any{
			"title":          book.Title,
			"author":         book.Author,
			"genre":          book.Genre,
			"year_published": book.YearPublished,
			"description":    book.Description,
		}).Error
}

func (r *GormBookRepository) UpdateRating(ctx context.Context, id uuid.UUID, rating float64) error {
	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", id).
		Update("rating", rating)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormBookRepository) UpdateSummary(ctx context.Context, id uuid.UUID, summary string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Book{}).
		Where("id = ?", id).
		Update("summary", summary)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes the book together with its reviews.
func (r *GormBookRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&model.Review{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Book{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
