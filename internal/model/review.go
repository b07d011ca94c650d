package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BookID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID    string    `gorm:"not null;index"`
	Username  string
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}

// RatingStat is the aggregate of all reviews of one book.
type RatingStat struct {
	BookID  uuid.UUID
	Average float64
	Count   int64
}
