package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Book struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title         string    `gorm:"size:200;not null"`
	Author        string    `gorm:"size:200;not null;index"`
	Genre         *string   `gorm:"size:100;index"`
	YearPublished *int
	Description   string  `gorm:"type:text;not null"`
	Summary       *string `gorm:"type:text"`
	// Rating is the mean of Reviews' ratings, 0 when there are none.
	// Only rating.Aggregator writes it.
	Rating    float64  `gorm:"not null;default:0"`
	Reviews   []Review `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (b *Book) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}
