package model

import (
	"time"

	"github.com/google/uuid"
)

type Card struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ListID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Position    int       `gorm:"not null"`
	Color       string
	CreatedAt   time.Time `gorm:"autoCreateTime"`

	List     List      `gorm:"foreignKey:ListID"`
	Comments []Comment `gorm:"foreignKey:CardID"`
}
