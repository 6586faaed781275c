package model

import (
	"time"

	"github.com/google/uuid"
)

// Comment carries no automatic update timestamp: UpdatedAt is set only
// when the comment text is edited.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	CardID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Text      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false"`

	Card Card `gorm:"foreignKey:CardID"`
}
