package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'User' contains the blueprint definition of an account. It is referenced
 * by Card (owner) and TradeRequest (both participants)
 */
type User struct {
	ID           uuid.UUID `gorm:"primaryKey;size:36;not null" json:"id"`
	Username     string    `gorm:"size:50;not null" json:"username"`
	Email        string    `gorm:"size:100;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Relationships
	Cards []Card `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

// Assign an id before insertion, the application never supplies one
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
