package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CardStatus drives which cards appear in public listings and are
// eligible for trade requests.
type CardStatus string

const (
	CardOwned    CardStatus = "owned"
	CardForTrade CardStatus = "for trade"
	CardWanted   CardStatus = "wanted"
)

// IsValid reports whether the status is one of the enumerated values.
func (s CardStatus) IsValid() bool {
	switch s {
	case CardOwned, CardForTrade, CardWanted:
		return true
	}
	return false
}

/*
 * 'Card' defines a collectible card in a user's collection. It contains a
 * reference to User and is referenced by TradeRequest
 */
type Card struct {
	ID          uuid.UUID  `gorm:"primaryKey;size:36;not null" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	Type        string     `gorm:"size:50" json:"type"`
	Rarity      string     `gorm:"size:50" json:"rarity"`
	Value       int        `gorm:"default:0" json:"value"`
	Description string     `gorm:"size:500" json:"description"`
	Status      CardStatus `gorm:"size:20;default:'owned';index:idx_cards_status" json:"status"`
	UserID      uuid.UUID  `gorm:"size:36;not null;index:idx_cards_owner" json:"user_id"`
	CreatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	Owner User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CardOwned
	}
	return nil
}
