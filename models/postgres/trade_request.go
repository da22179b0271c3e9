package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradeStatus enumerates the lifecycle states of a trade request.
// A trade starts pending and is moved to accepted or declined by a
// participant; the transition graph itself is an application-level
// convention, only membership in the enum is validated.
type TradeStatus string

const (
	TradePending  TradeStatus = "pending"
	TradeAccepted TradeStatus = "accepted"
	TradeDeclined TradeStatus = "declined"
)

// IsValid reports whether the status is one of the enumerated values.
func (s TradeStatus) IsValid() bool {
	switch s {
	case TradePending, TradeAccepted, TradeDeclined:
		return true
	}
	return false
}

/*
 * 'TradeRequest' represents one user's offer to trade for another user's
 * card. It contains references to User (both participants) and Card.
 * FromUserID, ToUserID and CardID are immutable after creation; only
 * Status and ResponseMessage are ever updated, by a participant.
 */
type TradeRequest struct {
	ID              uuid.UUID   `gorm:"primaryKey;size:36;not null" json:"id"`
	FromUserID      uuid.UUID   `gorm:"size:36;not null;index:idx_trade_requests_from" json:"from_user_id"`
	ToUserID        uuid.UUID   `gorm:"size:36;not null;index:idx_trade_requests_to" json:"to_user_id"`
	CardID          uuid.UUID   `gorm:"size:36;not null" json:"card_id"`
	Message         string      `gorm:"size:500;default:''" json:"message"`
	Status          TradeStatus `gorm:"size:20;default:'pending'" json:"status"`
	ResponseMessage string      `gorm:"size:500;default:''" json:"response_message"`
	CreatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relationships
	FromUser User `gorm:"foreignKey:FromUserID;constraint:OnDelete:CASCADE" json:"from_user"`
	ToUser   User `gorm:"foreignKey:ToUserID;constraint:OnDelete:CASCADE" json:"to_user"`
	Card     Card `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE" json:"card"`
}

func (t *TradeRequest) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = TradePending
	}
	return nil
}

// IsParticipant reports whether the given user is either side of the trade.
// Only participants may read the joined record or mutate its status.
func (t *TradeRequest) IsParticipant(userID uuid.UUID) bool {
	return t.FromUserID == userID || t.ToUserID == userID
}
