package tradewatch

import (
	"context"
	"encoding/json"
	"os"
	"sync"
	"time"

	models "cardvault/models/postgres"

	"github.com/google/uuid"
)

// Tracker maintains the "has new trades" signal for an inbox UI on top of
// polling. It keeps the last fetched trade list, a boolean alert flag and
// a locally persisted watermark: the time the inbox was last viewed.
// Incoming pending trades created after the watermark raise the flag;
// viewing the inbox clears it and advances the watermark.
//
// The watermark survives restarts through a small JSON state file, the
// equivalent of the browser localStorage entry the web client uses. It is
// keyed per state file, not per account.
type Tracker struct {
	mu        sync.Mutex
	api       *Client
	userID    uuid.UUID
	statePath string

	trades       []models.TradeRequest
	hasNewTrades bool
	lastSeenAt   time.Time
}

// trackerState is the persisted shape of the watermark file.
type trackerState struct {
	TradeInboxSeenAt time.Time `json:"tradeInboxSeenAt"`
}

// NewTracker builds a tracker for the given user. The watermark is loaded
// from statePath once, here; a missing or unreadable state file simply
// means everything pending counts as new.
func NewTracker(api *Client, userID uuid.UUID, statePath string) *Tracker {
	t := &Tracker{
		api:       api,
		userID:    userID,
		statePath: statePath,
	}
	if data, err := os.ReadFile(statePath); err == nil {
		var state trackerState
		if json.Unmarshal(data, &state) == nil {
			t.lastSeenAt = state.TradeInboxSeenAt
		}
	}
	return t
}

// SetUser switches the authenticated identity the tracker polls for.
// Passing uuid.Nil marks the session as logged out.
func (t *Tracker) SetUser(userID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.userID = userID
}

// Fetch reloads the trade list and recomputes the alert flag.
//
// Without an authenticated user the local state is reset and no request
// is made. On a failed request the previous state is left untouched and
// the error is returned for the caller to surface; the next trigger
// retries naturally.
func (t *Tracker) Fetch(ctx context.Context) error {
	t.mu.Lock()
	userID := t.userID
	t.mu.Unlock()

	if userID == uuid.Nil {
		t.mu.Lock()
		t.trades = nil
		t.hasNewTrades = false
		t.mu.Unlock()
		return nil
	}

	trades, err := t.api.GetTrades(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.trades = trades
	t.hasNewTrades = false
	for _, trade := range trades {
		if trade.ToUserID != userID || trade.Status != models.TradePending {
			continue
		}
		// A trade without a creation timestamp counts as created "now" so
		// it is never silently suppressed, even if that keeps it flagged
		// until the inbox is next viewed.
		createdAt := trade.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}
		if createdAt.After(t.lastSeenAt) {
			t.hasNewTrades = true
			break
		}
	}
	return nil
}

// ClearNotifications marks the inbox as viewed: the alert flag drops and
// the watermark advances to now and is written back to the state file.
// The trade list is not re-fetched; it may stay stale until the next Fetch.
func (t *Tracker) ClearNotifications() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hasNewTrades = false
	t.lastSeenAt = time.Now()

	data, err := json.Marshal(trackerState{TradeInboxSeenAt: t.lastSeenAt})
	if err != nil {
		return err
	}
	return os.WriteFile(t.statePath, data, 0o600)
}

// RespondToTrade accepts, declines or annotates a trade on the server and
// then re-fetches to resync the local list and alert flag. Local state is
// never mutated speculatively; a failed call leaves it as it was.
func (t *Tracker) RespondToTrade(ctx context.Context, tradeID string, update TradeUpdate) error {
	if _, err := t.api.UpdateTrade(ctx, tradeID, update); err != nil {
		return err
	}
	return t.Fetch(ctx)
}

// Reset drops the persisted watermark alongside the in-memory state, the
// logout path of the session.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.trades = nil
	t.hasNewTrades = false
	t.lastSeenAt = time.Time{}

	if err := os.Remove(t.statePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// HasNewTrades reports whether an unseen pending incoming trade exists.
func (t *Tracker) HasNewTrades() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.hasNewTrades
}

// Trades returns the trade list from the last successful Fetch.
func (t *Tracker) Trades() []models.TradeRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.trades
}

// LastSeenAt returns the current watermark.
func (t *Tracker) LastSeenAt() time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastSeenAt
}
