package controllers_test

import (
	"net/http"
	"testing"

	models "cardvault/models/postgres"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestAddAndListCards(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	_, token := createTestUser(t, db, "collector")

	w := performJSON(router, http.MethodPost, "/auth/cards", token, map[string]interface{}{
		"name":        "Exodia the Forbidden One",
		"type":        "Monster",
		"rarity":      "Ultra Rare",
		"value":       3000,
		"description": "Head piece",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	created := decodeBody(t, w)
	assert.Equal(t, "Exodia the Forbidden One", created["name"])
	assert.Equal(t, "owned", created["status"])

	w = performJSON(router, http.MethodGet, "/auth/cards", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var cards []models.Card
	assert.NoError(t, db.Find(&cards).Error)
	assert.Len(t, cards, 1)
	assert.Equal(t, models.CardOwned, cards[0].Status)
}

func TestAddCardMissingName(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	_, token := createTestUser(t, db, "collector")

	w := performJSON(router, http.MethodPost, "/auth/cards", token, map[string]string{
		"type": "Spell",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAddCardInvalidStatus(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	_, token := createTestUser(t, db, "collector")

	w := performJSON(router, http.MethodPost, "/auth/cards", token, map[string]string{
		"name":   "Pot of Greed",
		"status": "lost",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCardStatus(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	owner, token := createTestUser(t, db, "collector")

	card := models.Card{Name: "Pot of Greed", UserID: owner.ID}
	assert.NoError(t, db.Create(&card).Error)

	w := performJSON(router, http.MethodPatch, "/auth/cards/"+card.ID.String(), token, map[string]string{
		"status": "for trade",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	var stored models.Card
	assert.NoError(t, db.First(&stored, "id = ?", card.ID).Error)
	assert.Equal(t, models.CardForTrade, stored.Status)
}

func TestUpdateCardOfAnotherUser(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	owner, _ := createTestUser(t, db, "collector")
	_, otherToken := createTestUser(t, db, "stranger")

	card := models.Card{Name: "Pot of Greed", UserID: owner.ID}
	assert.NoError(t, db.Create(&card).Error)

	w := performJSON(router, http.MethodPatch, "/auth/cards/"+card.ID.String(), otherToken, map[string]string{
		"name": "Hijacked",
	})

	// Not found rather than forbidden, ownership is part of the lookup
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCard(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	owner, token := createTestUser(t, db, "collector")

	card := models.Card{Name: "Pot of Greed", UserID: owner.ID}
	assert.NoError(t, db.Create(&card).Error)

	w := performJSON(router, http.MethodDelete, "/auth/cards/"+card.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.Card{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	w = performJSON(router, http.MethodDelete, "/auth/cards/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPublicTradeListing(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	owner, ownerToken := createTestUser(t, db, "collector")
	other, _ := createTestUser(t, db, "neighbour")

	cards := []models.Card{
		{Name: "Listed by neighbour", Status: models.CardForTrade, UserID: other.ID},
		{Name: "Neighbour keeps this", Status: models.CardOwned, UserID: other.ID},
		{Name: "Own listing", Status: models.CardForTrade, UserID: owner.ID},
	}
	for i := range cards {
		assert.NoError(t, db.Create(&cards[i]).Error)
	}

	w := performJSON(router, http.MethodGet, "/auth/cards/public", ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var listings []map[string]interface{}
	assert.NoError(t, decodeInto(w, &listings))
	assert.Len(t, listings, 1)
	assert.Equal(t, "Listed by neighbour", listings[0]["name"])
	assert.Equal(t, "neighbour", listings[0]["owner"].(map[string]interface{})["username"])
}
