package controllers_test

import (
	"net/http"
	"testing"

	models "cardvault/models/postgres"

	"github.com/stretchr/testify/assert"
)

func TestSignUpAndLogin(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	w := performJSON(router, http.MethodPost, "/register", "", map[string]string{
		"username": "newcomer",
		"email":    "newcomer@example.com",
		"password": "testpass123",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "User registered successfully", body["message"])

	// The stored password is hashed, never the plaintext
	var user models.User
	assert.NoError(t, db.First(&user, "email = ?", "newcomer@example.com").Error)
	assert.NotEqual(t, "testpass123", user.PasswordHash)

	w = performJSON(router, http.MethodPost, "/login", "", map[string]string{
		"email":    "newcomer@example.com",
		"password": "testpass123",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.NotEmpty(t, body["token"])

	// The issued token is accepted by the authenticated routes
	token := body["token"].(string)
	w = performJSON(router, http.MethodGet, "/auth/cards", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignUpMissingFields(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	w := performJSON(router, http.MethodPost, "/register", "", map[string]string{
		"username": "newcomer",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var count int64
	assert.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	createTestUser(t, db, "veteran")

	w := performJSON(router, http.MethodPost, "/register", "", map[string]string{
		"username": "impostor",
		"email":    "veteran@example.com",
		"password": "testpass123",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "registered")
}

func TestLoginWrongPassword(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	createTestUser(t, db, "veteran")

	w := performJSON(router, http.MethodPost, "/login", "", map[string]string{
		"email":    "veteran@example.com",
		"password": "wrongpass",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
}

func TestGetUserPublicInfo(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)
	user, _ := createTestUser(t, db, "veteran")

	w := performJSON(router, http.MethodGet, "/users/"+user.ID.String(), "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "veteran", body["username"])
	// Email and password hash stay private
	assert.NotContains(t, w.Body.String(), "veteran@example.com")
}

func TestAuthRequiredRejectsGarbageToken(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	w := performJSON(router, http.MethodGet, "/auth/trades", "not-a-jwt", nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
}

func TestTokenErrorsUseErrorEnvelope(t *testing.T) {
	db := newTestDB(t)
	router := newTestRouter(db)

	// Missing and invalid tokens answer in the same shape as every
	// other API error
	w := performJSON(router, http.MethodGet, "/auth/trades", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])
}
