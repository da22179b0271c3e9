package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"cardvault/controllers"
	"cardvault/middleware"
	models "cardvault/models/postgres"
	"cardvault/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("JWT_SECRET", "test-secret")
	os.Exit(m.Run())
}

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Error opening in-memory database: %v", err)
	}

	// A second pooled connection would see an empty in-memory database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Error reading SQL DB instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(models.User{}, models.Card{}, models.TradeRequest{})
	if err != nil {
		t.Fatalf("Error migrating test database: %v", err)
	}
	return db
}

// newTestRouter wires the handlers under test the way routes.SetupRoutes
// does, minus the rate limiter (covered by its own tests).
func newTestRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(utils.ErrorHandler())

	router.POST("/register", controllers.SignUp(db))
	router.POST("/login", controllers.Login(db))
	router.GET("/users/:id", controllers.GetUserPublicInfo(db))

	authentication := router.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.GET("/cards", controllers.GetUserCards(db))
		authentication.GET("/cards/public", controllers.GetPublicTradeCards(db))
		authentication.POST("/cards", controllers.AddCard(db))
		authentication.PATCH("/cards/:id", controllers.UpdateCard(db))
		authentication.DELETE("/cards/:id", controllers.DeleteCard(db))
		authentication.GET("/trades", controllers.GetTrades(db))
		authentication.POST("/trades", controllers.CreateTrade(db))
		authentication.PATCH("/trades/:id", controllers.UpdateTrade(db))
	}
	return router
}

// createTestUser inserts a user and returns it with a valid bearer token.
func createTestUser(t *testing.T, db *gorm.DB, username string) (models.User, string) {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpass123"), bcrypt.MinCost)
	assert.NoError(t, err)

	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
	}
	assert.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateToken(user.ID)
	assert.NoError(t, err)
	return user, token
}

// performJSON executes one request against the router and records the response.
func performJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeInto(w *httptest.ResponseRecorder, v interface{}) error {
	return json.Unmarshal(w.Body.Bytes(), v)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
