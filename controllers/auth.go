package controllers

import (
	"cardvault/middleware"
	models "cardvault/models/postgres"
	"cardvault/utils"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignUpInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// @Summary Register a new user
// @Description Creates an account with a bcrypt-hashed password
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.SignUpInput true "New account data"
// @Success 201 {object} object{message=string,user=object{id=string,username=string,email=string}}
// @Failure 400 {object} object{message=string}
// @Failure 500 {object} object{message=string}
// @Router /register [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input SignUpInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgMissingData})
			return
		}

		username := strings.TrimSpace(input.Username)
		email := strings.ToLower(strings.TrimSpace(input.Email))
		if username == "" || email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgMissingData})
			return
		}

		// Check for an existing account first, the unique index is the backstop
		var existing models.User
		if result := db.Where("email = ?", email).First(&existing); result.RowsAffected > 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": utils.MsgRegisterError})
			return
		}

		user := models.User{
			Username:     username,
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": utils.MsgRegisterError})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"message": utils.MsgRegisterSuccess,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}
}

// @Summary Log in
// @Description Verifies credentials and returns a bearer token valid for one day
// @Tags auth
// @Accept json
// @Produce json
// @Param body body controllers.LoginInput true "Credentials"
// @Success 200 {object} object{message=string,token=string,user=object{id=string,username=string,email=string}}
// @Failure 400 {object} object{message=string}
// @Failure 500 {object} object{message=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgMissingData})
			return
		}

		email := strings.ToLower(strings.TrimSpace(input.Email))
		if email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgMissingData})
			return
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgInvalidLogin})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": utils.MsgInvalidLogin})
			return
		}

		token, err := middleware.GenerateToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": utils.MsgLoginSuccess,
			"token":   token,
			"user": gin.H{
				"id":       user.ID,
				"username": user.Username,
				"email":    user.Email,
			},
		})
	}
}
