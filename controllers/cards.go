package controllers

import (
	"cardvault/middleware"
	models "cardvault/models/postgres"
	"cardvault/utils"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CardInput struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Rarity      string `json:"rarity"`
	Value       int    `json:"value"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateCardInput uses pointers so an absent field is distinguishable
// from an explicit zero value.
type UpdateCardInput struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Rarity      *string `json:"rarity"`
	Value       *int    `json:"value"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// @Summary Get the caller's cards
// @Description Returns every card in the authenticated user's collection
// @Tags cards
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} postgres.Card
// @Failure 500 {object} object{success=bool,error=string}
// @Router /auth/cards [get]
// @Security ApiKeyAuth
func GetUserCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var cards []models.Card
		if err := db.Where("user_id = ?", userID).Find(&cards).Error; err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, cards)
	}
}

// @Summary Add a card
// @Description Creates a card in the authenticated user's collection
// @Tags cards
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param body body controllers.CardInput true "Card data"
// @Success 201 {object} postgres.Card
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/cards [post]
// @Security ApiKeyAuth
func AddCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input CardInput
		if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
			c.Error(utils.ErrMissingData())
			c.Abort()
			return
		}

		status := models.CardStatus(input.Status)
		if input.Status != "" && !status.IsValid() {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid card status"))
			c.Abort()
			return
		}

		card := models.Card{
			Name:        input.Name,
			Type:        input.Type,
			Rarity:      input.Rarity,
			Value:       input.Value,
			Description: input.Description,
			Status:      status,
			UserID:      userID,
		}
		if err := db.Create(&card).Error; err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusCreated, card)
	}
}

// @Summary Update a card
// @Description Updates a card owned by the authenticated user
// @Tags cards
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Card id"
// @Param body body controllers.UpdateCardInput true "Fields to update"
// @Success 200 {object} object{success=bool,data=postgres.Card}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /auth/cards/{id} [patch]
// @Security ApiKeyAuth
func UpdateCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		cardID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid card id"))
			c.Abort()
			return
		}

		var input UpdateCardInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.Error(utils.ErrMissingData())
			c.Abort()
			return
		}

		var card models.Card
		if err := db.Where("id = ? AND user_id = ?", cardID, userID).First(&card).Error; err != nil {
			c.Error(utils.NewAPIError(http.StatusNotFound, utils.MsgCardNotFound))
			c.Abort()
			return
		}

		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Type != nil {
			updates["type"] = *input.Type
		}
		if input.Rarity != nil {
			updates["rarity"] = *input.Rarity
		}
		if input.Value != nil {
			updates["value"] = *input.Value
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Status != nil {
			status := models.CardStatus(*input.Status)
			if !status.IsValid() {
				c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid card status"))
				c.Abort()
				return
			}
			updates["status"] = status
		}

		if len(updates) > 0 {
			if err := db.Model(&card).Updates(updates).Error; err != nil {
				c.Error(err)
				c.Abort()
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": card})
	}
}

// @Summary Delete a card
// @Description Deletes a card owned by the authenticated user
// @Tags cards
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Card id"
// @Success 200 {object} object{success=bool,message=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /auth/cards/{id} [delete]
// @Security ApiKeyAuth
func DeleteCard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		cardID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid card id"))
			c.Abort()
			return
		}

		result := db.Where("id = ? AND user_id = ?", cardID, userID).Delete(&models.Card{})
		if result.Error != nil {
			c.Error(result.Error)
			c.Abort()
			return
		}
		if result.RowsAffected == 0 {
			c.Error(utils.NewAPIError(http.StatusNotFound, utils.MsgCardNotFound))
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "message": utils.MsgCardDeleted})
	}
}

// @Summary Browse cards listed for trade
// @Description Returns other users' cards with status "for trade", with the owner's public info joined in
// @Tags cards
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {array} object{id=string,name=string,owner=object{id=string,username=string}}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /auth/cards/public [get]
// @Security ApiKeyAuth
func GetPublicTradeCards(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var cards []models.Card
		err := db.Preload("Owner").
			Where("status = ? AND user_id != ?", models.CardForTrade, userID).
			Find(&cards).Error
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		listings := make([]gin.H, len(cards))
		for i, card := range cards {
			listings[i] = gin.H{
				"id":          card.ID,
				"name":        card.Name,
				"type":        card.Type,
				"rarity":      card.Rarity,
				"value":       card.Value,
				"description": card.Description,
				"owner": gin.H{
					"id":       card.Owner.ID,
					"username": card.Owner.Username,
				},
			}
		}

		c.JSON(http.StatusOK, listings)
	}
}
