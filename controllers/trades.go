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

type CreateTradeInput struct {
	ToUser  string `json:"toUser"`
	CardID  string `json:"cardId"`
	Message string `json:"message"`
}

// UpdateTradeInput uses pointers so "field absent" and "field set to the
// empty string" stay distinguishable: an empty responseMessage is a valid
// overwrite, an absent one leaves the stored value alone.
type UpdateTradeInput struct {
	Status          *string `json:"status"`
	ResponseMessage *string `json:"responseMessage"`
}

// @Summary Create a trade request
// @Description Creates a pending trade request from the authenticated user to another user, naming one of their cards
// @Tags trades
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param body body controllers.CreateTradeInput true "Trade request data"
// @Success 201 {object} object{success=bool,data=postgres.TradeRequest}
// @Failure 400 {object} object{success=bool,error=string}
// @Router /auth/trades [post]
// @Security ApiKeyAuth
func CreateTrade(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var input CreateTradeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.Error(utils.ErrMissingData())
			c.Abort()
			return
		}

		if input.ToUser == "" || input.CardID == "" {
			c.Error(utils.ErrMissingData())
			c.Abort()
			return
		}

		toUserID, err := uuid.Parse(input.ToUser)
		if err != nil {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid ID format"))
			c.Abort()
			return
		}
		cardID, err := uuid.Parse(input.CardID)
		if err != nil {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid ID format"))
			c.Abort()
			return
		}

		// No ownership or self-trade checks here: the card is not verified
		// to belong to toUser and fromUser == toUser is not rejected. That
		// matches the recorded behavior of the trade workflow.
		trade := models.TradeRequest{
			FromUserID: userID,
			ToUserID:   toUserID,
			CardID:     cardID,
			Message:    input.Message,
			Status:     models.TradePending,
		}
		if err := db.Create(&trade).Error; err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": trade})
	}
}

// @Summary Get the caller's trade requests
// @Description Returns every trade request where the authenticated user is sender or recipient, with both participants and the card joined in
// @Tags trades
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{success=bool,data=[]postgres.TradeRequest}
// @Failure 500 {object} object{success=bool,error=string}
// @Router /auth/trades [get]
// @Security ApiKeyAuth
func GetTrades(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		var trades []models.TradeRequest
		err := db.Preload("FromUser").Preload("ToUser").Preload("Card").
			Where("from_user_id = ? OR to_user_id = ?", userID, userID).
			Find(&trades).Error
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": trades})
	}
}

// @Summary Accept, decline or annotate a trade request
// @Description Updates the status and/or response message of a trade request. Only a participant (sender or recipient) may act on it.
// @Tags trades
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param id path string true "Trade request id"
// @Param body body controllers.UpdateTradeInput true "Fields to update"
// @Success 200 {object} object{success=bool,data=postgres.TradeRequest}
// @Failure 400 {object} object{success=bool,error=string}
// @Failure 403 {object} object{success=bool,error=string}
// @Failure 404 {object} object{success=bool,error=string}
// @Router /auth/trades/{id} [patch]
// @Security ApiKeyAuth
func UpdateTrade(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)

		tradeID, err := uuid.Parse(c.Param("id"))
		if err != nil {
			c.Error(utils.NewAPIError(http.StatusBadRequest, "Invalid ID format"))
			c.Abort()
			return
		}

		var input UpdateTradeInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.Error(utils.ErrMissingData())
			c.Abort()
			return
		}

		var trade models.TradeRequest
		if err := db.Where("id = ?", tradeID).First(&trade).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				c.Error(utils.ErrTradeNotFound())
			} else {
				c.Error(err)
			}
			c.Abort()
			return
		}

		// Either side of the trade may act on it, including the original
		// requester. Third parties are rejected before any validation.
		if !trade.IsParticipant(userID) {
			c.Error(utils.ErrNotParticipant())
			c.Abort()
			return
		}

		updates := map[string]interface{}{}
		if input.Status != nil {
			status := models.TradeStatus(*input.Status)
			if !status.IsValid() {
				c.Error(utils.ErrInvalidStatus())
				c.Abort()
				return
			}
			// Transitions are not restricted beyond enum membership, so a
			// redundant accept (or even terminal -> pending) goes through.
			updates["status"] = status
		}
		if input.ResponseMessage != nil {
			updates["response_message"] = *input.ResponseMessage
		}

		if len(updates) > 0 {
			if err := db.Model(&trade).Updates(updates).Error; err != nil {
				c.Error(err)
				c.Abort()
				return
			}
		}

		// Re-fetch with participants and card joined for the response
		var updated models.TradeRequest
		err = db.Preload("FromUser").Preload("ToUser").Preload("Card").
			Where("id = ?", tradeID).First(&updated).Error
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": updated})
	}
}
