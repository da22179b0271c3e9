package routes

import (
	"cardvault/controllers"
	"cardvault/middleware"
	"cardvault/services/redis"
	"cardvault/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	readLimit := middleware.RateLimit(redisClient, middleware.ReadLimit())
	writeLimit := middleware.RateLimit(redisClient, middleware.WriteLimit())

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.POST("/register", controllers.SignUp(db))

	api.POST("/login", controllers.Login(db))

	api.GET("/users/:id", controllers.GetUserPublicInfo(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.GET("/cards", readLimit, controllers.GetUserCards(db))

		authentication.GET("/cards/public", readLimit, controllers.GetPublicTradeCards(db))

		authentication.POST("/cards", writeLimit, controllers.AddCard(db))

		authentication.PATCH("/cards/:id", writeLimit, controllers.UpdateCard(db))

		authentication.DELETE("/cards/:id", writeLimit, controllers.DeleteCard(db))

		authentication.GET("/trades", readLimit, controllers.GetTrades(db))

		authentication.POST("/trades", writeLimit, controllers.CreateTrade(db))

		authentication.PATCH("/trades/:id", writeLimit, controllers.UpdateTrade(db))
	}
}
