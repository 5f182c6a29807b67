package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/repositories"
)

func PromotionRoutes(incomingRoutes *gin.Engine, promotions *repositories.PromotionRepository) {
	incomingRoutes.GET("/promotions", controller.GetPromotions(promotions))
	incomingRoutes.GET("/promotions/:promotion_id", controller.GetPromotion(promotions))
	incomingRoutes.POST("/promotions", controller.CreatePromotion(promotions))
	incomingRoutes.PATCH("/promotions/:promotion_id", controller.UpdatePromotion(promotions))
}
