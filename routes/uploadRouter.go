package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/services"
)

func UploadRoutes(incomingRoutes *gin.Engine, uploads *services.UploadService) {
	incomingRoutes.POST("/upload/image", controller.UploadImage(uploads))
}
