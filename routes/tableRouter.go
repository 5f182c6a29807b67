package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/repositories"
)

func TableRoutes(incomingRoutes *gin.Engine, tables *repositories.TableRepository) {
	incomingRoutes.GET("/tables", controller.GetTables(tables))
	incomingRoutes.GET("/tables/:table_id", controller.GetTable(tables))
	incomingRoutes.POST("/tables", controller.CreateTable(tables))
	incomingRoutes.PATCH("/tables/:table_id", controller.UpdateTable(tables))
}
