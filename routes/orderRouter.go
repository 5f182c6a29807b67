package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/services"
)

func OrderRoutes(incomingRoutes *gin.Engine, svc *services.OrderService) {
	incomingRoutes.GET("/orders", controller.GetOrders(svc))
	incomingRoutes.GET("/orders/:order_id", controller.GetOrder(svc))
	incomingRoutes.GET("/orders/:order_id/owned", controller.GetOwnedOrder(svc))
	incomingRoutes.POST("/orders", controller.CreateOrder(svc))
	incomingRoutes.PATCH("/orders/:order_id/status", controller.UpdateOrderStatus(svc))
	incomingRoutes.GET("/tables/:table_id/orders", controller.GetOrdersByTable(svc))
	incomingRoutes.GET("/tables/:table_id/orders/open", controller.GetOpenOrderByTable(svc))
	incomingRoutes.GET("/reports/top-products", controller.GetTopSellingProducts(svc))
	incomingRoutes.GET("/reports/revenue-by-category", controller.GetRevenueByCategory(svc))
	incomingRoutes.GET("/reports/revenue-by-day", controller.GetRevenueByDay(svc))
}
