package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/repositories"
)

func ProductRoutes(incomingRoutes *gin.Engine, products *repositories.ProductRepository,
	categories *repositories.CategoryRepository) {
	incomingRoutes.GET("/products", controller.GetProducts(products))
	incomingRoutes.GET("/products/:product_id", controller.GetProduct(products))
	incomingRoutes.POST("/products", controller.CreateProduct(products, categories))
	incomingRoutes.PUT("/products/:product_id", controller.UpdateProduct(products, categories))
	incomingRoutes.GET("/categories", controller.GetCategories(categories))
	incomingRoutes.POST("/categories", controller.CreateCategory(categories))
}
