package routes

import (
	"github.com/gin-gonic/gin"

	controller "go-restaurant-pos/controllers"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/notifications"
	"go-restaurant-pos/repositories"
)

func UserRoutes(incomingRoutes *gin.Engine, users *repositories.UserRepository,
	tokens *helpers.TokenHelper, hub *notifications.Hub) {
	incomingRoutes.POST("/users/signup", controller.SignUp(users, tokens))
	incomingRoutes.POST("/users/login", controller.Login(users, tokens))
	incomingRoutes.GET("/ws", hub.HandleWebSocket())
}

// AuthedUserRoutes registers the user endpoints that sit behind the auth
// middleware.
func AuthedUserRoutes(incomingRoutes *gin.Engine, users *repositories.UserRepository) {
	incomingRoutes.GET("/users", controller.GetUsers(users))
	incomingRoutes.GET("/users/:user_id", controller.GetUser(users))
}
