package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"go-restaurant-pos/helpers"
	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
)

func GetUsers(users *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allUsers, err := users.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, allUsers)
	}
}

func GetUser(users *repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		user, err := users.FindByID(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		if user == nil {
			respondError(c, models.NewNotFoundError("user", userID))
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func SignUp(users *repositories.UserRepository, tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.BindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&user); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		existing, err := users.FindByUsername(c.Request.Context(), user.Username)
		if err != nil {
			respondError(c, err)
			return
		}
		if existing != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}

		user.PasswordHash = HashPassword(*user.Password)
		user.Password = nil
		now := time.Now()
		user.CreatedAt = now
		user.UpdatedAt = now

		if err := users.Create(c.Request.Context(), &user, []string{models.RoleUser}); err != nil {
			respondError(c, err)
			return
		}

		token, refreshToken, err := tokens.GenerateAllTokens(user.Username, user.Email, user.ID, user.Roles)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"user":          user,
			"token":         token,
			"refresh_token": refreshToken,
		})
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func Login(users *repositories.UserRepository, tokens *helpers.TokenHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		foundUser, err := users.FindByUsername(c.Request.Context(), req.Username)
		if err != nil {
			respondError(c, err)
			return
		}
		if foundUser == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "username or password is incorrect"})
			return
		}

		if !VerifyPassword(req.Password, foundUser.PasswordHash) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "username or password is incorrect"})
			return
		}

		token, refreshToken, err := tokens.GenerateAllTokens(foundUser.Username, foundUser.Email, foundUser.ID, foundUser.Roles)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user":          foundUser,
			"token":         token,
			"refresh_token": refreshToken,
		})
	}
}

func HashPassword(password string) string {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	if err != nil {
		panic(err)
	}
	return string(bytes)
}

func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
