package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
)

func GetCategories(categories *repositories.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allCategories, err := categories.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, allCategories)
	}
}

func CreateCategory(categories *repositories.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var category models.Category
		if err := c.BindJSON(&category); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&category); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if err := categories.Create(c.Request.Context(), &category); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
