package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/services"
)

// UploadImage accepts a multipart file and returns the hosted image URL.
func UploadImage(uploads *services.UploadService) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}

		url, err := uploads.UploadImage(c.Request.Context(), file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
	}
}
