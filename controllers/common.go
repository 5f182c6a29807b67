package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator"

	"go-restaurant-pos/models"
)

var validate = validator.New()

// respondError maps the domain error kinds onto HTTP statuses; anything
// unclassified becomes a generic server error.
func respondError(c *gin.Context, err error) {
	var notFound *models.NotFoundError
	var validation *models.ValidationError
	var conflict *models.ConflictError
	var accessDenied *models.AccessDeniedError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &accessDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
