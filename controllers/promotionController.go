package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
)

func GetPromotions(promotions *repositories.PromotionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allPromotions, err := promotions.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, allPromotions)
	}
}

func GetPromotion(promotions *repositories.PromotionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		promotionID, err := strconv.ParseInt(c.Param("promotion_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion id"})
			return
		}

		promotion, err := promotions.FindByID(c.Request.Context(), promotionID)
		if err != nil {
			respondError(c, err)
			return
		}
		if promotion == nil {
			respondError(c, models.NewNotFoundError("promotion", promotionID))
			return
		}
		c.JSON(http.StatusOK, promotion)
	}
}

func CreatePromotion(promotions *repositories.PromotionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var promotion models.Promotion
		if err := c.BindJSON(&promotion); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&promotion); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}
		if !promotion.EndDate.After(promotion.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
			return
		}

		now := time.Now()
		promotion.CreatedAt = now
		promotion.UpdatedAt = now

		if err := promotions.Create(c.Request.Context(), &promotion); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, promotion)
	}
}

func UpdatePromotion(promotions *repositories.PromotionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		promotionID, err := strconv.ParseInt(c.Param("promotion_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid promotion id"})
			return
		}

		var payload models.Promotion
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		promotion, err := promotions.FindByID(c.Request.Context(), promotionID)
		if err != nil {
			respondError(c, err)
			return
		}
		if promotion == nil {
			respondError(c, models.NewNotFoundError("promotion", promotionID))
			return
		}

		if payload.Name != "" {
			promotion.Name = payload.Name
		}
		if payload.DiscountPercent != nil {
			promotion.DiscountPercent = payload.DiscountPercent
		}
		if payload.DiscountAmount != nil {
			promotion.DiscountAmount = payload.DiscountAmount
		}
		if !payload.StartDate.IsZero() {
			promotion.StartDate = payload.StartDate
		}
		if !payload.EndDate.IsZero() {
			promotion.EndDate = payload.EndDate
		}
		promotion.IsActive = payload.IsActive
		promotion.UpdatedAt = time.Now()

		if !promotion.EndDate.After(promotion.StartDate) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be after start_date"})
			return
		}

		if err := promotions.Update(c.Request.Context(), promotion); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, promotion)
	}
}
