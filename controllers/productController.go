package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
)

type productRequest struct {
	Name          string          `json:"name" validate:"required,min=1,max=255"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	CategoryID    int64           `json:"category_id" validate:"required"`
	IsActive      bool            `json:"is_active"`
	ImageURL      *string         `json:"image_url"`
}

func GetProducts(products *repositories.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		onlyActive := c.Query("active") == "true"
		allProducts, err := products.FindAll(c.Request.Context(), onlyActive)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, allProducts)
	}
}

func GetProduct(products *repositories.ProductRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		product, err := products.FindByID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, err)
			return
		}
		if product == nil {
			respondError(c, models.NewNotFoundError("product", productID))
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func CreateProduct(products *repositories.ProductRepository, categories *repositories.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req productRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		category, err := categories.FindByID(c.Request.Context(), req.CategoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		if category == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
			return
		}

		now := time.Now()
		product := models.Product{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			StockQuantity: req.StockQuantity,
			ImageURL:      req.ImageURL,
			IsActive:      req.IsActive,
			CategoryID:    category.ID,
			Category:      category,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if err := products.Create(c.Request.Context(), &product); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func UpdateProduct(products *repositories.ProductRepository, categories *repositories.CategoryRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}

		var req productRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		product, err := products.FindByID(c.Request.Context(), productID)
		if err != nil {
			respondError(c, err)
			return
		}
		if product == nil {
			respondError(c, models.NewNotFoundError("product", productID))
			return
		}

		category, err := categories.FindByID(c.Request.Context(), req.CategoryID)
		if err != nil {
			respondError(c, err)
			return
		}
		if category == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category does not exist"})
			return
		}

		product.Name = req.Name
		product.Description = req.Description
		product.Price = req.Price
		product.StockQuantity = req.StockQuantity
		product.ImageURL = req.ImageURL
		product.IsActive = req.IsActive
		product.CategoryID = category.ID
		product.Category = category
		product.UpdatedAt = time.Now()

		if err := products.Update(c.Request.Context(), product); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
