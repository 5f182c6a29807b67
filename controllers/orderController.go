package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/models"
	"go-restaurant-pos/services"
)

func GetOrders(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.GetAllOrders(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		order, err := svc.GetOrderByID(c.Request.Context(), orderID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GetOwnedOrder returns the order only when the requester owns it or holds
// an admin/moderator role.
func GetOwnedOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}
		username := c.GetString("username")

		order, err := svc.GetOrderByIDAndCheckOwner(c.Request.Context(), orderID, username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func CreateOrder(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var order models.Order
		if err := c.BindJSON(&order); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		username := c.GetString("username")

		created, err := svc.CreateOrder(c.Request.Context(), &order, username)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

type statusUpdateRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

func UpdateOrderStatus(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.ParseInt(c.Param("order_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
			return
		}

		var req statusUpdateRequest
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&req); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		order, err := svc.UpdateOrderStatus(c.Request.Context(), orderID, req.Status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func GetOrdersByTable(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
			return
		}

		var status *models.OrderStatus
		if raw := c.Query("status"); raw != "" {
			s := models.OrderStatus(raw)
			if !s.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown order status: " + raw})
				return
			}
			status = &s
		}

		orders, err := svc.GetOrdersByTable(c.Request.Context(), tableID, status)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func GetOpenOrderByTable(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
			return
		}

		order, err := svc.GetOpenOrderByTableID(c.Request.Context(), tableID)
		if err != nil {
			respondError(c, err)
			return
		}
		if order == nil {
			c.JSON(http.StatusOK, nil)
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// ================= REPORT =================

func GetTopSellingProducts(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		topN, err := strconv.Atoi(c.DefaultQuery("top", "5"))
		if err != nil || topN < 1 {
			topN = 5
		}

		rows, err := svc.GetTopSellingProducts(c.Request.Context(), topN)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func GetRevenueByCategory(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.GetRevenueByCategory(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

func GetRevenueByDay(svc *services.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := svc.GetRevenueByDay(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}
