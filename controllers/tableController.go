package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go-restaurant-pos/models"
	"go-restaurant-pos/repositories"
)

func GetTables(tables *repositories.TableRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		allTables, err := tables.FindAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, allTables)
	}
}

func GetTable(tables *repositories.TableRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
			return
		}

		table, err := tables.FindByID(c.Request.Context(), tableID)
		if err != nil {
			respondError(c, err)
			return
		}
		if table == nil {
			respondError(c, models.NewNotFoundError("table", tableID))
			return
		}
		c.JSON(http.StatusOK, table)
	}
}

func CreateTable(tables *repositories.TableRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var table models.Table
		if err := c.BindJSON(&table); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if validationErr := validate.Struct(&table); validationErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			return
		}

		if table.Status == "" {
			table.Status = models.TableStatusFree
		}
		if !table.Status.IsValid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table status: " + string(table.Status)})
			return
		}
		now := time.Now()
		table.CreatedAt = now
		table.UpdatedAt = now

		if err := tables.Create(c.Request.Context(), &table); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, table)
	}
}

func UpdateTable(tables *repositories.TableRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		tableID, err := strconv.ParseInt(c.Param("table_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid table id"})
			return
		}

		var payload models.Table
		if err := c.BindJSON(&payload); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		table, err := tables.FindByID(c.Request.Context(), tableID)
		if err != nil {
			respondError(c, err)
			return
		}
		if table == nil {
			respondError(c, models.NewNotFoundError("table", tableID))
			return
		}

		if payload.Name != "" {
			table.Name = payload.Name
		}
		if payload.Status != "" {
			if !payload.Status.IsValid() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown table status: " + string(payload.Status)})
				return
			}
			table.Status = payload.Status
		}
		table.UpdatedAt = time.Now()

		if err := tables.Update(c.Request.Context(), table); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, table)
	}
}
