package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"go-restaurant-pos/config"
	"go-restaurant-pos/database"
	"go-restaurant-pos/helpers"
	"go-restaurant-pos/logger"
	"go-restaurant-pos/middleware"
	"go-restaurant-pos/notifications"
	"go-restaurant-pos/repositories"
	"go-restaurant-pos/routes"
	"go-restaurant-pos/services"
)

func main() {
	log := logger.New("restaurant-pos")

	cfg, err := config.Load()
	if err != nil {
		log.Error("config_failed", "startup", "Failed to load configuration", err, nil)
		os.Exit(1)
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Error("db_connection_failed", "startup", "Failed to connect to PostgreSQL", err, nil)
		os.Exit(1)
	}
	defer db.Close()
	log.Info("db_connected", "startup", "Connected to PostgreSQL database", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := db.RunMigrations(ctx, "migrations"); err != nil {
		cancel()
		log.Error("migrations_failed", "startup", "Failed to run migrations", err, nil)
		os.Exit(1)
	}
	cancel()

	userRepo := repositories.NewUserRepository(db)
	tableRepo := repositories.NewTableRepository(db)
	productRepo := repositories.NewProductRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	promotionRepo := repositories.NewPromotionRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	tokens := helpers.NewTokenHelper(cfg.SecretKey)
	hub := notifications.NewHub(log)
	orderService := services.NewOrderService(orderRepo, userRepo, tableRepo,
		productRepo, promotionRepo, hub, log)

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"POST", "GET", "PATCH", "DELETE", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "token", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Page not found"})
	})

	// Public endpoints
	routes.UserRoutes(router, userRepo, tokens, hub)

	// Everything below requires a valid token
	router.Use(middleware.Authentication(tokens))
	routes.AuthedUserRoutes(router, userRepo)
	routes.ProductRoutes(router, productRepo, categoryRepo)
	routes.TableRoutes(router, tableRepo)
	routes.PromotionRoutes(router, promotionRepo)
	routes.OrderRoutes(router, orderService)

	if cfg.CloudinaryCloudName != "" {
		uploadService, err := services.NewUploadService(cfg)
		if err != nil {
			log.Error("cloudinary_init_failed", "startup", "Failed to init Cloudinary", err, nil)
			os.Exit(1)
		}
		routes.UploadRoutes(router, uploadService)
	} else {
		log.Info("upload_disabled", "startup", "Cloudinary credentials not set, image upload disabled", nil)
	}

	log.Info("service_started", "startup", fmt.Sprintf("Listening on port %s", cfg.Port), map[string]interface{}{
		"port": cfg.Port,
	})
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Error("server_failed", "startup", "HTTP server failed", err, nil)
		os.Exit(1)
	}
}
