package main

import (
	"log"

	"github.com/NE-Resources-2025/VRS/internal/config"
	"github.com/NE-Resources-2025/VRS/internal/database"
	"github.com/NE-Resources-2025/VRS/internal/handlers"
	"github.com/NE-Resources-2025/VRS/internal/logger"
	"github.com/NE-Resources-2025/VRS/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.Load()
	logger.Setup("./logs/server.log")

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := database.SeedVehicles(db); err != nil {
		log.Fatalf("Failed to seed vehicles: %v", err)
	}

	// The server still works without Redis, just without cached listings
	cache, err := services.NewListingCache(cfg.RedisURL)
	if err != nil {
		log.Printf("Redis unavailable, listings will not be cached: %v", err)
		cache = nil
	}

	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsConfig))

	// Collection endpoints queryable by simple equality filters, matching
	// what the rental client expects of a generic JSON resource server
	r.GET("/users", handlers.ListUsers(db))
	r.POST("/users", handlers.CreateUser(db))
	r.GET("/users/:id", handlers.GetUser(db))
	r.PATCH("/users/:id", handlers.UpdateUser(db))

	r.GET("/vehicles", handlers.ListVehicles(db, cache))
	r.POST("/vehicles", handlers.CreateVehicle(db, cache))
	r.GET("/vehicles/:id", handlers.GetVehicle(db))

	r.GET("/bookings", handlers.ListBookings(db))
	r.POST("/bookings", handlers.CreateBooking(db))
	r.PATCH("/bookings/:id", handlers.UpdateBooking(db))

	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
