package handlers

import (
	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/NE-Resources-2025/VRS/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ListVehicles retrieves vehicles, optionally filtered by status. Listings
// are served from the cache when one is configured.
func ListVehicles(db *gorm.DB, cache *services.ListingCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := c.Query("status")

		if cache != nil {
			cached, err := cache.GetVehicles(c.Request.Context(), status)
			if err != nil {
				logrus.WithError(err).Debug("vehicle cache read failed")
			}
			if cached != nil {
				c.JSON(200, cached)
				return
			}
		}

		query := db
		if status != "" {
			query = query.Where("status = ?", status)
		}

		var vehicles []models.Vehicle
		if err := query.Find(&vehicles).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch vehicles"})
			return
		}

		if cache != nil {
			if err := cache.SetVehicles(c.Request.Context(), status, vehicles); err != nil {
				logrus.WithError(err).Debug("vehicle cache write failed")
			}
		}

		c.JSON(200, vehicles)
	}
}

// GetVehicle retrieves a single vehicle by id
func GetVehicle(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var vehicle models.Vehicle
		if err := db.First(&vehicle, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}
		c.JSON(200, vehicle)
	}
}

// CreateVehicle adds a vehicle to the fleet and drops the stale listings
// from the cache. The rental client never calls this; it exists for fleet
// management and seeding.
func CreateVehicle(db *gorm.DB, cache *services.ListingCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Type         string               `json:"type" binding:"required"`
			Plate        string               `json:"plate" binding:"required"`
			PricePerHour float64              `json:"pricePerHour" binding:"required,gt=0"`
			Status       models.VehicleStatus `json:"status" binding:"omitempty,oneof=available unavailable"`
			Seats        int                  `json:"seats"`
			Transmission string               `json:"transmission"`
			Rating       float64              `json:"rating"`
			Driver       string               `json:"driver"`
			Image        string               `json:"image"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if input.Status == "" {
			input.Status = models.VehicleStatusAvailable
		}

		vehicle := models.Vehicle{
			Type:         input.Type,
			Plate:        input.Plate,
			PricePerHour: input.PricePerHour,
			Status:       input.Status,
			Seats:        input.Seats,
			Transmission: input.Transmission,
			Rating:       input.Rating,
			Driver:       input.Driver,
			Image:        input.Image,
		}

		if err := db.Create(&vehicle).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create vehicle"})
			return
		}

		if cache != nil {
			if err := cache.InvalidateVehicles(c.Request.Context()); err != nil {
				logrus.WithError(err).Debug("vehicle cache invalidation failed")
			}
		}

		c.JSON(201, vehicle)
	}
}
