package handlers

import (
	"fmt"

	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ListBookings retrieves bookings, optionally filtered by owner
func ListBookings(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db
		if userID := c.Query("userId"); userID != "" {
			query = query.Where("user_id = ?", userID)
		}

		var bookings []models.Booking
		if err := query.Find(&bookings).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch bookings"})
			return
		}

		c.JSON(200, bookings)
	}
}

// CreateBooking handles the creation of a new booking
func CreateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			UserID         string               `json:"userId" binding:"required"`
			VehicleID      string               `json:"vehicleId" binding:"required"`
			Status         models.BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed cancelled"`
			PickupLocation string               `json:"pickupLocation" binding:"required"`
			DropLocation   string               `json:"dropLocation" binding:"required"`
			PickupDate     string               `json:"pickupDate" binding:"required"`
			PickupTime     string               `json:"pickupTime" binding:"required"`
			Duration       int                  `json:"duration" binding:"required,gte=1"`
			TotalPrice     float64              `json:"totalPrice"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", input.UserID).Error; err != nil {
			c.JSON(404, gin.H{"error": "User not found"})
			return
		}

		var vehicle models.Vehicle
		if err := db.First(&vehicle, "id = ?", input.VehicleID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Vehicle not found"})
			return
		}

		if input.Status == "" {
			input.Status = models.BookingStatusPending
		}

		booking := models.Booking{
			UserID:         input.UserID,
			VehicleID:      input.VehicleID,
			Status:         input.Status,
			PickupLocation: input.PickupLocation,
			DropLocation:   input.DropLocation,
			PickupDate:     input.PickupDate,
			PickupTime:     input.PickupTime,
			Duration:       input.Duration,
			TotalPrice:     input.TotalPrice,
		}

		if err := db.Create(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to create booking"})
			return
		}

		c.JSON(201, booking)
	}
}

// UpdateBooking applies a partial update. Confirmed and cancelled are
// terminal: any change to a booking in either state is rejected rather
// than left to the client to avoid.
func UpdateBooking(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Status         *models.BookingStatus `json:"status"`
			PickupLocation *string               `json:"pickupLocation"`
			DropLocation   *string               `json:"dropLocation"`
			PickupDate     *string               `json:"pickupDate"`
			PickupTime     *string               `json:"pickupTime"`
			Duration       *int                  `json:"duration"`
			TotalPrice     *float64              `json:"totalPrice"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		var booking models.Booking
		if err := db.First(&booking, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(404, gin.H{"error": "Booking not found"})
			return
		}

		if booking.Status.Terminal() {
			c.JSON(409, gin.H{"error": fmt.Sprintf("Booking is already %s", booking.Status)})
			return
		}

		if input.Status != nil {
			if !input.Status.Valid() {
				c.JSON(400, gin.H{"error": "Invalid booking status"})
				return
			}
			booking.Status = *input.Status
		}
		if input.PickupLocation != nil {
			booking.PickupLocation = *input.PickupLocation
		}
		if input.DropLocation != nil {
			booking.DropLocation = *input.DropLocation
		}
		if input.PickupDate != nil {
			booking.PickupDate = *input.PickupDate
		}
		if input.PickupTime != nil {
			booking.PickupTime = *input.PickupTime
		}
		if input.Duration != nil {
			if *input.Duration < 1 {
				c.JSON(400, gin.H{"error": "Duration must be at least 1 hour"})
				return
			}
			booking.Duration = *input.Duration
		}
		if input.TotalPrice != nil {
			booking.TotalPrice = *input.TotalPrice
		}

		if err := db.Save(&booking).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to update booking"})
			return
		}

		c.JSON(200, booking)
	}
}
