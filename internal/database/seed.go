package database

import (
	"github.com/NE-Resources-2025/VRS/internal/models"
	"gorm.io/gorm"
)

// SeedVehicles loads a demo fleet when the vehicles table is empty, so a
// fresh install has something to rent.
func SeedVehicles(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Vehicle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	vehicles := []models.Vehicle{
		{
			Type:         "Toyota Corolla",
			Plate:        "RAD 452 A",
			PricePerHour: 50,
			Status:       models.VehicleStatusAvailable,
			Seats:        5,
			Transmission: "Automatic",
			Rating:       4.8,
			Driver:       "Self-drive",
			Image:        "https://images.unsplash.com/photo-1623869675781-80aa31012a5a",
		},
		{
			Type:         "Suzuki Swift",
			Plate:        "RAD 118 B",
			PricePerHour: 35,
			Status:       models.VehicleStatusAvailable,
			Seats:        4,
			Transmission: "Manual",
			Rating:       4.5,
			Driver:       "Self-drive",
			Image:        "https://images.unsplash.com/photo-1541899481282-d53bffe3c35d",
		},
		{
			Type:         "Toyota Land Cruiser",
			Plate:        "RAD 907 C",
			PricePerHour: 120,
			Status:       models.VehicleStatusAvailable,
			Seats:        7,
			Transmission: "Automatic",
			Rating:       4.9,
			Driver:       "Chauffeured",
			Image:        "https://images.unsplash.com/photo-1594502184342-2e12f877aa73",
		},
		{
			Type:         "Kia Sportage",
			Plate:        "RAD 664 D",
			PricePerHour: 75,
			Status:       models.VehicleStatusUnavailable,
			Seats:        5,
			Transmission: "Automatic",
			Rating:       4.6,
			Driver:       "Self-drive",
			Image:        "https://images.unsplash.com/photo-1606220838315-056192d5e927",
		},
	}

	return db.Create(&vehicles).Error
}
