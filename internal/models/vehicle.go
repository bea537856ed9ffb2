package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "available"
	VehicleStatusUnavailable VehicleStatus = "unavailable"
)

// Vehicle is read-only from the client's perspective; its status is
// managed by whoever operates the fleet.
type Vehicle struct {
	ID           string        `json:"id" gorm:"primaryKey;type:uuid"`
	Type         string        `json:"type" gorm:"column:type;not null"`
	Plate        string        `json:"plate" gorm:"column:plate;not null"`
	PricePerHour float64       `json:"pricePerHour" gorm:"column:price_per_hour;not null"`
	Status       VehicleStatus `json:"status" gorm:"column:status;not null;default:'available'"`
	Seats        int           `json:"seats,omitempty"`
	Transmission string        `json:"transmission,omitempty"`
	Rating       float64       `json:"rating,omitempty"`
	Driver       string        `json:"driver"`
	Image        string        `json:"image"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}
