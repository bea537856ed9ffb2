package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the three booking states.
func (s BookingStatus) Valid() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed || s == BookingStatusCancelled
}

// Terminal reports whether s permits no further transitions.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusConfirmed || s == BookingStatusCancelled
}

type Booking struct {
	ID             string        `json:"id" gorm:"primaryKey;type:uuid"`
	UserID         string        `json:"userId" gorm:"column:user_id;not null;index"`
	VehicleID      string        `json:"vehicleId" gorm:"column:vehicle_id;not null;index"`
	Status         BookingStatus `json:"status" gorm:"column:status;not null;default:'pending'"`
	PickupLocation string        `json:"pickupLocation" gorm:"column:pickup_location;not null"`
	DropLocation   string        `json:"dropLocation" gorm:"column:drop_location;not null"`
	PickupDate     string        `json:"pickupDate" gorm:"column:pickup_date;not null"` // YYYY-MM-DD
	PickupTime     string        `json:"pickupTime" gorm:"column:pickup_time;not null"` // HH:MM
	Duration       int           `json:"duration" gorm:"column:duration;not null"`      // whole hours, >= 1
	TotalPrice     float64       `json:"totalPrice" gorm:"column:total_price;not null"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}

// PickupAt combines PickupDate and PickupTime into a local timestamp.
func (b *Booking) PickupAt() (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", b.PickupDate+" "+b.PickupTime, time.Local)
}

// BookingDetail is the read-side join the listing fetch produces: a booking
// enriched with its vehicle record.
type BookingDetail struct {
	Booking
	Vehicle Vehicle `json:"vehicle" gorm:"-"`
}
