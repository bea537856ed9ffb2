package booking

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"

	"github.com/NE-Resources-2025/VRS/internal/api"
	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/NE-Resources-2025/VRS/internal/session"
	"github.com/go-playground/validator/v10"
)

// Price computes the booking total. It is the single source of the
// price/duration invariant: totalPrice is always recomputed from these two
// inputs, never edited independently.
func Price(duration int, pricePerHour float64) float64 {
	return float64(duration) * pricePerHour
}

// Op selects the direction of a duration adjustment.
type Op string

const (
	OpAdd      Op = "add"
	OpSubtract Op = "subtract"
)

var validate = validator.New()

// Form carries the raw user input for a new booking. Duration stays a
// string until validation so unparsable input can default instead of
// failing the bind.
type Form struct {
	PickupLocation string `validate:"required"`
	DropLocation   string `validate:"required"`
	PickupDate     string `validate:"required"`
	PickupTime     string `validate:"required"`
	Duration       string
}

// Service owns the client-side booking rules. Each mutating action holds a
// per-action in-flight flag so a duplicate submission fails immediately
// instead of racing the outstanding request.
type Service struct {
	api     *api.Client
	session *session.Store

	createMu sync.Mutex
	adjustMu sync.Mutex
	cancelMu sync.Mutex
}

func NewService(client *api.Client, store *session.Store) *Service {
	return &Service{api: client, session: store}
}

// Create validates the form, computes the total from the vehicle's rate and
// posts the booking in state pending. Validation failures are reported
// before any network call.
func (s *Service) Create(ctx context.Context, vehicle *models.Vehicle, form Form) (*models.Booking, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}
	duration, err := parseDuration(form.Duration)
	if err != nil {
		return nil, err
	}
	user := s.session.Current()
	if user == nil {
		return nil, validationError("User not authenticated")
	}
	if vehicle == nil {
		return nil, validationError("Vehicle information not available")
	}

	if !s.createMu.TryLock() {
		return nil, validationError("A booking request is already in progress")
	}
	defer s.createMu.Unlock()

	booking := models.Booking{
		UserID:         user.ID,
		VehicleID:      vehicle.ID,
		Status:         models.BookingStatusPending,
		PickupLocation: form.PickupLocation,
		DropLocation:   form.DropLocation,
		PickupDate:     form.PickupDate,
		PickupTime:     form.PickupTime,
		Duration:       duration,
		TotalPrice:     Price(duration, vehicle.PricePerHour),
	}
	return s.api.CreateBooking(ctx, booking)
}

// AdjustDuration applies a positive hour delta to a pending booking and
// persists the recomputed duration/price pair. Subtracting clamps at one
// hour; the duration is never driven to zero or below.
func (s *Service) AdjustDuration(ctx context.Context, detail *models.BookingDetail, hours string, op Op) (*models.Booking, error) {
	if detail == nil || detail.ID == "" {
		return nil, validationError("Booking not found")
	}
	if detail.Status != models.BookingStatusPending {
		return nil, validationError("Only pending bookings can be modified")
	}
	delta, err := parseHours(hours)
	if err != nil {
		return nil, err
	}

	newDuration := detail.Duration
	switch op {
	case OpAdd:
		newDuration += delta
	case OpSubtract:
		newDuration -= delta
		if newDuration < 1 {
			newDuration = 1
		}
	default:
		return nil, validationError("Unknown adjustment operation")
	}

	if !s.adjustMu.TryLock() {
		return nil, validationError("A duration update is already in progress")
	}
	defer s.adjustMu.Unlock()

	total := Price(newDuration, detail.Vehicle.PricePerHour)
	patch := api.BookingPatch{Duration: &newDuration, TotalPrice: &total}
	return s.api.UpdateBooking(ctx, detail.ID, patch)
}

// Cancel transitions a pending booking to cancelled after an explicit
// confirmation. A declined prompt returns (nil, nil) and issues no request;
// the caller refreshes its list after a successful cancellation.
func (s *Service) Cancel(ctx context.Context, b *models.Booking, confirm func() bool) (*models.Booking, error) {
	if b == nil || b.ID == "" {
		return nil, validationError("Booking not found")
	}
	if b.Status != models.BookingStatusPending {
		return nil, validationError("Only pending bookings can be cancelled")
	}
	if confirm != nil && !confirm() {
		return nil, nil
	}

	if !s.cancelMu.TryLock() {
		return nil, validationError("A cancellation is already in progress")
	}
	defer s.cancelMu.Unlock()

	return s.api.UpdateBookingStatus(ctx, b.ID, models.BookingStatusCancelled)
}

func validateForm(form Form) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return validationError("Invalid booking details")
	}
	switch fieldErrs[0].Field() {
	case "PickupLocation", "DropLocation":
		return validationError("Please enter pickup and drop-off locations")
	default:
		return validationError("Please select date and time")
	}
}

// parseDuration treats unparsable or zero input as one hour; an explicit
// negative value is rejected.
func parseDuration(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n == 0 {
		n = 1
	}
	if n < 1 {
		return 0, validationError("Duration must be at least 1 hour")
	}
	return n, nil
}

func parseHours(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, validationError("Please enter a valid number of hours")
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, validationError("Please enter a valid number of hours")
	}
	if n <= 0 {
		return 0, validationError("Please enter a positive number")
	}
	return n, nil
}

func validationError(message string) *api.Error {
	return &api.Error{Kind: api.ErrValidation, Message: message}
}
