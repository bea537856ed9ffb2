// Package payment implements the client-side gate in front of the confirm
// transition. No charge is processed anywhere; passing the checks only
// flips the booking status.
package payment

import (
	"context"
	"regexp"
	"strings"
	"sync"

	"github.com/NE-Resources-2025/VRS/internal/api"
	"github.com/NE-Resources-2025/VRS/internal/models"
)

var (
	cvvPattern    = regexp.MustCompile(`^\d{3,4}$`)
	cardPattern   = regexp.MustCompile(`^\d{16}$`)
	expiryPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
)

type CardDetails struct {
	Number string
	Expiry string // MM/YY
	CVV    string
}

// ValidateCard runs the format checks in order, short-circuiting on the
// first failure. Spaces in the card number are ignored.
func ValidateCard(card CardDetails) error {
	if card.Number == "" || card.Expiry == "" || card.CVV == "" {
		return validationError("Please fill in all fields")
	}
	if !cvvPattern.MatchString(card.CVV) {
		return validationError("CVV must be 3 or 4 digits")
	}
	if !cardPattern.MatchString(strings.ReplaceAll(card.Number, " ", "")) {
		return validationError("Card number must be 16 digits")
	}
	if !expiryPattern.MatchString(card.Expiry) {
		return validationError("Expiry must be in MM/YY format")
	}
	return nil
}

// Processor confirms bookings once their card details pass validation.
type Processor struct {
	api *api.Client
	mu  sync.Mutex
}

func NewProcessor(client *api.Client) *Processor {
	return &Processor{api: client}
}

// Confirm validates and then issues exactly one status update transitioning
// the booking to confirmed. Any validation failure is reported without a
// network call.
func (p *Processor) Confirm(ctx context.Context, b *models.Booking, card CardDetails) (*models.Booking, error) {
	if b == nil || b.ID == "" {
		return nil, validationError("Invalid booking ID. Please try booking again.")
	}
	if b.Status != models.BookingStatusPending {
		return nil, validationError("Only pending bookings can be paid for")
	}
	if err := ValidateCard(card); err != nil {
		return nil, err
	}

	if !p.mu.TryLock() {
		return nil, validationError("A payment is already in progress")
	}
	defer p.mu.Unlock()

	return p.api.UpdateBookingStatus(ctx, b.ID, models.BookingStatusConfirmed)
}

func validationError(message string) *api.Error {
	return &api.Error{Kind: api.ErrValidation, Message: message}
}
