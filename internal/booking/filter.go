package booking

import (
	"time"

	"github.com/NE-Resources-2025/VRS/internal/models"
)

// Tab selects which slice of the booking list to show.
type Tab string

const (
	TabAll       Tab = "all"
	TabUpcoming  Tab = "upcoming"
	TabPast      Tab = "past"
	TabCancelled Tab = "cancelled"
)

// Filter returns the bookings matching the tab. Upcoming and past both
// exclude cancelled bookings; an unparsable pickup timestamp matches
// neither, so such bookings appear only under all.
func Filter(details []models.BookingDetail, tab Tab, now time.Time) []models.BookingDetail {
	if tab == TabAll || tab == "" {
		return details
	}
	out := make([]models.BookingDetail, 0, len(details))
	for _, d := range details {
		if matches(d, tab, now) {
			out = append(out, d)
		}
	}
	return out
}

func matches(d models.BookingDetail, tab Tab, now time.Time) bool {
	switch tab {
	case TabCancelled:
		return d.Status == models.BookingStatusCancelled
	case TabUpcoming, TabPast:
		if d.Status == models.BookingStatusCancelled {
			return false
		}
		pickup, err := d.PickupAt()
		if err != nil {
			return false
		}
		if tab == TabUpcoming {
			return pickup.After(now)
		}
		return !pickup.After(now)
	default:
		return true
	}
}
