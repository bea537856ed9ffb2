package booking

import (
	"testing"
	"time"

	"github.com/NE-Resources-2025/VRS/internal/models"
)

func detail(id string, status models.BookingStatus, date, clock string) models.BookingDetail {
	return models.BookingDetail{Booking: models.Booking{
		ID:         id,
		Status:     status,
		PickupDate: date,
		PickupTime: clock,
	}}
}

func ids(details []models.BookingDetail) []string {
	out := make([]string, len(details))
	for i, d := range details {
		out[i] = d.ID
	}
	return out
}

func TestFilterTabs(t *testing.T) {
	now := time.Date(2025, 5, 25, 12, 0, 0, 0, time.Local)
	all := []models.BookingDetail{
		detail("future", models.BookingStatusPending, "2025-05-26", "09:00"),
		detail("past", models.BookingStatusConfirmed, "2025-05-24", "09:00"),
		detail("cancelled-future", models.BookingStatusCancelled, "2025-06-01", "09:00"),
		detail("unparsable", models.BookingStatusPending, "soon", "whenever"),
	}

	cases := []struct {
		tab  Tab
		want []string
	}{
		{TabAll, []string{"future", "past", "cancelled-future", "unparsable"}},
		{TabUpcoming, []string{"future"}},
		{TabPast, []string{"past"}},
		{TabCancelled, []string{"cancelled-future"}},
		{Tab(""), []string{"future", "past", "cancelled-future", "unparsable"}},
	}
	for _, tc := range cases {
		got := ids(Filter(all, tc.tab, now))
		if len(got) != len(tc.want) {
			t.Errorf("tab %q: got %v, want %v", tc.tab, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("tab %q: got %v, want %v", tc.tab, got, tc.want)
				break
			}
		}
	}
}

func TestFilterPickupExactlyNowIsPast(t *testing.T) {
	now := time.Date(2025, 5, 25, 9, 0, 0, 0, time.Local)
	all := []models.BookingDetail{detail("b1", models.BookingStatusPending, "2025-05-25", "09:00")}

	if got := Filter(all, TabPast, now); len(got) != 1 {
		t.Fatalf("pickup at now: past tab got %d entries, want 1", len(got))
	}
	if got := Filter(all, TabUpcoming, now); len(got) != 0 {
		t.Fatalf("pickup at now: upcoming tab got %d entries, want 0", len(got))
	}
}
