package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/NE-Resources-2025/VRS/internal/models"
)

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.com", "nope")
	if err == nil {
		t.Fatal("expected an error for empty result set")
	}
	if !IsKind(err, ErrAuth) {
		t.Fatalf("expected auth error, got %#v", err)
	}
	if err.Error() != "Invalid email or password" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestLoginReturnsFirstMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("email"); got != "ada@example.com" {
			t.Errorf("email not forwarded, got %q", got)
		}
		if got := r.URL.Query().Get("password"); got != "secret" {
			t.Errorf("password not forwarded, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"u1","name":"Ada","email":"ada@example.com"}]`))
	}))
	defer srv.Close()

	user, err := NewClient(srv.URL).Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login() failed: %v", err)
	}
	if user.ID != "u1" || user.Name != "Ada" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestLoginPrefersServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
		w.Write([]byte(`{"message":"database is down"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
	if err == nil || err.Error() != "database is down" {
		t.Fatalf("expected server message, got %v", err)
	}
	if !IsKind(err, ErrServer) {
		t.Fatalf("expected server error kind, got %#v", err)
	}
}

func TestLoginFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "a@b.com", "pw")
	if err == nil || err.Error() != msgLoginFailed {
		t.Fatalf("expected fallback message, got %v", err)
	}
}

func TestRegisterExistingEmailSkipsCreate(t *testing.T) {
	creates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			creates++
			w.WriteHeader(201)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"u1","email":"taken@example.com"}]`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Register(context.Background(), "Bob", "taken@example.com", "pw")
	if err == nil || err.Error() != "Email already exists" {
		t.Fatalf("expected uniqueness error, got %v", err)
	}
	if !IsKind(err, ErrAuth) {
		t.Fatalf("expected auth error kind, got %#v", err)
	}
	if creates != 0 {
		t.Fatalf("create call was issued %d times, want 0", creates)
	}
}

func TestRegisterCreatesUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodGet {
			w.Write([]byte("[]"))
			return
		}
		var input models.User
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("bad create body: %v", err)
		}
		if input.Name != "Bob" || input.Email != "bob@example.com" || input.Password != "pw" {
			t.Errorf("unexpected create payload: %+v", input)
		}
		input.ID = "u9"
		w.WriteHeader(201)
		json.NewEncoder(w).Encode(input)
	}))
	defer srv.Close()

	user, err := NewClient(srv.URL).Register(context.Background(), "Bob", "bob@example.com", "pw")
	if err != nil {
		t.Fatalf("Register() failed: %v", err)
	}
	if user.ID != "u9" {
		t.Fatalf("expected server-assigned id, got %+v", user)
	}
}

func TestListVehiclesDefaultsToAvailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("status"); got != "available" {
			t.Errorf("status filter = %q, want available", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"v1","type":"Corolla","pricePerHour":50,"status":"available"}]`))
	}))
	defer srv.Close()

	vehicles, err := NewClient(srv.URL).ListVehicles(context.Background(), "")
	if err != nil {
		t.Fatalf("ListVehicles() failed: %v", err)
	}
	if len(vehicles) != 1 || vehicles[0].ID != "v1" {
		t.Fatalf("unexpected vehicles: %+v", vehicles)
	}
}

func TestGetVehicleNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(404)
		w.Write([]byte(`{"error":"Vehicle not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetVehicle(context.Background(), "missing")
	if !IsKind(err, ErrNotFound) {
		t.Fatalf("expected not-found error, got %#v", err)
	}
	if err.Error() != "Vehicle not found" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestCreateBookingRequiresServerAssignedID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(201)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).CreateBooking(context.Background(), models.Booking{UserID: "u1", VehicleID: "v1"})
	if err == nil || err.Error() != "Booking ID not returned" {
		t.Fatalf("expected missing-id error, got %v", err)
	}
}

func TestListBookingsJoinsVehicles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/bookings":
			w.Write([]byte(`[{"id":"b1","userId":"u1","vehicleId":"v1","status":"pending","duration":2,"totalPrice":100},
				{"id":"b2","userId":"u1","vehicleId":"v2","status":"confirmed","duration":1,"totalPrice":35}]`))
		case strings.HasPrefix(r.URL.Path, "/vehicles/"):
			id := strings.TrimPrefix(r.URL.Path, "/vehicles/")
			json.NewEncoder(w).Encode(models.Vehicle{ID: id, Type: "Corolla", PricePerHour: 50})
		default:
			w.WriteHeader(404)
		}
	}))
	defer srv.Close()

	details, err := NewClient(srv.URL).ListBookings(context.Background(), "u1")
	if err != nil {
		t.Fatalf("ListBookings() failed: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 bookings, got %d", len(details))
	}
	if details[0].Vehicle.ID != "v1" || details[1].Vehicle.ID != "v2" {
		t.Fatalf("vehicles not joined: %+v", details)
	}
}

func TestListBookingsFailsWhenJoinFails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.URL.Path == "/bookings" {
			w.Write([]byte(`[{"id":"b1","userId":"u1","vehicleId":"v1","status":"pending"}]`))
			return
		}
		w.WriteHeader(404)
		w.Write([]byte(`{"error":"Vehicle not found"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).ListBookings(context.Background(), "u1")
	if err == nil || err.Error() != msgBookingsFailed {
		t.Fatalf("expected whole-batch failure, got %v", err)
	}
}

func TestTransportFailureIsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := NewClient(srv.URL).ListVehicles(context.Background(), "")
	if !IsKind(err, ErrNetwork) {
		t.Fatalf("expected network error, got %#v", err)
	}
	if err.Error() != msgVehiclesFailed {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestUpdateBookingStatusRejectsUnknownStatus(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).UpdateBookingStatus(context.Background(), "b1", "done")
	if !IsKind(err, ErrValidation) {
		t.Fatalf("expected validation error, got %#v", err)
	}
	if requests != 0 {
		t.Fatalf("request was issued despite invalid status")
	}
}

func TestUpdateBookingSendsOnlySetFields(t *testing.T) {
	var body map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad patch body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"b1","duration":5,"totalPrice":250}`))
	}))
	defer srv.Close()

	duration := 5
	total := 250.0
	updated, err := NewClient(srv.URL).UpdateBooking(context.Background(), "b1", BookingPatch{
		Duration:   &duration,
		TotalPrice: &total,
	})
	if err != nil {
		t.Fatalf("UpdateBooking() failed: %v", err)
	}
	if updated.Duration != 5 || updated.TotalPrice != 250 {
		t.Fatalf("unexpected booking: %+v", updated)
	}
	if _, ok := body["status"]; ok {
		t.Fatalf("nil status was serialized: %v", body)
	}
	if body["duration"] != float64(5) || body["totalPrice"] != float64(250) {
		t.Fatalf("unexpected patch payload: %v", body)
	}
}
