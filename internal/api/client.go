package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/sirupsen/logrus"
)

// Every request runs against a fixed deadline; a single failed attempt is
// reported to the caller with no retry.
const requestTimeout = 5 * time.Second

// Per-operation fallback messages, used when the server supplies none.
const (
	msgLoginFailed         = "Login failed. Please check your credentials or network."
	msgRegisterFailed      = "Registration failed"
	msgVehiclesFailed      = "Failed to fetch vehicles"
	msgVehicleFailed       = "Failed to fetch vehicle details"
	msgBookingsFailed      = "Failed to fetch bookings"
	msgCreateBookingFailed = "Failed to create booking"
	msgUpdateBookingFailed = "Failed to update booking"
	msgUpdateStatusFailed  = "Failed to update booking status"
	msgUserFailed          = "Failed to fetch user details"
	msgUpdateUserFailed    = "Failed to update user"
)

// Client maps each domain operation 1:1 onto a resource-server call.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Login looks up credentials via an equality-filter query. An empty result
// set means the credentials matched no record.
func (c *Client) Login(ctx context.Context, email, password string) (*models.User, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("password", password)

	var users []models.User
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &users, msgLoginFailed); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, newError(ErrAuth, "Invalid email or password")
	}
	return &users[0], nil
}

// Register creates a user after an optimistic uniqueness pre-check. The
// check and the create are two separate calls; the server's unique
// constraint remains the authority and its conflict message is surfaced
// as-is when the race loses.
func (c *Client) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	query := url.Values{}
	query.Set("email", email)

	var existing []models.User
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &existing, msgRegisterFailed); err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, newError(ErrAuth, "Email already exists")
	}

	input := models.User{Name: name, Email: email, Password: password}
	var user models.User
	if err := c.do(ctx, http.MethodPost, "/users", nil, input, &user, msgRegisterFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListVehicles fetches vehicles filtered by status, defaulting to available.
func (c *Client) ListVehicles(ctx context.Context, status models.VehicleStatus) ([]models.Vehicle, error) {
	if status == "" {
		status = models.VehicleStatusAvailable
	}
	query := url.Values{}
	query.Set("status", string(status))

	var vehicles []models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles", query, nil, &vehicles, msgVehiclesFailed); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *Client) GetVehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	if id == "" {
		return nil, newError(ErrValidation, "Vehicle id is required")
	}
	var vehicle models.Vehicle
	if err := c.do(ctx, http.MethodGet, "/vehicles/"+id, nil, nil, &vehicle, msgVehicleFailed); err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListBookings fetches a user's bookings and joins each with its vehicle
// record. The join is sequential and fail-fast: any nested fetch failure
// aborts the whole batch.
func (c *Client) ListBookings(ctx context.Context, userID string) ([]models.BookingDetail, error) {
	if userID == "" {
		return nil, newError(ErrValidation, "User id is required")
	}
	query := url.Values{}
	query.Set("userId", userID)

	var bookings []models.Booking
	if err := c.do(ctx, http.MethodGet, "/bookings", query, nil, &bookings, msgBookingsFailed); err != nil {
		return nil, err
	}

	details := make([]models.BookingDetail, 0, len(bookings))
	for _, booking := range bookings {
		vehicle, err := c.GetVehicle(ctx, booking.VehicleID)
		if err != nil {
			return nil, newError(kindOf(err), msgBookingsFailed)
		}
		details = append(details, models.BookingDetail{Booking: booking, Vehicle: *vehicle})
	}
	return details, nil
}

// CreateBooking posts a new booking. The server must assign and return an
// id; a response without one is an error even on a 2xx status.
func (c *Client) CreateBooking(ctx context.Context, booking models.Booking) (*models.Booking, error) {
	var created models.Booking
	if err := c.do(ctx, http.MethodPost, "/bookings", nil, booking, &created, msgCreateBookingFailed); err != nil {
		return nil, err
	}
	if created.ID == "" {
		return nil, newError(ErrServer, "Booking ID not returned")
	}
	return &created, nil
}

// BookingPatch carries the partial fields an update may change. Nil fields
// are omitted from the request body.
type BookingPatch struct {
	Status     *models.BookingStatus `json:"status,omitempty"`
	Duration   *int                  `json:"duration,omitempty"`
	TotalPrice *float64              `json:"totalPrice,omitempty"`
}

func (c *Client) UpdateBooking(ctx context.Context, id string, patch BookingPatch) (*models.Booking, error) {
	if id == "" {
		return nil, newError(ErrValidation, "Booking id is required")
	}
	var updated models.Booking
	if err := c.do(ctx, http.MethodPatch, "/bookings/"+id, nil, patch, &updated, msgUpdateBookingFailed); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) UpdateBookingStatus(ctx context.Context, id string, status models.BookingStatus) (*models.Booking, error) {
	if id == "" {
		return nil, newError(ErrValidation, "Booking id is required")
	}
	if !status.Valid() {
		return nil, newError(ErrValidation, "Invalid booking status")
	}
	patch := struct {
		Status models.BookingStatus `json:"status"`
	}{Status: status}

	var updated models.Booking
	if err := c.do(ctx, http.MethodPatch, "/bookings/"+id, nil, patch, &updated, msgUpdateStatusFailed); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *Client) GetUser(ctx context.Context, id string) (*models.User, error) {
	if id == "" {
		return nil, newError(ErrValidation, "User id is required")
	}
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/"+id, nil, nil, &user, msgUserFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// UserPatch carries the partial fields a profile update may change.
type UserPatch struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, patch UserPatch) (*models.User, error) {
	if id == "" {
		return nil, newError(ErrValidation, "User id is required")
	}
	var user models.User
	if err := c.do(ctx, http.MethodPatch, "/users/"+id, nil, patch, &user, msgUpdateUserFailed); err != nil {
		return nil, err
	}
	return &user, nil
}

// do issues a single request and normalizes every failure into an *Error
// carrying the server message when one exists, the fallback otherwise.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out interface{}, fallback string) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return newError(ErrValidation, fallback)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return newError(ErrNetwork, fallback)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	logrus.WithFields(logrus.Fields{"method": method, "url": endpoint}).Debug("api request")

	resp, err := c.http.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("url", endpoint).Debug("api transport failure")
		return newError(ErrNetwork, fallback)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newError(ErrNetwork, fallback)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		kind := ErrServer
		if resp.StatusCode == http.StatusNotFound {
			kind = ErrNotFound
		}
		logrus.WithFields(logrus.Fields{"url": endpoint, "status": resp.StatusCode}).Debug("api server failure")
		return newError(kind, serverMessage(data, fallback))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return newError(ErrServer, fallback)
		}
	}
	return nil
}

// serverMessage extracts a message from an error payload, accepting both
// the "message" and "error" field conventions.
func serverMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}

func kindOf(err error) ErrorKind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ErrServer
}
