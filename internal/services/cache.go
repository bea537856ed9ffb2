package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/NE-Resources-2025/VRS/internal/models"
	"github.com/redis/go-redis/v9"
)

// Listing responses are cached briefly; vehicle writes invalidate the keys.
const listingTTL = 5 * time.Minute

// ListingCache keeps vehicle listings in Redis so repeated browse/refresh
// calls do not hit the database.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(redisURL string) (*ListingCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	// Test the connection
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &ListingCache{client: client}, nil
}

// GetVehicles returns the cached listing for a status filter, or nil on a
// miss.
func (c *ListingCache) GetVehicles(ctx context.Context, status string) ([]models.Vehicle, error) {
	data, err := c.client.Get(ctx, vehiclesKey(status)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var vehicles []models.Vehicle
	if err := json.Unmarshal([]byte(data), &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (c *ListingCache) SetVehicles(ctx context.Context, status string, vehicles []models.Vehicle) error {
	data, err := json.Marshal(vehicles)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, vehiclesKey(status), data, listingTTL).Err()
}

// InvalidateVehicles drops every cached listing after a vehicle write.
func (c *ListingCache) InvalidateVehicles(ctx context.Context) error {
	keys := []string{
		vehiclesKey(""),
		vehiclesKey(string(models.VehicleStatusAvailable)),
		vehiclesKey(string(models.VehicleStatusUnavailable)),
	}
	return c.client.Del(ctx, keys...).Err()
}

func vehiclesKey(status string) string {
	if status == "" {
		status = "all"
	}
	return fmt.Sprintf("vehicles:%s", status)
}
