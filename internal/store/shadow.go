package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// shadowTTL keeps stale state out of the live view. A vehicle without a
// report inside the TTL simply has no shadow and falls back to the
// database path.
const shadowTTL = 30 * time.Minute

// ShadowCache holds the live state of each vehicle in Redis so the
// websocket layer and live endpoints do not hit Postgres per request.
type ShadowCache struct {
	client *redis.Client
}

// NewShadowCache creates a new shadow cache
func NewShadowCache(client *redis.Client) *ShadowCache {
	return &ShadowCache{client: client}
}

func shadowKey(vehicleID int) string {
	return fmt.Sprintf("fleet:shadow:%d", vehicleID)
}

// Update refreshes a vehicle's shadow from a telemetry sample
func (c *ShadowCache) Update(ctx context.Context, t *model.Telemetry) error {
	shadow := model.VehicleShadow{
		VehicleID: t.VehicleID,
		Lat:       t.Latitude,
		Lng:       t.Longitude,
		Speed:     t.Speed,
		Ignition:  t.Ignition,
		Timestamp: t.Timestamp.Unix(),
	}

	data, err := json.Marshal(shadow)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, shadowKey(t.VehicleID), data, shadowTTL).Err()
}

// Get returns a vehicle's shadow, or (nil, nil) when none exists
func (c *ShadowCache) Get(ctx context.Context, vehicleID int) (*model.VehicleShadow, error) {
	data, err := c.client.Get(ctx, shadowKey(vehicleID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var shadow model.VehicleShadow
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil, err
	}
	return &shadow, nil
}
