package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// Engine errors. Everything else (missing telemetry, missing cached
// position, missing make/model) degrades to documented defaults instead of
// failing, so a partially onboarded fleet still renders.
var (
	// ErrVehicleNotFound is returned when a vehicle id does not resolve.
	ErrVehicleNotFound = errors.New("vehicle not found")

	// ErrStoreUnavailable wraps upstream store failures. The engine never
	// retries; callers own retry and staleness policy.
	ErrStoreUnavailable = errors.New("store unavailable")
)

func storeErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

// Store is the read-only data source the aggregation engine derives its
// views from. Implementations must return records in the documented order;
// the engine re-sorts where an invariant depends on it. A missing vehicle
// is reported as (nil, nil) from GetVehicle, not as an error.
type Store interface {
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)
	GetVehicle(ctx context.Context, id int) (*model.Vehicle, error)

	// LatestTelemetry returns each vehicle's most recent sample, keyed by
	// vehicle id. Vehicles with no samples are absent from the map.
	LatestTelemetry(ctx context.Context) (map[int]model.Telemetry, error)
	// RecentTelemetry returns up to limit samples, newest first.
	RecentTelemetry(ctx context.Context, vehicleID, limit int) ([]model.Telemetry, error)
	DistanceSamplesSince(ctx context.Context, since time.Time) ([]model.DistancePoint, error)

	// RecentFuelLogs returns up to limit logs, newest first.
	RecentFuelLogs(ctx context.Context, vehicleID, limit int) ([]model.FuelLog, error)
	// FuelLogsSince returns logs with timestamp >= since, with vehicle
	// attached.
	FuelLogsSince(ctx context.Context, since time.Time) ([]model.FuelLog, error)

	// UnresolvedAlerts returns up to limit unresolved geofence alerts,
	// newest first, with vehicle and geofence attached.
	UnresolvedAlerts(ctx context.Context, limit int) ([]model.GeofenceAlert, error)

	RecentTrips(ctx context.Context, vehicleID, limit int) ([]model.Trip, error)
	RecentStops(ctx context.Context, vehicleID, limit int) ([]model.Stop, error)
	DocumentsForVehicle(ctx context.Context, vehicleID int) ([]model.Document, error)

	// DriverScoresSince returns scores whose period start >= since, with
	// user and vehicle attached.
	DriverScoresSince(ctx context.Context, since time.Time) ([]model.DriverScore, error)

	ComplaintCountsByType(ctx context.Context, since time.Time) ([]model.ComplaintTypeCount, error)
	CountComplaintsByStatus(ctx context.Context, statuses ...string) (int64, error)
}
