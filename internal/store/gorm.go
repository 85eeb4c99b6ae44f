package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// GormStore serves the aggregation engine's read queries from Postgres.
// It satisfies service.Store.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new gorm-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ListVehicles returns all vehicles
func (s *GormStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	var vehicles []model.Vehicle
	err := s.db.WithContext(ctx).Order("id").Find(&vehicles).Error
	return vehicles, err
}

// GetVehicle returns a vehicle with its owner, or (nil, nil) when the id
// does not resolve.
func (s *GormStore) GetVehicle(ctx context.Context, id int) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := s.db.WithContext(ctx).Preload("Owner").First(&vehicle, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// LatestTelemetry returns each vehicle's most recent sample keyed by
// vehicle id.
func (s *GormStore) LatestTelemetry(ctx context.Context) (map[int]model.Telemetry, error) {
	var samples []model.Telemetry
	err := s.db.WithContext(ctx).
		Raw(`SELECT DISTINCT ON (vehicle_id) * FROM telemetries ORDER BY vehicle_id, timestamp DESC`).
		Scan(&samples).Error
	if err != nil {
		return nil, err
	}

	latest := make(map[int]model.Telemetry, len(samples))
	for _, sample := range samples {
		latest[sample.VehicleID] = sample
	}
	return latest, nil
}

// RecentTelemetry returns up to limit samples for a vehicle, newest first
func (s *GormStore) RecentTelemetry(ctx context.Context, vehicleID, limit int) ([]model.Telemetry, error) {
	var samples []model.Telemetry
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&samples).Error
	return samples, err
}

// DistanceSamplesSince returns cumulative distance readings since a time,
// across all vehicles
func (s *GormStore) DistanceSamplesSince(ctx context.Context, since time.Time) ([]model.DistancePoint, error) {
	var points []model.DistancePoint
	err := s.db.WithContext(ctx).
		Model(&model.Telemetry{}).
		Select("vehicle_id, total_distance, timestamp").
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Scan(&points).Error
	return points, err
}

// RecentFuelLogs returns up to limit fuel logs for a vehicle, newest first
func (s *GormStore) RecentFuelLogs(ctx context.Context, vehicleID, limit int) ([]model.FuelLog, error) {
	var logs []model.FuelLog
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// FuelLogsSince returns fuel logs since a time with their vehicle attached
func (s *GormStore) FuelLogsSince(ctx context.Context, since time.Time) ([]model.FuelLog, error) {
	var logs []model.FuelLog
	err := s.db.WithContext(ctx).
		Preload("Vehicle").
		Where("timestamp >= ?", since).
		Order("timestamp ASC").
		Find(&logs).Error
	return logs, err
}

// UnresolvedAlerts returns up to limit unresolved geofence alerts, newest
// first, with vehicle and geofence attached
func (s *GormStore) UnresolvedAlerts(ctx context.Context, limit int) ([]model.GeofenceAlert, error) {
	var alerts []model.GeofenceAlert
	err := s.db.WithContext(ctx).
		Preload("Vehicle").
		Preload("Geofence").
		Where("resolved = ?", false).
		Order("created_at DESC").
		Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// RecentTrips returns up to limit trips for a vehicle, newest first
func (s *GormStore) RecentTrips(ctx context.Context, vehicleID, limit int) ([]model.Trip, error) {
	var trips []model.Trip
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_time DESC").
		Limit(limit).
		Find(&trips).Error
	return trips, err
}

// RecentStops returns up to limit stops for a vehicle, newest first
func (s *GormStore) RecentStops(ctx context.Context, vehicleID, limit int) ([]model.Stop, error) {
	var stops []model.Stop
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Order("start_time DESC").
		Limit(limit).
		Find(&stops).Error
	return stops, err
}

// DocumentsForVehicle returns all documents for a vehicle
func (s *GormStore) DocumentsForVehicle(ctx context.Context, vehicleID int) ([]model.Document, error) {
	var documents []model.Document
	err := s.db.WithContext(ctx).
		Where("vehicle_id = ?", vehicleID).
		Find(&documents).Error
	return documents, err
}

// DriverScoresSince returns scores whose period starts since a time, with
// user and vehicle attached
func (s *GormStore) DriverScoresSince(ctx context.Context, since time.Time) ([]model.DriverScore, error) {
	var scores []model.DriverScore
	err := s.db.WithContext(ctx).
		Preload("User").
		Preload("Vehicle").
		Where("period_start >= ?", since).
		Order("score DESC").
		Find(&scores).Error
	return scores, err
}

// ComplaintCountsByType returns complaint counts grouped by type since a
// time
func (s *GormStore) ComplaintCountsByType(ctx context.Context, since time.Time) ([]model.ComplaintTypeCount, error) {
	var counts []model.ComplaintTypeCount
	err := s.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Select("type, COUNT(*) as count").
		Where("created_at >= ?", since).
		Group("type").
		Scan(&counts).Error
	return counts, err
}

// CountComplaintsByStatus counts complaints in any of the given statuses
func (s *GormStore) CountComplaintsByStatus(ctx context.Context, statuses ...string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Complaint{}).
		Where("status IN ?", statuses).
		Count(&count).Error
	return count, err
}
