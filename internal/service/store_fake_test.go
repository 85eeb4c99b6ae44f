package service

import (
	"context"
	"time"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// fakeStore is an in-memory Store for engine tests. When err is set every
// method fails with it.
type fakeStore struct {
	vehicles        []model.Vehicle
	latest          map[int]model.Telemetry
	recentTelemetry []model.Telemetry
	recentFuel      []model.FuelLog
	fuelSince       []model.FuelLog
	alerts          []model.GeofenceAlert
	trips           []model.Trip
	stops           []model.Stop
	documents       []model.Document
	scores          []model.DriverScore
	complaintCounts []model.ComplaintTypeCount
	openComplaints  int64
	distances       []model.DistancePoint

	// captured arguments
	fuelSinceArg       time.Time
	distancesSinceArg  time.Time
	scoresSinceArg     time.Time
	complaintsSinceArg time.Time
	statusesArg        []string
	alertLimitArg      int
	telemetryLimitArg  int

	err error
}

func (f *fakeStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return f.vehicles, f.err
}

func (f *fakeStore) GetVehicle(ctx context.Context, id int) (*model.Vehicle, error) {
	if f.err != nil {
		return nil, f.err
	}
	for i := range f.vehicles {
		if f.vehicles[i].ID == id {
			return &f.vehicles[i], nil
		}
	}
	return nil, nil
}

func (f *fakeStore) LatestTelemetry(ctx context.Context) (map[int]model.Telemetry, error) {
	return f.latest, f.err
}

func (f *fakeStore) RecentTelemetry(ctx context.Context, vehicleID, limit int) ([]model.Telemetry, error) {
	f.telemetryLimitArg = limit
	return f.recentTelemetry, f.err
}

func (f *fakeStore) DistanceSamplesSince(ctx context.Context, since time.Time) ([]model.DistancePoint, error) {
	f.distancesSinceArg = since
	return f.distances, f.err
}

func (f *fakeStore) RecentFuelLogs(ctx context.Context, vehicleID, limit int) ([]model.FuelLog, error) {
	return f.recentFuel, f.err
}

func (f *fakeStore) FuelLogsSince(ctx context.Context, since time.Time) ([]model.FuelLog, error) {
	f.fuelSinceArg = since
	return f.fuelSince, f.err
}

func (f *fakeStore) UnresolvedAlerts(ctx context.Context, limit int) ([]model.GeofenceAlert, error) {
	f.alertLimitArg = limit
	return f.alerts, f.err
}

func (f *fakeStore) RecentTrips(ctx context.Context, vehicleID, limit int) ([]model.Trip, error) {
	return f.trips, f.err
}

func (f *fakeStore) RecentStops(ctx context.Context, vehicleID, limit int) ([]model.Stop, error) {
	return f.stops, f.err
}

func (f *fakeStore) DocumentsForVehicle(ctx context.Context, vehicleID int) ([]model.Document, error) {
	return f.documents, f.err
}

func (f *fakeStore) DriverScoresSince(ctx context.Context, since time.Time) ([]model.DriverScore, error) {
	f.scoresSinceArg = since
	return f.scores, f.err
}

func (f *fakeStore) ComplaintCountsByType(ctx context.Context, since time.Time) ([]model.ComplaintTypeCount, error) {
	f.complaintsSinceArg = since
	return f.complaintCounts, f.err
}

func (f *fakeStore) CountComplaintsByStatus(ctx context.Context, statuses ...string) (int64, error) {
	f.statusesArg = statuses
	return f.openComplaints, f.err
}
