package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func snapshotFixture() *fakeStore {
	lat, lng := 28.4595, 77.0266
	lastSeen := testNow.Add(-2 * time.Hour)
	return &fakeStore{
		vehicles: []model.Vehicle{
			{ID: 1, IMEI: "864512345678901", RegistrationNo: "HR55AN2175", Make: "Tata", Model: "Prima", Odometer: 42000},
			{ID: 2, IMEI: "864512345678902", RegistrationNo: "HR47E2573", Make: "Ashok Leyland", Model: "Captain"},
			{ID: 3, IMEI: "864512345678903"}, // never reported, no registration, no make
			{ID: 4, IMEI: "864512345678904", RegistrationNo: "MP04CE7712", LastLat: &lat, LastLng: &lng, LastSeen: &lastSeen},
		},
		latest: map[int]model.Telemetry{
			1: {VehicleID: 1, Timestamp: testNow.Add(-time.Minute), Speed: 42, Ignition: true, Latitude: 19.07, Longitude: 72.87},
			2: {VehicleID: 2, Timestamp: testNow.Add(-2 * time.Minute), Speed: 0, Ignition: true},
			4: {VehicleID: 4, Timestamp: testNow.Add(-45 * time.Minute), Speed: 60, Ignition: true},
		},
		fuelSince: []model.FuelLog{
			{ID: 1, Suspicion: model.SuspicionNone},
			{ID: 2, Suspicion: model.SuspicionRed},
			{ID: 3, Suspicion: model.SuspicionYellow},
		},
		alerts:         []model.GeofenceAlert{{ID: 9, VehicleID: 1, GeofenceID: 2}},
		openComplaints: 7,
	}
}

func TestGetFleetSnapshotCounts(t *testing.T) {
	store := snapshotFixture()
	svc := NewDashboardService(store)

	snap, err := svc.GetFleetSnapshot(context.Background(), testNow)
	require.NoError(t, err)

	counts := snap.VehicleCounts
	assert.Equal(t, 4, counts.Total)
	assert.Equal(t, 1, counts.Moving)
	assert.Equal(t, 1, counts.Idling)
	assert.Equal(t, 0, counts.Stopped)
	// vehicle 3 has no samples, vehicle 4 reported 45 minutes ago
	assert.Equal(t, 2, counts.Offline)
	assert.Equal(t, counts.Total, counts.Moving+counts.Stopped+counts.Idling+counts.Offline)
}

func TestGetFleetSnapshotSummaries(t *testing.T) {
	store := snapshotFixture()
	svc := NewDashboardService(store)

	snap, err := svc.GetFleetSnapshot(context.Background(), testNow)
	require.NoError(t, err)
	require.Len(t, snap.Vehicles, 4)

	moving := snap.Vehicles[0]
	assert.Equal(t, "HR55AN2175", moving.Number)
	assert.Equal(t, "tata", moving.Manufacturer)
	assert.Equal(t, model.StatusMoving, moving.Status)
	assert.Equal(t, "Moving", moving.StatusText)
	assert.Equal(t, 42.0, moving.Speed)
	assert.Equal(t, model.LatLng{Lat: 19.07, Lng: 72.87}, moving.Position)
	assert.Equal(t, 42000.0, moving.Odometer)
	assert.Equal(t, "Prima", moving.Model)

	// Bare vehicle degrades to defaults rather than failing.
	bare := snap.Vehicles[2]
	assert.Equal(t, "864512345678903", bare.Number)
	assert.Equal(t, "unknown", bare.Manufacturer)
	assert.Equal(t, "Unknown", bare.Model)
	assert.Equal(t, model.StatusOffline, bare.Status)
	assert.Equal(t, 0.0, bare.Speed)
	assert.Equal(t, model.LatLng{}, bare.Position)
	assert.Equal(t, 0.0, bare.Odometer)

	// Stale vehicle is offline but still carries its last sample's speed
	// and falls back through the position chain.
	stale := snap.Vehicles[3]
	assert.Equal(t, model.StatusOffline, stale.Status)
	assert.Equal(t, 60.0, stale.Speed)
}

func TestGetFleetSnapshotRollups(t *testing.T) {
	store := snapshotFixture()
	svc := NewDashboardService(store)

	snap, err := svc.GetFleetSnapshot(context.Background(), testNow)
	require.NoError(t, err)

	assert.Equal(t, 3, snap.FuelSummary.TodayLogs)
	assert.Equal(t, 1, snap.FuelSummary.SuspiciousEvents)
	assert.Equal(t, int64(7), snap.ComplaintsOpen)
	assert.Len(t, snap.Alerts, 1)

	assert.Equal(t, 10, store.alertLimitArg)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), store.fuelSinceArg)
	assert.Equal(t, []string{model.ComplaintOpen, model.ComplaintInProgress}, store.statusesArg)
}

func TestGetFleetSnapshotIdempotent(t *testing.T) {
	store := snapshotFixture()
	svc := NewDashboardService(store)

	first, err := svc.GetFleetSnapshot(context.Background(), testNow)
	require.NoError(t, err)
	second, err := svc.GetFleetSnapshot(context.Background(), testNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestGetFleetSnapshotStoreFailure(t *testing.T) {
	store := snapshotFixture()
	store.err = errors.New("connection refused")
	svc := NewDashboardService(store)

	_, err := svc.GetFleetSnapshot(context.Background(), testNow)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetVehicleDetailNotFound(t *testing.T) {
	svc := NewDashboardService(&fakeStore{})
	_, err := svc.GetVehicleDetail(context.Background(), 99, testNow)
	assert.ErrorIs(t, err, ErrVehicleNotFound)
}

func TestGetVehicleDetailTodayRollups(t *testing.T) {
	yesterday := testNow.Add(-20 * time.Hour) // 16:00 the previous day
	store := &fakeStore{
		vehicles: []model.Vehicle{{ID: 1, IMEI: "864512345678901", RegistrationNo: "HR55AN2175"}},
		recentTelemetry: []model.Telemetry{
			{VehicleID: 1, Timestamp: testNow.Add(-time.Minute), Speed: 12, Latitude: 28.6, Longitude: 77.2, TodayDistance: 80},
			{VehicleID: 1, Timestamp: testNow.Add(-time.Hour), TodayDistance: 120},
			{VehicleID: 1, Timestamp: yesterday, TodayDistance: 300}, // previous day, ignored
		},
		trips: []model.Trip{
			{VehicleID: 1, StartTime: testNow.Add(-30 * time.Minute)},
			{VehicleID: 1, StartTime: testNow.Add(-3 * time.Hour)},
			{VehicleID: 1, StartTime: yesterday},
		},
	}
	svc := NewDashboardService(store)

	detail, err := svc.GetVehicleDetail(context.Background(), 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, model.StatusMoving, detail.Status)
	assert.Equal(t, 12.0, detail.CurrentSpeed)
	assert.Equal(t, model.LatLng{Lat: 28.6, Lng: 77.2}, detail.CurrentLocation)
	// max of the same-day counters, not the raw latest value
	assert.Equal(t, 120.0, detail.TodayDistance)
	assert.Equal(t, 2, detail.TodayTrips)
	assert.Equal(t, testNow.Add(-time.Minute), detail.LastUpdated)
	assert.Equal(t, 100, store.telemetryLimitArg)
	assert.Len(t, detail.Telemetries, 3)
}

func TestGetVehicleDetailNoSamplesToday(t *testing.T) {
	store := &fakeStore{
		vehicles: []model.Vehicle{{ID: 1, IMEI: "864512345678901"}},
	}
	svc := NewDashboardService(store)

	detail, err := svc.GetVehicleDetail(context.Background(), 1, testNow)
	require.NoError(t, err)

	assert.Equal(t, model.StatusOffline, detail.Status)
	assert.Equal(t, 0.0, detail.TodayDistance)
	assert.Equal(t, 0, detail.TodayTrips)
	assert.Equal(t, 0.0, detail.CurrentSpeed)
}
