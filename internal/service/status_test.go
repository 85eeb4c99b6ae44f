package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

func sampleAt(ts time.Time, speed float64, ignition bool) *model.Telemetry {
	return &model.Telemetry{Timestamp: ts, Speed: speed, Ignition: ignition}
}

func TestClassifyStatus(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		sample *model.Telemetry
		status model.VehicleStatus
		label  string
	}{
		{"no sample", nil, model.StatusOffline, "Offline"},
		{"stale 31m wins over speed and ignition", sampleAt(now.Add(-31*time.Minute), 80, true), model.StatusOffline, "Offline"},
		{"exactly 30m old is not offline", sampleAt(now.Add(-30*time.Minute), 0, false), model.StatusStopped, "Stopped"},
		{"speed above threshold", sampleAt(now.Add(-time.Minute), 10, false), model.StatusMoving, "Moving"},
		{"speed rule precedes ignition rule", sampleAt(now.Add(-time.Minute), 10, true), model.StatusMoving, "Moving"},
		{"speed exactly at threshold is not moving", sampleAt(now.Add(-time.Minute), 5, false), model.StatusStopped, "Stopped"},
		{"ignition on, not moving", sampleAt(now.Add(-time.Minute), 0, true), model.StatusIdling, "Idling"},
		{"ignition off, not moving", sampleAt(now.Add(-time.Minute), 0, false), model.StatusStopped, "Stopped"},
		{"future sample is not offline", sampleAt(now.Add(time.Minute), 10, false), model.StatusMoving, "Moving"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, label := ClassifyStatus(tt.sample, now)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestDisplayNumberFallback(t *testing.T) {
	assert.Equal(t, "HR55AN2175", displayNumber(&model.Vehicle{RegistrationNo: "HR55AN2175", IMEI: "864512345678901"}))
	assert.Equal(t, "864512345678901", displayNumber(&model.Vehicle{IMEI: "864512345678901"}))
}

func TestManufacturerFallback(t *testing.T) {
	assert.Equal(t, "tata", manufacturer(&model.Vehicle{Make: "Tata"}))
	assert.Equal(t, "unknown", manufacturer(&model.Vehicle{}))
}

func TestModelNameFallback(t *testing.T) {
	assert.Equal(t, "Prima", modelName(&model.Vehicle{Model: "Prima"}))
	assert.Equal(t, "Unknown", modelName(&model.Vehicle{}))
}

func TestCurrentPositionFallbackChain(t *testing.T) {
	lat, lng := 28.4595, 77.0266
	vehicle := &model.Vehicle{LastLat: &lat, LastLng: &lng}
	sample := &model.Telemetry{Latitude: 19.076, Longitude: 72.8777}

	assert.Equal(t, model.LatLng{Lat: 19.076, Lng: 72.8777}, currentPosition(sample, vehicle))
	assert.Equal(t, model.LatLng{Lat: lat, Lng: lng}, currentPosition(nil, vehicle))
	assert.Equal(t, model.LatLng{}, currentPosition(nil, &model.Vehicle{}))
}

func TestLastUpdatedFallbackChain(t *testing.T) {
	sampleTime := time.Date(2025, 6, 15, 11, 0, 0, 0, time.UTC)
	lastSeen := time.Date(2025, 6, 14, 8, 0, 0, 0, time.UTC)
	updatedAt := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	vehicle := &model.Vehicle{LastSeen: &lastSeen, UpdatedAt: updatedAt}
	sample := &model.Telemetry{Timestamp: sampleTime}

	assert.Equal(t, sampleTime, lastUpdated(sample, vehicle))
	assert.Equal(t, lastSeen, lastUpdated(nil, vehicle))
	assert.Equal(t, updatedAt, lastUpdated(nil, &model.Vehicle{UpdatedAt: updatedAt}))
}

func TestStartOfDay(t *testing.T) {
	now := time.Date(2025, 6, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), startOfDay(now))
}
