package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
	"github.com/Aryankr26/fleet-backend-1.0/internal/service"
)

// stubStore serves canned data to the dashboard routes. Only the methods
// the exercised endpoints reach are populated; the rest return empty sets.
type stubStore struct {
	vehicles []model.Vehicle
	latest   map[int]model.Telemetry
	err      error
}

func (s *stubStore) ListVehicles(ctx context.Context) ([]model.Vehicle, error) {
	return s.vehicles, s.err
}

func (s *stubStore) GetVehicle(ctx context.Context, id int) (*model.Vehicle, error) {
	if s.err != nil {
		return nil, s.err
	}
	for i := range s.vehicles {
		if s.vehicles[i].ID == id {
			return &s.vehicles[i], nil
		}
	}
	return nil, nil
}

func (s *stubStore) LatestTelemetry(ctx context.Context) (map[int]model.Telemetry, error) {
	return s.latest, s.err
}

func (s *stubStore) RecentTelemetry(ctx context.Context, vehicleID, limit int) ([]model.Telemetry, error) {
	return nil, s.err
}

func (s *stubStore) DistanceSamplesSince(ctx context.Context, since time.Time) ([]model.DistancePoint, error) {
	return nil, s.err
}

func (s *stubStore) RecentFuelLogs(ctx context.Context, vehicleID, limit int) ([]model.FuelLog, error) {
	return nil, s.err
}

func (s *stubStore) FuelLogsSince(ctx context.Context, since time.Time) ([]model.FuelLog, error) {
	return nil, s.err
}

func (s *stubStore) UnresolvedAlerts(ctx context.Context, limit int) ([]model.GeofenceAlert, error) {
	return nil, s.err
}

func (s *stubStore) RecentTrips(ctx context.Context, vehicleID, limit int) ([]model.Trip, error) {
	return nil, s.err
}

func (s *stubStore) RecentStops(ctx context.Context, vehicleID, limit int) ([]model.Stop, error) {
	return nil, s.err
}

func (s *stubStore) DocumentsForVehicle(ctx context.Context, vehicleID int) ([]model.Document, error) {
	return nil, s.err
}

func (s *stubStore) DriverScoresSince(ctx context.Context, since time.Time) ([]model.DriverScore, error) {
	return nil, s.err
}

func (s *stubStore) ComplaintCountsByType(ctx context.Context, since time.Time) ([]model.ComplaintTypeCount, error) {
	return nil, s.err
}

func (s *stubStore) CountComplaintsByStatus(ctx context.Context, statuses ...string) (int64, error) {
	return 0, s.err
}

func newDashboardRouter(st service.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDashboardHandler(service.NewDashboardService(st), service.NewInsightsService(st))
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func TestGetStats(t *testing.T) {
	now := time.Now().UTC()
	st := &stubStore{
		vehicles: []model.Vehicle{
			{ID: 1, RegistrationNo: "KA01AB1234"},
			{ID: 2, RegistrationNo: "KA02CD5678"},
		},
		latest: map[int]model.Telemetry{
			1: {VehicleID: 1, Timestamp: now.Add(-time.Minute), Speed: 42},
		},
	}
	r := newDashboardRouter(st)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.FleetSnapshot `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	assert.Equal(t, 2, body.Data.VehicleCounts.Total)
	assert.Equal(t, 1, body.Data.VehicleCounts.Moving)
	assert.Equal(t, 1, body.Data.VehicleCounts.Offline)
	assert.Len(t, body.Data.Vehicles, 2)
}

func TestGetStatsStoreDown(t *testing.T) {
	r := newDashboardRouter(&stubStore{err: errors.New("connection refused")})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/stats", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestGetVehicleDetailNotFound(t *testing.T) {
	r := newDashboardRouter(&stubStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/vehicle/99", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVehicleDetailBadID(t *testing.T) {
	r := newDashboardRouter(&stubStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/vehicle/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetInsightsDefaultsToWeek(t *testing.T) {
	r := newDashboardRouter(&stubStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/insights?period=quarter", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data model.Insights `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "week", body.Data.Period)
}

func TestExportInsights(t *testing.T) {
	r := newDashboardRouter(&stubStore{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/dashboard/insights/export", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".xlsx")
	assert.NotZero(t, w.Body.Len())
}
