package service

import (
	"context"
	"time"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

const (
	recentAlertLimit     = 10
	detailTelemetryLimit = 100
	detailFuelLogLimit   = 50
	detailTripLimit      = 20
	detailStopLimit      = 20
)

// DashboardService derives the fleet snapshot and the per-vehicle detail
// view from the store. It performs no writes and holds no state of its
// own, so calls may run concurrently. The current time is always an
// explicit parameter; identical inputs produce identical outputs.
type DashboardService struct {
	store Store
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store Store) *DashboardService {
	return &DashboardService{store: store}
}

// GetFleetSnapshot builds the fleet-wide dashboard view: status counts,
// per-vehicle summaries, recent unresolved alerts, today's fuel summary
// and the open complaint count.
func (s *DashboardService) GetFleetSnapshot(ctx context.Context, now time.Time) (*model.FleetSnapshot, error) {
	vehicles, err := s.store.ListVehicles(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	latest, err := s.store.LatestTelemetry(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	snapshot := &model.FleetSnapshot{
		Vehicles: make([]model.VehicleSummary, 0, len(vehicles)),
	}
	snapshot.VehicleCounts.Total = len(vehicles)

	for i := range vehicles {
		v := &vehicles[i]

		var sample *model.Telemetry
		if t, ok := latest[v.ID]; ok {
			sample = &t
		}

		status, label := ClassifyStatus(sample, now)
		switch status {
		case model.StatusMoving:
			snapshot.VehicleCounts.Moving++
		case model.StatusStopped:
			snapshot.VehicleCounts.Stopped++
		case model.StatusIdling:
			snapshot.VehicleCounts.Idling++
		case model.StatusOffline:
			snapshot.VehicleCounts.Offline++
		}

		var speed float64
		if sample != nil {
			speed = sample.Speed
		}

		snapshot.Vehicles = append(snapshot.Vehicles, model.VehicleSummary{
			ID:           v.ID,
			Number:       displayNumber(v),
			Manufacturer: manufacturer(v),
			Status:       status,
			StatusText:   label,
			Speed:        speed,
			Position:     currentPosition(sample, v),
			LastUpdated:  lastUpdated(sample, v),
			Odometer:     v.Odometer,
			Model:        modelName(v),
		})
	}

	alerts, err := s.store.UnresolvedAlerts(ctx, recentAlertLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	snapshot.Alerts = alerts

	fuelLogs, err := s.store.FuelLogsSince(ctx, startOfDay(now))
	if err != nil {
		return nil, storeErr(err)
	}
	snapshot.FuelSummary.TodayLogs = len(fuelLogs)
	for _, l := range fuelLogs {
		if l.Suspicion == model.SuspicionRed {
			snapshot.FuelSummary.SuspiciousEvents++
		}
	}

	open, err := s.store.CountComplaintsByStatus(ctx, model.ComplaintOpen, model.ComplaintInProgress)
	if err != nil {
		return nil, storeErr(err)
	}
	snapshot.ComplaintsOpen = open

	return snapshot, nil
}

// GetVehicleDetail builds the detail view for one vehicle: its recent
// history passed through unchanged, plus status and the same-day rollups.
// Returns ErrVehicleNotFound when the id does not resolve.
func (s *DashboardService) GetVehicleDetail(ctx context.Context, vehicleID int, now time.Time) (*model.VehicleDetail, error) {
	vehicle, err := s.store.GetVehicle(ctx, vehicleID)
	if err != nil {
		return nil, storeErr(err)
	}
	if vehicle == nil {
		return nil, ErrVehicleNotFound
	}

	telemetries, err := s.store.RecentTelemetry(ctx, vehicleID, detailTelemetryLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	fuelLogs, err := s.store.RecentFuelLogs(ctx, vehicleID, detailFuelLogLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	documents, err := s.store.DocumentsForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, storeErr(err)
	}
	trips, err := s.store.RecentTrips(ctx, vehicleID, detailTripLimit)
	if err != nil {
		return nil, storeErr(err)
	}
	stops, err := s.store.RecentStops(ctx, vehicleID, detailStopLimit)
	if err != nil {
		return nil, storeErr(err)
	}

	var latest *model.Telemetry
	if len(telemetries) > 0 {
		latest = &telemetries[0]
	}
	status, label := ClassifyStatus(latest, now)

	var speed float64
	if latest != nil {
		speed = latest.Speed
	}

	// Recomputed on every call. The boundary must track now, or a vehicle
	// would keep yesterday's rollups past midnight.
	todayStart := startOfDay(now)

	var todayDistance float64
	for _, t := range telemetries {
		if !t.Timestamp.Before(todayStart) && t.TodayDistance > todayDistance {
			todayDistance = t.TodayDistance
		}
	}

	var todayTrips int
	for _, trip := range trips {
		if !trip.StartTime.Before(todayStart) {
			todayTrips++
		}
	}

	return &model.VehicleDetail{
		Vehicle:         *vehicle,
		Telemetries:     telemetries,
		FuelLogs:        fuelLogs,
		Documents:       documents,
		Trips:           trips,
		Stops:           stops,
		Status:          status,
		StatusText:      label,
		CurrentSpeed:    speed,
		CurrentLocation: currentPosition(latest, vehicle),
		TodayDistance:   todayDistance,
		TodayTrips:      todayTrips,
		LastUpdated:     lastUpdated(latest, vehicle),
	}, nil
}
