package service

import (
	"strings"
	"time"

	"github.com/Aryankr26/fleet-backend-1.0/internal/config"
	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// statusRule pairs a predicate with the status it yields. Rules are
// evaluated in order and the first match wins, so the chain below encodes
// the precedence: staleness > speed > ignition > default. A stale sample
// cannot be trusted to reflect present reality, which is why staleness
// outranks every other signal.
type statusRule struct {
	match  func(t *model.Telemetry, now time.Time) bool
	status model.VehicleStatus
	label  string
}

var statusRules = []statusRule{
	{
		match: func(t *model.Telemetry, now time.Time) bool {
			return t == nil || t.Timestamp.Before(now.Add(-config.OfflineAfter))
		},
		status: model.StatusOffline,
		label:  "Offline",
	},
	{
		match: func(t *model.Telemetry, _ time.Time) bool {
			return t.Speed > config.MovingSpeedThreshold
		},
		status: model.StatusMoving,
		label:  "Moving",
	},
	{
		match: func(t *model.Telemetry, _ time.Time) bool {
			return t.Ignition
		},
		status: model.StatusIdling,
		label:  "Idling",
	},
}

// ClassifyStatus maps a vehicle's latest telemetry sample (nil when the
// vehicle has never reported) and the current time to its operational
// status. It is the single source of truth for status: the fleet snapshot
// and the vehicle detail view both go through here so they can never
// disagree.
func ClassifyStatus(latest *model.Telemetry, now time.Time) (model.VehicleStatus, string) {
	for _, rule := range statusRules {
		if rule.match(latest, now) {
			return rule.status, rule.label
		}
	}
	return model.StatusStopped, "Stopped"
}

// Per-field fallback chains for the snapshot and detail views. Each one is
// a plain function so the substitution behavior can be tested on its own.

// displayNumber prefers the registration plate, falling back to the IMEI.
func displayNumber(v *model.Vehicle) string {
	if v.RegistrationNo != "" {
		return v.RegistrationNo
	}
	return v.IMEI
}

// manufacturer lower-cases the make, falling back to "unknown".
func manufacturer(v *model.Vehicle) string {
	if v.Make == "" {
		return "unknown"
	}
	return strings.ToLower(v.Make)
}

// modelName falls back to "Unknown" when the model is absent.
func modelName(v *model.Vehicle) string {
	if v.Model == "" {
		return "Unknown"
	}
	return v.Model
}

// currentPosition prefers the sample position, then the vehicle's cached
// last-known position, then the zero coordinate.
func currentPosition(t *model.Telemetry, v *model.Vehicle) model.LatLng {
	if t != nil {
		return model.LatLng{Lat: t.Latitude, Lng: t.Longitude}
	}
	if v.LastLat != nil && v.LastLng != nil {
		return model.LatLng{Lat: *v.LastLat, Lng: *v.LastLng}
	}
	return model.LatLng{}
}

// lastUpdated prefers the sample time, then the cached last-seen time,
// then the record update time.
func lastUpdated(t *model.Telemetry, v *model.Vehicle) time.Time {
	if t != nil {
		return t.Timestamp
	}
	if v.LastSeen != nil {
		return *v.LastSeen
	}
	return v.UpdatedAt
}

// startOfDay returns midnight of the day containing now, in now's
// location. Callers pass UTC timestamps, making the "today" boundary UTC
// midnight throughout the system.
func startOfDay(now time.Time) time.Time {
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
