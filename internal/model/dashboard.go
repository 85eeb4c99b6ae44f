package model

import (
	"time"
)

// VehicleStatus is the live operational status derived from the most
// recent telemetry sample.
type VehicleStatus string

const (
	StatusMoving  VehicleStatus = "moving"
	StatusStopped VehicleStatus = "stopped"
	StatusIdling  VehicleStatus = "idling"
	StatusOffline VehicleStatus = "offline"
)

// LatLng is a geographic coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehicleCounts holds the fleet-wide status breakdown. The four buckets
// always sum to Total.
type VehicleCounts struct {
	Total   int `json:"total"`
	Moving  int `json:"moving"`
	Stopped int `json:"stopped"`
	Idling  int `json:"idling"`
	Offline int `json:"offline"`
}

// VehicleSummary is the per-vehicle row of the fleet snapshot
type VehicleSummary struct {
	ID           int           `json:"id"`
	Number       string        `json:"number"`
	Manufacturer string        `json:"manufacturer"`
	Status       VehicleStatus `json:"status"`
	StatusText   string        `json:"statusText"`
	Speed        float64       `json:"speed"`
	Position     LatLng        `json:"position"`
	LastUpdated  time.Time     `json:"lastUpdated"`
	Odometer     float64       `json:"odometer"`
	Model        string        `json:"model"`
}

// FuelSummary counts today's fuel logs and those flagged red
type FuelSummary struct {
	TodayLogs        int `json:"todayLogs"`
	SuspiciousEvents int `json:"suspiciousEvents"`
}

// FleetSnapshot is the full dashboard stats view
type FleetSnapshot struct {
	VehicleCounts  VehicleCounts    `json:"vehicleCounts"`
	Vehicles       []VehicleSummary `json:"vehicles"`
	Alerts         []GeofenceAlert  `json:"alerts"`
	FuelSummary    FuelSummary      `json:"fuelSummary"`
	ComplaintsOpen int64            `json:"complaintsOpen"`
}

// VehicleDetail is the single-vehicle view: raw recent history passed
// through unchanged plus fields derived from it.
type VehicleDetail struct {
	Vehicle
	Telemetries []Telemetry `json:"telemetries"`
	FuelLogs    []FuelLog   `json:"fuel_logs"`
	Documents   []Document  `json:"documents"`
	Trips       []Trip      `json:"trips"`
	Stops       []Stop      `json:"stops"`

	Status          VehicleStatus `json:"status"`
	StatusText      string        `json:"statusText"`
	CurrentSpeed    float64       `json:"currentSpeed"`
	CurrentLocation LatLng        `json:"currentLocation"`
	TodayDistance   float64       `json:"todayDistance"`
	TodayTrips      int           `json:"todayTrips"`
	LastUpdated     time.Time     `json:"lastUpdated"`
}

// Insights holds the time-windowed trend aggregations
type Insights struct {
	Period           string               `json:"period"`
	StartDate        time.Time            `json:"startDate"`
	FuelTrends       []FuelLog            `json:"fuelTrends"`
	DistanceTrends   []DistancePoint      `json:"distanceTrends"`
	DriverScores     []DriverScore        `json:"driverScores"`
	ComplaintsByType []ComplaintTypeCount `json:"complaintsByType"`
}
