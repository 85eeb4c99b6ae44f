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

func TestNormalizePeriod(t *testing.T) {
	assert.Equal(t, PeriodDay, NormalizePeriod("day"))
	assert.Equal(t, PeriodWeek, NormalizePeriod("week"))
	assert.Equal(t, PeriodMonth, NormalizePeriod("month"))
	// unknown values degrade to week instead of failing
	assert.Equal(t, PeriodWeek, NormalizePeriod(""))
	assert.Equal(t, PeriodWeek, NormalizePeriod("year"))
	assert.Equal(t, PeriodWeek, NormalizePeriod("Week"))
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2025, 3, 31, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 30, 10, 0, 0, 0, time.UTC), PeriodDay.Start(now))
	assert.Equal(t, time.Date(2025, 3, 24, 10, 0, 0, 0, time.UTC), PeriodWeek.Start(now))
	// calendar month arithmetic, not a fixed 30 days
	assert.Equal(t, time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC), PeriodMonth.Start(now))
}

func TestGetInsightsWindowAndOrdering(t *testing.T) {
	store := &fakeStore{
		fuelSince: []model.FuelLog{
			{ID: 2, Timestamp: testNow.Add(-time.Hour)},
			{ID: 1, Timestamp: testNow.Add(-3 * time.Hour)},
		},
		distances: []model.DistancePoint{
			{VehicleID: 1, TotalDistance: 200, Timestamp: testNow.Add(-time.Hour)},
			{VehicleID: 1, TotalDistance: 100, Timestamp: testNow.Add(-5 * time.Hour)},
		},
		scores: []model.DriverScore{
			{ID: 1, Score: 71.5},
			{ID: 2, Score: 92},
			{ID: 3, Score: 88},
		},
		complaintCounts: []model.ComplaintTypeCount{
			{Type: "mechanical", Count: 3},
			{Type: "billing", Count: 1},
		},
	}
	svc := NewInsightsService(store)

	insights, err := svc.GetInsights(context.Background(), PeriodMonth, testNow)
	require.NoError(t, err)

	// every store query is bounded by the same window start
	wantStart := testNow.AddDate(0, -1, 0)
	assert.Equal(t, wantStart, insights.StartDate)
	assert.Equal(t, wantStart, store.fuelSinceArg)
	assert.Equal(t, wantStart, store.distancesSinceArg)
	assert.Equal(t, wantStart, store.scoresSinceArg)
	assert.Equal(t, wantStart, store.complaintsSinceArg)

	// trends ascending by time
	require.Len(t, insights.FuelTrends, 2)
	assert.Equal(t, 1, insights.FuelTrends[0].ID)
	require.Len(t, insights.DistanceTrends, 2)
	assert.Equal(t, 100.0, insights.DistanceTrends[0].TotalDistance)

	// scores strictly descending
	require.Len(t, insights.DriverScores, 3)
	assert.Equal(t, 92.0, insights.DriverScores[0].Score)
	assert.Equal(t, 88.0, insights.DriverScores[1].Score)
	assert.Equal(t, 71.5, insights.DriverScores[2].Score)

	// by-type counts sum to the window's complaint total
	var total int64
	for _, c := range insights.ComplaintsByType {
		total += c.Count
	}
	assert.Equal(t, int64(4), total)
}

func TestGetInsightsStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("timeout")}
	svc := NewInsightsService(store)

	_, err := svc.GetInsights(context.Background(), PeriodWeek, testNow)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}
