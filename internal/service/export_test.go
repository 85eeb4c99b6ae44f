package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

func TestBuildInsightsWorkbook(t *testing.T) {
	insights := &model.Insights{
		Period: "week",
		FuelTrends: []model.FuelLog{
			{
				Timestamp: time.Date(2025, 6, 10, 8, 30, 0, 0, time.UTC),
				Volume:    40,
				Suspicion: model.SuspicionRed,
				Vehicle:   &model.Vehicle{RegistrationNo: "HR55AN2175"},
			},
		},
		DistanceTrends: []model.DistancePoint{
			{VehicleID: 1, TotalDistance: 42000, Timestamp: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)},
		},
		DriverScores: []model.DriverScore{
			{
				Score:       92,
				PeriodStart: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
				PeriodEnd:   time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC),
				User:        &model.User{Name: "Fleet Driver"},
				Vehicle:     &model.Vehicle{RegistrationNo: "HR47E2573"},
			},
		},
		ComplaintsByType: []model.ComplaintTypeCount{{Type: "mechanical", Count: 3}},
	}

	f, err := BuildInsightsWorkbook(insights)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"FuelTrends", "DistanceTrends", "DriverScores", "Complaints"}, f.GetSheetList())

	cell, err := f.GetCellValue("FuelTrends", "B2")
	require.NoError(t, err)
	assert.Equal(t, "HR55AN2175", cell)

	cell, err = f.GetCellValue("DriverScores", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Fleet Driver", cell)

	cell, err = f.GetCellValue("Complaints", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", cell)
}
