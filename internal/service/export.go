// 趋势报表导出

package service

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// BuildInsightsWorkbook 将趋势分析结果生成 Excel 工作簿
func BuildInsightsWorkbook(insights *model.Insights) (*excelize.File, error) {
	f := excelize.NewFile()

	// 油量趋势
	sheet := "FuelTrends"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}
	headers := []interface{}{"Time", "Vehicle", "Volume", "Level Delta", "Suspicion"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, l := range insights.FuelTrends {
		number := ""
		if l.Vehicle != nil {
			number = l.Vehicle.RegistrationNo
		}
		row := []interface{}{l.Timestamp.Format("2006-01-02 15:04:05"), number, l.Volume, l.LevelDelta, l.Suspicion}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	// 里程趋势
	sheet = "DistanceTrends"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	headers = []interface{}{"Time", "Vehicle ID", "Total Distance"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, d := range insights.DistanceTrends {
		row := []interface{}{d.Timestamp.Format("2006-01-02 15:04:05"), d.VehicleID, d.TotalDistance}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	// 驾驶评分
	sheet = "DriverScores"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	headers = []interface{}{"Driver", "Vehicle", "Period Start", "Period End", "Score"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, sc := range insights.DriverScores {
		name := ""
		if sc.User != nil {
			name = sc.User.Name
		}
		number := ""
		if sc.Vehicle != nil {
			number = sc.Vehicle.RegistrationNo
		}
		row := []interface{}{name, number, sc.PeriodStart.Format("2006-01-02"), sc.PeriodEnd.Format("2006-01-02"), sc.Score}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	// 投诉分布
	sheet = "Complaints"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}
	headers = []interface{}{"Type", "Count"}
	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, err
	}
	for i, c := range insights.ComplaintsByType {
		row := []interface{}{c.Type, c.Count}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return nil, err
		}
	}

	return f, nil
}
