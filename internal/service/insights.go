// 趋势分析服务

package service

import (
	"context"
	"sort"
	"time"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
)

// Period 趋势分析时间窗口
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// NormalizePeriod 解析时间窗口参数。无法识别的值回退到 week，
// 客户端发送过期的取值时页面照常可用。
func NormalizePeriod(s string) Period {
	switch Period(s) {
	case PeriodDay, PeriodWeek, PeriodMonth:
		return Period(s)
	}
	return PeriodWeek
}

// Start 计算窗口起点
func (p Period) Start(now time.Time) time.Time {
	switch p {
	case PeriodDay:
		return now.AddDate(0, 0, -1)
	case PeriodMonth:
		return now.AddDate(0, -1, 0)
	default:
		return now.AddDate(0, 0, -7)
	}
}

// InsightsService 趋势分析服务
type InsightsService struct {
	store Store
}

// NewInsightsService 创建趋势分析服务
func NewInsightsService(store Store) *InsightsService {
	return &InsightsService{store: store}
}

// GetInsights 计算窗口内的油量、里程、驾驶评分与投诉分布趋势。
// 窗口内不分页，窗口大小由调用方通过 period 控制。
func (s *InsightsService) GetInsights(ctx context.Context, period Period, now time.Time) (*model.Insights, error) {
	startDate := period.Start(now)

	fuelLogs, err := s.store.FuelLogsSince(ctx, startDate)
	if err != nil {
		return nil, storeErr(err)
	}
	sort.SliceStable(fuelLogs, func(i, j int) bool {
		return fuelLogs[i].Timestamp.Before(fuelLogs[j].Timestamp)
	})

	distances, err := s.store.DistanceSamplesSince(ctx, startDate)
	if err != nil {
		return nil, storeErr(err)
	}
	sort.SliceStable(distances, func(i, j int) bool {
		return distances[i].Timestamp.Before(distances[j].Timestamp)
	})

	scores, err := s.store.DriverScoresSince(ctx, startDate)
	if err != nil {
		return nil, storeErr(err)
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	complaints, err := s.store.ComplaintCountsByType(ctx, startDate)
	if err != nil {
		return nil, storeErr(err)
	}

	return &model.Insights{
		Period:           string(period),
		StartDate:        startDate,
		FuelTrends:       fuelLogs,
		DistanceTrends:   distances,
		DriverScores:     scores,
		ComplaintsByType: complaints,
	}, nil
}
