package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/nats-io/nats.go"
	"gorm.io/gorm"

	"github.com/Aryankr26/fleet-backend-1.0/internal/model"
	"github.com/Aryankr26/fleet-backend-1.0/internal/store"
)

// 遥测消息主题前缀，按车辆 ID 细分，WebSocket 端订阅 fleet.telemetry.>
const telemetrySubjectPrefix = "fleet.telemetry"

// TelemetryService 遥测接入服务
type TelemetryService struct {
	db       *gorm.DB
	shadow   *store.ShadowCache
	natsConn *nats.Conn
}

// NewTelemetryService 创建遥测服务
func NewTelemetryService(db *gorm.DB, shadow *store.ShadowCache, natsConn *nats.Conn) *TelemetryService {
	return &TelemetryService{
		db:       db,
		shadow:   shadow,
		natsConn: natsConn,
	}
}

// Ingest stores one telemetry report and fans it out. The row append and
// the vehicle's cached last-position update are transactional; the shadow
// refresh and the NATS publish are best-effort and never fail the ingest.
func (s *TelemetryService) Ingest(ctx context.Context, req *model.IngestTelemetryRequest) (*model.Telemetry, error) {
	var vehicle model.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, req.VehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrVehicleNotFound
		}
		return nil, storeErr(err)
	}

	t := model.Telemetry{
		VehicleID:     req.VehicleID,
		IMEI:          vehicle.IMEI,
		Timestamp:     req.Timestamp,
		Latitude:      req.Latitude,
		Longitude:     req.Longitude,
		Speed:         req.Speed,
		Ignition:      req.Ignition,
		Motion:        req.Motion,
		Power:         req.Power,
		TotalDistance: req.TotalDistance,
		TodayDistance: req.TodayDistance,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&t).Error; err != nil {
			return err
		}

		// 只用更新的报文刷新车辆缓存位置，乱序报文不回退
		if vehicle.LastSeen == nil || req.Timestamp.After(*vehicle.LastSeen) {
			updates := map[string]interface{}{
				"last_lat":   req.Latitude,
				"last_lng":   req.Longitude,
				"last_seen":  req.Timestamp,
				"updated_at": time.Now(),
			}
			if req.TotalDistance > vehicle.Odometer {
				updates["odometer"] = req.TotalDistance
			}
			if err := tx.Model(&model.Vehicle{}).Where("id = ?", req.VehicleID).Updates(updates).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeErr(err)
	}

	if s.shadow != nil {
		if err := s.shadow.Update(ctx, &t); err != nil {
			log.Printf("[Telemetry] shadow update failed for vehicle %d: %v", t.VehicleID, err)
		}
	}

	if s.natsConn != nil {
		if data, err := json.Marshal(t); err == nil {
			subject := fmt.Sprintf("%s.%d", telemetrySubjectPrefix, t.VehicleID)
			if err := s.natsConn.Publish(subject, data); err != nil {
				log.Printf("[Telemetry] publish failed for vehicle %d: %v", t.VehicleID, err)
			}
		}
	}

	return &t, nil
}

// History 查询单车遥测历史
func (s *TelemetryService) History(ctx context.Context, vehicleID int, from, to time.Time, limit int) ([]model.Telemetry, error) {
	if limit <= 0 || limit > 1000 {
		limit = 1000
	}

	var samples []model.Telemetry
	db := s.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID)
	if !from.IsZero() {
		db = db.Where("timestamp >= ?", from)
	}
	if !to.IsZero() {
		db = db.Where("timestamp <= ?", to)
	}
	if err := db.Order("timestamp DESC").Limit(limit).Find(&samples).Error; err != nil {
		return nil, storeErr(err)
	}
	return samples, nil
}

// Live returns the vehicle's Redis shadow, falling back to the cached
// columns on the vehicle row when the shadow has expired.
func (s *TelemetryService) Live(ctx context.Context, vehicleID int) (*model.VehicleShadow, error) {
	if s.shadow != nil {
		shadow, err := s.shadow.Get(ctx, vehicleID)
		if err != nil {
			log.Printf("[Telemetry] shadow read failed for vehicle %d: %v", vehicleID, err)
		}
		if shadow != nil {
			return shadow, nil
		}
	}

	var vehicle model.Vehicle
	if err := s.db.WithContext(ctx).First(&vehicle, vehicleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrVehicleNotFound
		}
		return nil, storeErr(err)
	}
	if vehicle.LastLat == nil || vehicle.LastSeen == nil {
		return nil, nil
	}

	shadow := &model.VehicleShadow{
		VehicleID: vehicle.ID,
		Lat:       *vehicle.LastLat,
		Timestamp: vehicle.LastSeen.Unix(),
	}
	if vehicle.LastLng != nil {
		shadow.Lng = *vehicle.LastLng
	}
	return shadow, nil
}
