package services

import (
	"fmt"
	"time"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceTelemetryService defines the telemetry ingest service interface
type InterfaceTelemetryService interface {
	ReportData(deviceID string, voltage, current, power, energy float64, status string) (*models.DeviceData, error)
	GetDeviceDetail(id uint) (*DeviceDetail, error)
}

// DeviceDetail 设备详情聚合：最新读数、24小时历史、最近活动
type DeviceDetail struct {
	Device         *models.Device          `json:"device"`
	LatestData     *models.DeviceData      `json:"latest_data"`
	HistoricalData []models.DeviceData     `json:"historical_data"`
	RecentActivity []models.DeviceActivity `json:"recent_activity"`
}

// TelemetryService 处理设备遥测上报与查询
type TelemetryService struct {
	DB     *gorm.DB
	Config *config.Config
	Alert  InterfaceAlertService
	Redis  InterfaceRedisService // 可为nil，缓存是尽力而为
}

// NewTelemetryService 创建一个新的遥测服务
func NewTelemetryService(db *gorm.DB, cfg *config.Config, alertService InterfaceAlertService, redisService InterfaceRedisService) InterfaceTelemetryService {
	return &TelemetryService{
		DB:     db,
		Config: cfg,
		Alert:  alertService,
		Redis:  redisService,
	}
}

// 1 ReportData 接收一条遥测读数。功率低于阈值时触发告警，
// 告警失败只记日志，绝不让上报请求失败。
func (s *TelemetryService) ReportData(deviceID string, voltage, current, power, energy float64, status string) (*models.DeviceData, error) {
	var device models.Device
	if err := s.DB.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	reading := models.DeviceData{
		DeviceRefID: device.ID,
		Voltage:     voltage,
		Current:     current,
		Power:       power,
		Energy:      energy,
		Status:      status,
	}

	lowPower := power < s.Config.LowPowerThreshold

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&reading).Error; err != nil {
			return err
		}

		// 上报的状态同步到设备
		if st := models.DeviceStatus(status); st.IsValid() && st != device.Status {
			if err := tx.Model(&device).Update("status", st).Error; err != nil {
				return err
			}
		}

		if lowPower {
			activity := models.DeviceActivity{
				DeviceRefID: device.ID,
				Action:      models.ActivityLowPowerAlert,
				Source:      models.SourceSystem,
				Detail:      fmt.Sprintf("低功率: %.2fW (阈值 %.2fW)", power, s.Config.LowPowerThreshold),
			}
			if err := tx.Create(&activity).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// 刷新最新读数缓存
	if s.Redis != nil {
		if err := s.Redis.CacheLatestReading(deviceID, &reading); err != nil {
			Logger.Warning("缓存最新读数失败 device=%s: %v", deviceID, err)
		}
	}

	// 低功率告警为旁路副作用，异步发送
	if lowPower && s.Alert != nil {
		message := fmt.Sprintf("Low power detected for device %s: %.2fW", deviceID, power)
		go func() {
			if err := s.Alert.Send(message); err != nil {
				Logger.Warning("低功率告警发送失败 device=%s: %v", deviceID, err)
			}
		}()
	}

	return &reading, nil
}

// 2 GetDeviceDetail 获取设备详情聚合
func (s *TelemetryService) GetDeviceDetail(id uint) (*DeviceDetail, error) {
	var device models.Device
	if err := s.DB.First(&device, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	detail := &DeviceDetail{
		Device:         &device,
		HistoricalData: []models.DeviceData{},
		RecentActivity: []models.DeviceActivity{},
	}

	// 最新一条读数，优先走缓存
	if s.Redis != nil {
		if cached, err := s.Redis.GetCachedLatestReading(device.DeviceID); err == nil {
			detail.LatestData = cached
		}
	}
	if detail.LatestData == nil {
		var latest models.DeviceData
		if err := s.DB.Where("device_ref_id = ?", device.ID).Order("timestamp DESC").First(&latest).Error; err == nil {
			detail.LatestData = &latest
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	// 过去24小时的历史读数
	since := time.Now().Add(-24 * time.Hour)
	if err := s.DB.Where("device_ref_id = ? AND timestamp >= ?", device.ID, since).
		Order("timestamp DESC").Find(&detail.HistoricalData).Error; err != nil {
		return nil, err
	}

	// 最近10条活动
	if err := s.DB.Where("device_ref_id = ?", device.ID).
		Order("created_at DESC").Limit(10).Find(&detail.RecentActivity).Error; err != nil {
		return nil, err
	}

	return detail, nil
}
