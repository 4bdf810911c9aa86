package services

import (
	"errors"
	"fmt"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InterfaceCommandService defines the command store / reconciliation interface
type InterfaceCommandService interface {
	SetCommand(deviceID string, command string, duration int, source string) error
	GetCommand(deviceID string) (*models.DeviceCommand, error)
}

// CommandService 维护设备的期望指令，并保证指令与设备状态一致
type CommandService struct {
	DB     *gorm.DB
	Config *config.Config
	MQTT   InterfaceMQTTService // 可为nil，推送是尽力而为
}

// NewCommandService 创建一个新的指令服务
func NewCommandService(db *gorm.DB, cfg *config.Config, mqttService InterfaceMQTTService) InterfaceCommandService {
	return &CommandService{
		DB:     db,
		Config: cfg,
		MQTT:   mqttService,
	}
}

// 1 SetCommand 下发指令。设备状态更新与指令覆盖写在同一事务内完成，
// 不允许出现状态已变而指令未变（或相反）的中间态。
func (s *CommandService) SetCommand(deviceID string, command string, duration int, source string) error {
	status := models.DeviceStatus(command)
	if !status.IsValid() {
		return ErrInvalidCommand
	}
	if duration < 0 {
		duration = 0
	}
	if source == "" {
		source = models.SourceManual
	}

	var cmd models.DeviceCommand

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var device models.Device
		if err := tx.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrDeviceNotFound
			}
			return err
		}

		// (a) 更新设备状态
		if err := tx.Model(&device).Update("status", status).Error; err != nil {
			return err
		}

		// (b) 覆盖写设备的唯一指令行
		cmd = models.DeviceCommand{
			DeviceRefID: device.ID,
			Command:     command,
			Duration:    duration,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "device_ref_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"command", "duration", "updated_at"}),
		}).Create(&cmd).Error; err != nil {
			return err
		}

		// 记录活动流水
		action := models.ActivityCommandSet
		if source == models.SourceSchedule {
			if command == string(models.DeviceStatusOn) {
				action = models.ActivityScheduleOn
			} else {
				action = models.ActivityScheduleOff
			}
		}
		activity := models.DeviceActivity{
			DeviceRefID: device.ID,
			Action:      action,
			Source:      source,
			Detail:      fmt.Sprintf("指令 %s (duration=%d)", command, duration),
		}
		return tx.Create(&activity).Error
	})
	if err != nil {
		return err
	}

	// 事务提交后尽力推送，失败不影响指令本身
	if s.MQTT != nil {
		if err := s.MQTT.PublishCommand(deviceID, &cmd); err != nil {
			Logger.Warning("MQTT指令推送失败 device=%s: %v", deviceID, err)
		}
		if err := s.MQTT.PublishDeviceStatus(deviceID, status); err != nil {
			Logger.Warning("MQTT状态推送失败 device=%s: %v", deviceID, err)
		}
	}

	return nil
}

// 2 GetCommand 设备轮询入口，返回最近一次下发的指令
func (s *CommandService) GetCommand(deviceID string) (*models.DeviceCommand, error) {
	var device models.Device
	if err := s.DB.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	var cmd models.DeviceCommand
	if err := s.DB.Where("device_ref_id = ?", device.ID).First(&cmd).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommandNotFound
		}
		return nil, err
	}

	return &cmd, nil
}
