package services

import (
	"errors"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceDeviceService defines the device registry service interface
type InterfaceDeviceService interface {
	RegisterDevice(device *models.Device) error
	GetAllDevices() ([]models.Device, error)
	GetDeviceByID(id uint) (*models.Device, error)
	GetDeviceByDeviceID(deviceID string) (*models.Device, error)
	UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error)
	DeleteDevice(id uint) error
	SetDeviceStatus(deviceID string, status models.DeviceStatus) error
}

// DeviceService 提供设备注册与查询相关的服务
type DeviceService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewDeviceService 创建一个新的设备服务
func NewDeviceService(db *gorm.DB, cfg *config.Config) InterfaceDeviceService {
	return &DeviceService{
		DB:     db,
		Config: cfg,
	}
}

// 1 RegisterDevice 注册新设备
func (s *DeviceService) RegisterDevice(device *models.Device) error {
	// 验证设备编号唯一性，重复注册不允许覆盖原记录
	var count int64
	if err := s.DB.Model(&models.Device{}).Where("device_id = ?", device.DeviceID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrDeviceAlreadyExist
	}

	// 设置默认状态
	if device.Status == "" {
		device.Status = models.DeviceStatusOff
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(device).Error; err != nil {
			return err
		}

		activity := models.DeviceActivity{
			DeviceRefID: device.ID,
			Action:      models.ActivityRegistered,
			Source:      models.SourceSystem,
			Detail:      "设备注册: " + device.DeviceID,
		}
		return tx.Create(&activity).Error
	})
}

// 2 GetAllDevices 获取所有设备列表
func (s *DeviceService) GetAllDevices() ([]models.Device, error) {
	var devices []models.Device
	if err := s.DB.Find(&devices).Error; err != nil {
		return nil, err
	}

	return devices, nil
}

// 3 GetDeviceByID 根据主键ID获取设备
func (s *DeviceService) GetDeviceByID(id uint) (*models.Device, error) {
	var device models.Device
	if err := s.DB.First(&device, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	return &device, nil
}

// 4 GetDeviceByDeviceID 根据设备编号获取设备
func (s *DeviceService) GetDeviceByDeviceID(deviceID string) (*models.Device, error) {
	var device models.Device
	if err := s.DB.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	return &device, nil
}

// 5 UpdateDevice 更新设备信息
func (s *DeviceService) UpdateDevice(id uint, updates map[string]interface{}) (*models.Device, error) {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新设备编号，需要检查唯一性
	if deviceID, ok := updates["device_id"].(string); ok && deviceID != device.DeviceID {
		var count int64
		if err := s.DB.Model(&models.Device{}).Where("device_id = ? AND id != ?", deviceID, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrDeviceAlreadyExist
		}
	}

	if err := s.DB.Model(device).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的设备信息
	return s.GetDeviceByID(id)
}

// 6 DeleteDevice 删除设备（级联删除遥测、指令、调度与活动记录）
func (s *DeviceService) DeleteDevice(id uint) error {
	device, err := s.GetDeviceByID(id)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		// MySQL外键级联在AutoMigrate下不总是建立，这里显式清理从属记录
		if err := tx.Where("device_ref_id = ?", device.ID).Delete(&models.DeviceData{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_ref_id = ?", device.ID).Delete(&models.DeviceCommand{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_ref_id = ?", device.ID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("device_ref_id = ?", device.ID).Delete(&models.DeviceActivity{}).Error; err != nil {
			return err
		}
		return tx.Delete(device).Error
	})
}

// 7 SetDeviceStatus 更新设备状态
func (s *DeviceService) SetDeviceStatus(deviceID string, status models.DeviceStatus) error {
	if !status.IsValid() {
		return ErrInvalidCommand
	}

	result := s.DB.Model(&models.Device{}).Where("device_id = ?", deviceID).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDeviceNotFound
	}
	return nil
}
