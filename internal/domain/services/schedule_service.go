package services

import (
	"errors"
	"regexp"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// clockTimePattern 匹配 "HH:MM" 格式的时刻
var clockTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// InterfaceScheduleService defines the schedule store service interface
type InterfaceScheduleService interface {
	GetAllSchedules() ([]models.Schedule, error)
	GetActiveSchedules() ([]models.Schedule, error)
	CreateSchedule(deviceID string, onTime, offTime string, repeatDaily bool) (*models.Schedule, error)
	DeleteSchedule(id uint) error
	MarkConsumed(id uint) error
}

// ScheduleService 管理设备的定时开关规则
type ScheduleService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewScheduleService 创建一个新的调度服务
func NewScheduleService(db *gorm.DB, cfg *config.Config) InterfaceScheduleService {
	return &ScheduleService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllSchedules 获取所有调度列表
func (s *ScheduleService) GetAllSchedules() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := s.DB.Preload("Device").Order("created_at ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

// 2 GetActiveSchedules 获取所有未消费的调度，按创建时间升序。
// 同一设备存在多条重叠调度时，后创建者在同一轮评估中后写入，即最新创建者生效。
func (s *ScheduleService) GetActiveSchedules() ([]models.Schedule, error) {
	var schedules []models.Schedule
	if err := s.DB.Preload("Device").Where("consumed = ?", false).
		Order("created_at ASC").Find(&schedules).Error; err != nil {
		return nil, err
	}

	return schedules, nil
}

// 3 CreateSchedule 创建新调度
func (s *ScheduleService) CreateSchedule(deviceID string, onTime, offTime string, repeatDaily bool) (*models.Schedule, error) {
	if !clockTimePattern.MatchString(onTime) || !clockTimePattern.MatchString(offTime) {
		return nil, ErrInvalidClockTime
	}

	var device models.Device
	if err := s.DB.Where("device_id = ?", deviceID).First(&device).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDeviceNotFound
		}
		return nil, err
	}

	schedule := models.Schedule{
		DeviceRefID: device.ID,
		OnTime:      onTime,
		OffTime:     offTime,
		RepeatDaily: repeatDaily,
	}
	if err := s.DB.Create(&schedule).Error; err != nil {
		return nil, err
	}

	return &schedule, nil
}

// 4 DeleteSchedule 删除调度
func (s *ScheduleService) DeleteSchedule(id uint) error {
	result := s.DB.Delete(&models.Schedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}

// 5 MarkConsumed 将一次性调度标记为已消费
func (s *ScheduleService) MarkConsumed(id uint) error {
	result := s.DB.Model(&models.Schedule{}).Where("id = ?", id).Update("consumed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrScheduleNotFound
	}
	return nil
}
