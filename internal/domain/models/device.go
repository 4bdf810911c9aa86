package models

import (
	"time"
)

// DeviceStatus represents the on/off state of a street light controller
type DeviceStatus string

const (
	DeviceStatusOn  DeviceStatus = "ON"
	DeviceStatusOff DeviceStatus = "OFF"
)

// IsValid 判断是否为合法的设备状态
func (s DeviceStatus) IsValid() bool {
	return s == DeviceStatusOn || s == DeviceStatusOff
}

// Device represents a registered street light controller
type Device struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	DeviceID      string       `gorm:"type:varchar(100);uniqueIndex;not null" json:"device_id"`
	Location      string       `gorm:"type:varchar(200)" json:"location"`
	TotalLights   int          `gorm:"not null;default:0" json:"total_lights"`
	EstimatedLoad float64      `gorm:"not null;default:0" json:"estimated_load"` // 预估负载，单位瓦特
	Status        DeviceStatus `gorm:"type:varchar(10);default:'OFF'" json:"status"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`

	// Relations - 删除设备时级联删除所有从属记录
	Data       []DeviceData     `gorm:"foreignKey:DeviceRefID;constraint:OnDelete:CASCADE" json:"data,omitempty"`
	Command    *DeviceCommand   `gorm:"foreignKey:DeviceRefID;constraint:OnDelete:CASCADE" json:"command,omitempty"`
	Schedules  []Schedule       `gorm:"foreignKey:DeviceRefID;constraint:OnDelete:CASCADE" json:"schedules,omitempty"`
	Activities []DeviceActivity `gorm:"foreignKey:DeviceRefID;constraint:OnDelete:CASCADE" json:"activities,omitempty"`
}
