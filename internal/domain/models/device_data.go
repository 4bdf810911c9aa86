package models

import (
	"time"
)

// DeviceData represents one immutable telemetry reading reported by a device
type DeviceData struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	DeviceRefID uint    `gorm:"index;not null" json:"device_ref_id"`
	Voltage     float64 `gorm:"not null" json:"voltage"`
	Current     float64 `gorm:"not null" json:"current"`
	Power       float64 `gorm:"not null" json:"power"`  // 瞬时功率，瓦特
	Energy      float64 `gorm:"not null" json:"energy"` // 累计电量，千瓦时
	Status      string  `gorm:"type:varchar(10)" json:"status"` // 上报时刻的设备状态
	// 服务端写入时间，设备侧不可指定
	Timestamp time.Time `gorm:"autoCreateTime;index" json:"timestamp"`

	Device *Device `gorm:"foreignKey:DeviceRefID" json:"device,omitempty"`
}

// TableName 固定表名，避免复数化出来的"device_datas"
func (DeviceData) TableName() string {
	return "device_data"
}
