package models

import (
	"time"
)

// DeviceCommand 设备的唯一待执行指令（与设备一对一，写入即覆盖）
type DeviceCommand struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceRefID uint      `gorm:"uniqueIndex;not null" json:"device_ref_id"`
	Command     string    `gorm:"type:varchar(10);not null" json:"command"` // ON 或 OFF
	Duration    int       `gorm:"default:0" json:"duration"`                // 持续分钟数，0表示不限时
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Device *Device `gorm:"foreignKey:DeviceRefID" json:"device,omitempty"`
}
