package models

import (
	"time"
)

// Schedule 定时开关规则。OnTime/OffTime 为 "HH:MM" 格式的时刻（不含日期），
// OffTime 早于 OnTime 表示窗口跨越午夜。
type Schedule struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	DeviceRefID uint   `gorm:"index;not null" json:"device_ref_id"`
	OnTime      string `gorm:"type:varchar(5);not null" json:"on_time"`
	OffTime     string `gorm:"type:varchar(5);not null" json:"off_time"`
	RepeatDaily bool   `gorm:"default:true" json:"repeat_daily"`
	// 一次性调度在完成OFF沿之后标记为已消费，不再参与评估
	Consumed  bool      `gorm:"default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Device *Device `gorm:"foreignKey:DeviceRefID" json:"device,omitempty"`
}
