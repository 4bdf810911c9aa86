package models

import (
	"time"
)

// 活动类型
const (
	ActivityRegistered    = "registered"      // 设备注册
	ActivityCommandSet    = "command_set"     // 指令下发
	ActivityScheduleOn    = "schedule_on"     // 调度触发开灯
	ActivityScheduleOff   = "schedule_off"    // 调度触发关灯
	ActivityLowPowerAlert = "low_power_alert" // 低功率告警
)

// 活动来源
const (
	SourceManual   = "manual"
	SourceSchedule = "schedule"
	SourceSystem   = "system"
)

// DeviceActivity 设备操作流水，支撑设备详情中的最近活动列表
type DeviceActivity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	DeviceRefID uint      `gorm:"index;not null" json:"device_ref_id"`
	Action      string    `gorm:"type:varchar(30);not null" json:"action"`
	Source      string    `gorm:"type:varchar(20);not null" json:"source"`
	Detail      string    `gorm:"type:varchar(255)" json:"detail"`
	CreatedAt   time.Time `json:"created_at"`

	Device *Device `gorm:"foreignKey:DeviceRefID" json:"device,omitempty"`
}
