package services

import "errors"

// 业务哨兵错误，控制器据此映射错误码
var (
	ErrDeviceNotFound      = errors.New("设备不存在")
	ErrDeviceAlreadyExist  = errors.New("设备编号已存在")
	ErrCommandNotFound     = errors.New("设备尚无下发指令")
	ErrInvalidCommand      = errors.New("无效的控制指令，仅支持 ON/OFF")
	ErrScheduleNotFound    = errors.New("调度不存在")
	ErrInvalidClockTime    = errors.New("时间格式错误，应为 HH:MM")
	ErrAlertNotConfigured  = errors.New("告警通道未配置")
)
