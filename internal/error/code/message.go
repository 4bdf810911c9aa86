package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrTooManyRequests: "请求频率过高，请稍后再试",

	// 用户相关错误码
	ErrUserNotFound:          "用户不存在",
	ErrUserAlreadyExist:      "用户已存在",
	ErrUserPasswordIncorrect: "用户密码错误",

	// 设备相关错误码
	ErrDeviceNotFound:        "设备不存在",
	ErrDeviceAlreadyExist:    "设备编号已存在",
	ErrDeviceCommandNotFound: "设备尚无下发指令",
	ErrInvalidCommand:        "无效的控制指令，仅支持 ON/OFF",

	// 遥测数据相关错误码
	ErrTelemetryValidation: "遥测数据校验失败",

	// 调度相关错误码
	ErrScheduleNotFound:    "调度不存在",
	ErrScheduleInvalidTime: "调度时间格式错误，应为 HH:MM",

	// 告警相关错误码
	ErrAlertDelivery: "告警发送失败",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态映射
var codeStatusMap = map[int]int{
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrTooManyRequests: StatusTooManyRequests,

	ErrUserNotFound:          StatusNotFound,
	ErrUserAlreadyExist:      StatusBadRequest,
	ErrUserPasswordIncorrect: StatusUnauthorized,

	ErrDeviceNotFound:        StatusNotFound,
	ErrDeviceAlreadyExist:    StatusBadRequest,
	ErrDeviceCommandNotFound: StatusNotFound,
	ErrInvalidCommand:        StatusBadRequest,

	ErrTelemetryValidation: StatusBadRequest,

	ErrScheduleNotFound:    StatusNotFound,
	ErrScheduleInvalidTime: StatusBadRequest,

	ErrAlertDelivery: StatusInternalServerError,

	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(errorCode int) string {
	if message, ok := codeMessageMap[errorCode]; ok {
		return message
	}
	return codeMessageMap[ErrUnknown]
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(errorCode int) int {
	if status, ok := codeStatusMap[errorCode]; ok {
		return status
	}
	return StatusInternalServerError
}
