package controllers

import (
	"errors"

	"smartlight-http-service/internal/domain/services"
	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/error/code"
	"smartlight-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceTelemetryController 定义遥测控制器接口
type InterfaceTelemetryController interface {
	ReportData()
	GetCommand()
}

// TelemetryController 处理设备侧的遥测上报与指令轮询。
// 这两个端点刻意不做认证：未完成配置的设备也必须能够上报和取指令，
// 扩面认证范围时不得把它们圈进去。
type TelemetryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewTelemetryController 创建一个新的遥测控制器
func NewTelemetryController(ctx *gin.Context, container *container.ServiceContainer) *TelemetryController {
	return &TelemetryController{
		Ctx:       ctx,
		Container: container,
	}
}

// ReportDataRequest 表示遥测上报请求
type ReportDataRequest struct {
	Device  string   `json:"device" binding:"required" example:"SL-0001"`
	Voltage *float64 `json:"voltage" binding:"required" example:"220.1"`
	Current *float64 `json:"current" binding:"required" example:"2.1"`
	Power   *float64 `json:"power" binding:"required" example:"460.2"`
	Energy  *float64 `json:"energy" binding:"required" example:"1024.5"`
	Status  string   `json:"status" binding:"required" example:"ON"`
}

// HandleTelemetryFunc 返回一个处理遥测请求的Gin处理函数
func HandleTelemetryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewTelemetryController(ctx, container)

		switch method {
		case "reportData":
			controller.ReportData()
		case "getCommand":
			controller.GetCommand()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. ReportData 接收设备遥测上报
// @Summary 遥测上报
// @Description 设备上报电压、电流、功率、电量与当前状态；功率低于阈值时触发低功率告警（告警失败不影响上报结果）
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param request body ReportDataRequest true "遥测数据"
// @Success 200 {object} response.Response
// @Failure 400 {object} ErrorResponse
// @Router /device/report [post]
func (c *TelemetryController) ReportData() {
	var req ReportDataRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrTelemetryValidation, gin.H{"error": err.Error()})
		return
	}

	telemetryService := c.Container.GetService("telemetry").(services.InterfaceTelemetryService)

	_, err := telemetryService.ReportData(req.Device, *req.Voltage, *req.Current, *req.Power, *req.Energy, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			// 未注册设备的上报按校验失败处理
			response.FailWithMessage(c.Ctx, code.ErrTelemetryValidation, "未知设备: "+req.Device, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "Data received", nil)
}

// 2. GetCommand 设备轮询待执行指令
// @Summary 指令轮询
// @Description 设备轮询自己的最新指令，始终反映最近一次下发的结果
// @Tags Telemetry
// @Accept json
// @Produce json
// @Param device_id query string true "设备编号"
// @Success 200 {object} models.DeviceCommand
// @Failure 404 {object} ErrorResponse
// @Router /device/command [get]
func (c *TelemetryController) GetCommand() {
	deviceID := c.Ctx.Query("device_id")
	if deviceID == "" {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "缺少device_id参数", nil)
		return
	}

	commandService := c.Container.GetService("command").(services.InterfaceCommandService)

	command, err := commandService.GetCommand(deviceID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDeviceNotFound):
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
		case errors.Is(err, services.ErrCommandNotFound):
			response.Fail(c.Ctx, code.ErrDeviceCommandNotFound, nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	response.Success(c.Ctx, command)
}
