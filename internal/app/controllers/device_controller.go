package controllers

import (
	"errors"
	"strconv"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/domain/services"
	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/error/code"
	"smartlight-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceDeviceController 定义设备控制器接口
type InterfaceDeviceController interface {
	GetDevices()
	GetDevice()
	RegisterDevice()
	UpdateDevice()
	DeleteDevice()
	ControlDevice()
	GetDeviceDetail()
}

// DeviceController 处理设备相关的请求
type DeviceController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeviceController 创建一个新的设备控制器
func NewDeviceController(ctx *gin.Context, container *container.ServiceContainer) *DeviceController {
	return &DeviceController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeviceRequest 表示设备注册请求
type DeviceRequest struct {
	DeviceID      string  `json:"device_id" binding:"required" example:"SL-0001"`
	Location      string  `json:"location" binding:"required" example:"中山路与人民路交叉口"`
	TotalLights   int     `json:"total_lights" binding:"min=0" example:"12"`
	EstimatedLoad float64 `json:"estimated_load" binding:"min=0" example:"480.5"` // 瓦特
	Status        string  `json:"status" example:"OFF"`                           // ON 或 OFF
}

// DeviceUpdateRequest 表示设备更新请求
type DeviceUpdateRequest struct {
	Location      *string  `json:"location" example:"中山路与人民路交叉口"`
	TotalLights   *int     `json:"total_lights" example:"12"`
	EstimatedLoad *float64 `json:"estimated_load" example:"480.5"`
}

// ControlRequest 表示设备控制请求
type ControlRequest struct {
	DeviceID string `json:"device_id" binding:"required" example:"SL-0001"`
	Command  string `json:"command" binding:"required" example:"ON"` // ON 或 OFF
	Duration int    `json:"duration" example:"0"`                    // 持续分钟数，0表示不限时
}

// HandleDeviceFunc 返回一个处理设备请求的Gin处理函数
func HandleDeviceFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeviceController(ctx, container)

		switch method {
		case "getDevices":
			controller.GetDevices()
		case "getDevice":
			controller.GetDevice()
		case "registerDevice":
			controller.RegisterDevice()
		case "updateDevice":
			controller.UpdateDevice()
		case "deleteDevice":
			controller.DeleteDevice()
		case "controlDevice":
			controller.ControlDevice()
		case "getDeviceDetail":
			controller.GetDeviceDetail()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetDevices 获取所有设备列表
// @Summary 获取所有设备
// @Description 获取所有已注册路灯控制器的列表
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Device
// @Failure 500 {object} ErrorResponse
// @Router /devices [get]
func (c *DeviceController) GetDevices() {
	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	devices, err := deviceService.GetAllDevices()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, devices)
}

// 2. GetDevice 获取单个设备详情
// @Summary 获取单个设备
// @Description 根据ID获取设备信息
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} models.Device
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id} [get]
func (c *DeviceController) GetDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "无效的设备ID", nil)
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	device, err := deviceService.GetDeviceByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, device)
}

// 3. RegisterDevice 注册新设备
// @Summary 注册新设备
// @Description 注册一个新的路灯控制器，设备编号重复时注册失败且不影响原记录
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body DeviceRequest true "设备注册参数"
// @Success 201 {object} models.Device
// @Failure 400 {object} ErrorResponse
// @Router /devices [post]
func (c *DeviceController) RegisterDevice() {
	var req DeviceRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind, gin.H{"error": err.Error()})
		return
	}

	status := models.DeviceStatus(req.Status)
	if req.Status != "" && !status.IsValid() {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "状态只能为 ON 或 OFF", nil)
		return
	}

	device := models.Device{
		DeviceID:      req.DeviceID,
		Location:      req.Location,
		TotalLights:   req.TotalLights,
		EstimatedLoad: req.EstimatedLoad,
		Status:        status,
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	if err := deviceService.RegisterDevice(&device); err != nil {
		if errors.Is(err, services.ErrDeviceAlreadyExist) {
			response.Fail(c.Ctx, code.ErrDeviceAlreadyExist, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Created(c.Ctx, device)
}

// 4. UpdateDevice 更新设备信息
// @Summary 更新设备
// @Description 更新设备的位置、灯数与预估负载
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Param request body DeviceUpdateRequest true "设备更新参数"
// @Success 200 {object} models.Device
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id} [put]
func (c *DeviceController) UpdateDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "无效的设备ID", nil)
		return
	}

	var req DeviceUpdateRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind, gin.H{"error": err.Error()})
		return
	}

	updates := make(map[string]interface{})
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.TotalLights != nil {
		if *req.TotalLights < 0 {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "灯数不能为负数", nil)
			return
		}
		updates["total_lights"] = *req.TotalLights
	}
	if req.EstimatedLoad != nil {
		if *req.EstimatedLoad < 0 {
			response.FailWithMessage(c.Ctx, code.ErrValidation, "预估负载不能为负数", nil)
			return
		}
		updates["estimated_load"] = *req.EstimatedLoad
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	device, err := deviceService.UpdateDevice(uint(id), updates)
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, device)
}

// 5. DeleteDevice 删除设备
// @Summary 删除设备
// @Description 删除设备并级联删除其遥测数据、指令与调度
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id} [delete]
func (c *DeviceController) DeleteDevice() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "无效的设备ID", nil)
		return
	}

	deviceService := c.Container.GetService("device").(services.InterfaceDeviceService)

	if err := deviceService.DeleteDevice(uint(id)); err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "设备已删除", nil)
}

// 6. ControlDevice 下发控制指令
// @Summary 控制设备
// @Description 下发 ON/OFF 指令，设备状态与待执行指令在同一事务内更新
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ControlRequest true "控制参数"
// @Success 200 {object} response.Response
// @Failure 404 {object} ErrorResponse
// @Router /devices/control [post]
func (c *DeviceController) ControlDevice() {
	var req ControlRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind, gin.H{"error": err.Error()})
		return
	}

	commandService := c.Container.GetService("command").(services.InterfaceCommandService)

	if err := commandService.SetCommand(req.DeviceID, req.Command, req.Duration, models.SourceManual); err != nil {
		switch {
		case errors.Is(err, services.ErrDeviceNotFound):
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
		case errors.Is(err, services.ErrInvalidCommand):
			response.Fail(c.Ctx, code.ErrInvalidCommand, nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	response.SuccessWithMessage(c.Ctx, "Command updated", nil)
}

// 7. GetDeviceDetail 获取设备详情聚合
// @Summary 获取设备详情
// @Description 返回设备信息、最新读数、过去24小时历史读数与最近10条活动
// @Tags Device
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "设备ID"
// @Success 200 {object} services.DeviceDetail
// @Failure 404 {object} ErrorResponse
// @Router /devices/{id}/data [get]
func (c *DeviceController) GetDeviceDetail() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "无效的设备ID", nil)
		return
	}

	telemetryService := c.Container.GetService("telemetry").(services.InterfaceTelemetryService)

	detail, err := telemetryService.GetDeviceDetail(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrDeviceNotFound) {
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, detail)
}
