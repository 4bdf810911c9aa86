package controllers

import (
	"errors"
	"strconv"

	"smartlight-http-service/internal/domain/services"
	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/error/code"
	"smartlight-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// InterfaceScheduleController 定义调度控制器接口
type InterfaceScheduleController interface {
	GetSchedules()
	CreateSchedule()
	DeleteSchedule()
}

// ScheduleController 处理调度相关的请求
type ScheduleController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewScheduleController 创建一个新的调度控制器
func NewScheduleController(ctx *gin.Context, container *container.ServiceContainer) *ScheduleController {
	return &ScheduleController{
		Ctx:       ctx,
		Container: container,
	}
}

// ScheduleRequest 表示调度创建请求
type ScheduleRequest struct {
	Device      string `json:"device" binding:"required" example:"SL-0001"`
	OnTime      string `json:"on_time" binding:"required" example:"18:30"` // HH:MM
	OffTime     string `json:"off_time" binding:"required" example:"06:00"`
	RepeatDaily *bool  `json:"repeat_daily" example:"true"` // 缺省为true
}

// HandleScheduleFunc 返回一个处理调度请求的Gin处理函数
func HandleScheduleFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewScheduleController(ctx, container)

		switch method {
		case "getSchedules":
			controller.GetSchedules()
		case "createSchedule":
			controller.CreateSchedule()
		case "deleteSchedule":
			controller.DeleteSchedule()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// 1. GetSchedules 获取所有调度列表
// @Summary 获取所有调度
// @Description 获取全部定时开关规则
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Schedule
// @Failure 500 {object} ErrorResponse
// @Router /schedules [get]
func (c *ScheduleController) GetSchedules() {
	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	schedules, err := scheduleService.GetAllSchedules()
	if err != nil {
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.Success(c.Ctx, schedules)
}

// 2. CreateSchedule 创建新调度
// @Summary 创建调度
// @Description 为设备创建定时开关规则，off_time早于on_time表示窗口跨午夜
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ScheduleRequest true "调度参数"
// @Success 201 {object} models.Schedule
// @Failure 400 {object} ErrorResponse
// @Router /schedules [post]
func (c *ScheduleController) CreateSchedule() {
	var req ScheduleRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.Fail(c.Ctx, code.ErrBind, gin.H{"error": err.Error()})
		return
	}

	repeatDaily := true
	if req.RepeatDaily != nil {
		repeatDaily = *req.RepeatDaily
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	schedule, err := scheduleService.CreateSchedule(req.Device, req.OnTime, req.OffTime, repeatDaily)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidClockTime):
			response.Fail(c.Ctx, code.ErrScheduleInvalidTime, nil)
		case errors.Is(err, services.ErrDeviceNotFound):
			response.Fail(c.Ctx, code.ErrDeviceNotFound, nil)
		default:
			response.Fail(c.Ctx, code.ErrDatabase, nil)
		}
		return
	}

	response.Created(c.Ctx, schedule)
}

// 3. DeleteSchedule 删除调度
// @Summary 删除调度
// @Description 根据ID删除定时开关规则
// @Tags Schedule
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "调度ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} ErrorResponse
// @Router /schedules/{id} [delete]
func (c *ScheduleController) DeleteSchedule() {
	id, err := strconv.Atoi(c.Ctx.Param("id"))
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrValidation, "无效的调度ID", nil)
		return
	}

	scheduleService := c.Container.GetService("schedule").(services.InterfaceScheduleService)

	if err := scheduleService.DeleteSchedule(uint(id)); err != nil {
		if errors.Is(err, services.ErrScheduleNotFound) {
			response.Fail(c.Ctx, code.ErrScheduleNotFound, nil)
			return
		}
		response.Fail(c.Ctx, code.ErrDatabase, nil)
		return
	}

	response.SuccessWithMessage(c.Ctx, "调度已删除", nil)
}
