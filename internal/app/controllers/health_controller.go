package controllers

import (
	"net/http"

	"smartlight-http-service/internal/domain/services"
	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/error/code"
	"smartlight-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController 处理健康检查请求
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建一个新的健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "status":
			controller.Status()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 健康检查端点
// @Summary 健康检查
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /ping [get]
func (c *HealthController) Ping() {
	c.Ctx.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

// Status 返回各依赖组件的健康状态
// @Summary 系统状态
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/status [get]
func (c *HealthController) Status() {
	dbStatus := "up"
	sqlDB, err := c.Container.GetDB().DB()
	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "down"
	}

	redisStatus := "disabled"
	if redisService, ok := c.Container.GetService("redis").(services.InterfaceRedisService); ok && redisService != nil {
		if redisService.Ping() == nil {
			redisStatus = "up"
		} else {
			redisStatus = "down"
		}
	}

	mqttStatus := "disabled"
	if mqttService, ok := c.Container.GetService("mqtt").(services.InterfaceMQTTService); ok && mqttService != nil {
		if mqttService.IsConnected() {
			mqttStatus = "up"
		} else if c.Container.GetConfig().MQTTBrokerURL != "" {
			mqttStatus = "down"
		}
	}

	evaluatorStatus := "stopped"
	if evaluator, ok := c.Container.GetService("evaluator").(services.InterfaceEvaluatorService); ok && evaluator.IsRunning() {
		evaluatorStatus = "running"
	}

	c.Ctx.JSON(http.StatusOK, gin.H{
		"database":  dbStatus,
		"redis":     redisStatus,
		"mqtt":      mqttStatus,
		"evaluator": evaluatorStatus,
	})
}
