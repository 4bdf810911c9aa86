package container

import (
	"sync"

	"smartlight-http-service/internal/domain/services"
	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService   services.InterfaceJWTService
	redisService services.InterfaceRedisService

	// 外部通道服务
	alertService services.InterfaceAlertService
	mqttService  services.InterfaceMQTTService

	// 业务服务
	deviceService    services.InterfaceDeviceService
	telemetryService services.InterfaceTelemetryService
	commandService   services.InterfaceCommandService
	scheduleService  services.InterfaceScheduleService

	// 调度执行器
	evaluatorService services.InterfaceEvaluatorService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器。
// redisClient 可以为nil，此时按配置自行建立连接。
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务，外部注入的Redis连接优先于按配置新建
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config, c.redis)

	// 测试Redis连接，失败时降级为不使用缓存
	if err := c.redisService.Ping(); err != nil {
		Logger.Warning("Redis连接测试失败: %v，将不使用Redis缓存", err)
		c.redisService = nil
	}

	// 初始化告警服务
	c.alertService = services.NewEmailAlertService(c.config)

	// 初始化MQTT推送服务
	c.mqttService = services.NewMQTTService(c.config)
	if err := c.mqttService.Connect(); err != nil {
		Logger.Warning("MQTT服务连接失败: %v", err)
	}

	// 初始化业务服务
	c.deviceService = services.NewDeviceService(c.db, c.config)
	c.commandService = services.NewCommandService(c.db, c.config, c.mqttService)
	c.telemetryService = services.NewTelemetryService(c.db, c.config, c.alertService, c.redisService)
	c.scheduleService = services.NewScheduleService(c.db, c.config)

	// 初始化调度执行器（由入口决定何时Start）
	c.evaluatorService = services.NewEvaluatorService(c.config, c.scheduleService, c.commandService)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "alert":
		return c.alertService
	case "mqtt":
		return c.mqttService
	case "device":
		return c.deviceService
	case "telemetry":
		return c.telemetryService
	case "command":
		return c.commandService
	case "schedule":
		return c.scheduleService
	case "evaluator":
		return c.evaluatorService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// StartEvaluator 启动调度执行器
func (c *ServiceContainer) StartEvaluator() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.evaluatorService.Start()
}

// StopEvaluator 停止调度执行器
func (c *ServiceContainer) StopEvaluator() {
	c.mu.RLock()
	defer c.mu.RUnlock()
	c.evaluatorService.Stop()
}
