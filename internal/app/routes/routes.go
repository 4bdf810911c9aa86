package routes

import (
	"time"

	_ "smartlight-http-service/docs"
	"smartlight-http-service/internal/app/controllers"
	"smartlight-http-service/internal/app/middleware"
	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) (*gin.Engine, *container.ServiceContainer) {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r, serviceContainer
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由。
// 设备侧端点（上报/取指令）属于信任边界内侧，故意开放给未配置认证的设备，
// 以设备编号限流来约束滥用。
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 健康检查路由
	api.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	api.GET("/health", controllers.HandleHealthFunc(container, "ping")) // 兼容Docker健康检查的路由

	// 健康状态路由组
	healthGroup := api.Group("/health")
	healthGroup.GET("/status", controllers.HandleHealthFunc(container, "status"))

	// 认证路由 - 登录接口按IP限流防爆破
	api.POST("/auth/login", middleware.IPRateLimiter(5, 10), controllers.HandleJWTFunc(container, "login"))

	// 设备侧路由组 - 每个设备每秒2个请求，最多突发5个
	deviceGroup := api.Group("/device")
	deviceGroup.Use(middleware.DeviceRateLimiter(2, 5))
	deviceGroup.POST("/report", controllers.HandleTelemetryFunc(container, "reportData"))
	deviceGroup.GET("/command", controllers.HandleTelemetryFunc(container, "getCommand"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateSystemAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 设备路由
	devicesGroup := auth.Group("/devices")
	{
		devicesGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleDeviceFunc(container, "getDevices"))
		devicesGroup.POST("", controllers.HandleDeviceFunc(container, "registerDevice"))
		devicesGroup.POST("/control", controllers.HandleDeviceFunc(container, "controlDevice"))
		devicesGroup.GET("/:id", controllers.HandleDeviceFunc(container, "getDevice"))
		devicesGroup.PUT("/:id", controllers.HandleDeviceFunc(container, "updateDevice"))
		devicesGroup.DELETE("/:id", controllers.HandleDeviceFunc(container, "deleteDevice"))
		devicesGroup.GET("/:id/data", controllers.HandleDeviceFunc(container, "getDeviceDetail"))
	}

	// 调度路由
	schedulesGroup := auth.Group("/schedules")
	{
		schedulesGroup.GET("", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleScheduleFunc(container, "getSchedules"))
		schedulesGroup.POST("", controllers.HandleScheduleFunc(container, "createSchedule"))
		schedulesGroup.DELETE("/:id", controllers.HandleScheduleFunc(container, "deleteSchedule"))
	}
}
