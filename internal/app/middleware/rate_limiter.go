package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"sync"
	"time"

	"smartlight-http-service/internal/error/code"
	"smartlight-http-service/internal/error/response"

	"github.com/gin-gonic/gin"
)

// 简单的令牌桶限流器
type TokenBucket struct {
	rate       float64    // 每秒填充的令牌数
	capacity   int        // 桶的容量
	tokens     float64    // 当前令牌数
	lastRefill time.Time  // 上次填充时间
	mu         sync.Mutex // 互斥锁
}

// 创建新的令牌桶限流器
func NewTokenBucket(rate float64, capacity int) *TokenBucket {
	return &TokenBucket{
		rate:       rate,
		capacity:   capacity,
		tokens:     float64(capacity),
		lastRefill: time.Now(),
	}
}

// 尝试获取令牌
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill).Seconds()
	tb.lastRefill = now

	// 填充令牌
	tb.tokens += elapsed * tb.rate
	if tb.tokens > float64(tb.capacity) {
		tb.tokens = float64(tb.capacity)
	}

	// 尝试获取令牌
	if tb.tokens >= 1 {
		tb.tokens--
		return true
	}

	return false
}

// 限流器映射
var (
	keyLimiters   = make(map[string]*TokenBucket)
	keyLimitersMu sync.RWMutex
)

// RateLimiterConfig 限流器配置
type RateLimiterConfig struct {
	Rate       float64                   // 每秒允许的请求数
	Burst      int                       // 允许的突发请求数
	ExpiryTime time.Duration             // 限流器过期时间
	KeyFunc    func(*gin.Context) string // 限流键生成函数
}

// 获取或创建指定键的限流器
func getLimiter(key string, cfg RateLimiterConfig) *TokenBucket {
	keyLimitersMu.RLock()
	limiter, exists := keyLimiters[key]
	keyLimitersMu.RUnlock()

	if !exists {
		limiter = NewTokenBucket(cfg.Rate, cfg.Burst)
		keyLimitersMu.Lock()
		keyLimiters[key] = limiter
		keyLimitersMu.Unlock()

		// 设置过期时间，避免映射无限增长
		if cfg.ExpiryTime > 0 {
			go func() {
				time.Sleep(cfg.ExpiryTime)
				keyLimitersMu.Lock()
				delete(keyLimiters, key)
				keyLimitersMu.Unlock()
			}()
		}
	}

	return limiter
}

// RateLimiter 创建限流中间件
func RateLimiter(cfg RateLimiterConfig) gin.HandlerFunc {
	// 确保配置有效
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 5
	}
	if cfg.ExpiryTime <= 0 {
		cfg.ExpiryTime = 1 * time.Hour
	}
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(c *gin.Context) string { return c.ClientIP() }
	}

	// 返回中间件函数
	return func(c *gin.Context) {
		limiter := getLimiter(cfg.KeyFunc(c), cfg)

		// 检查是否允许请求
		if !limiter.Allow() {
			response.FailWithMessage(c, code.ErrTooManyRequests, "请求频率过高，请稍后再试", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

// IPRateLimiter 按客户端IP限流
func IPRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:  rate,
		Burst: burst,
		KeyFunc: func(c *gin.Context) string {
			return "ip:" + c.ClientIP()
		},
	})
}

// PathRateLimiter 按请求路径限流
func PathRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:  rate,
		Burst: burst,
		KeyFunc: func(c *gin.Context) string {
			return "path:" + c.Request.URL.Path
		},
	})
}

// DeviceRateLimiter 按设备编号限流，用于无需认证的设备侧端点。
// 查询参数里没有设备编号时尝试从JSON请求体中取，都取不到再退回按IP限流。
func DeviceRateLimiter(rate float64, burst int) gin.HandlerFunc {
	return RateLimiter(RateLimiterConfig{
		Rate:  rate,
		Burst: burst,
		KeyFunc: func(c *gin.Context) string {
			if deviceID := c.Query("device_id"); deviceID != "" {
				return "device:" + deviceID
			}
			if deviceID := peekBodyDeviceID(c); deviceID != "" {
				return "device:" + deviceID
			}
			return "ip:" + c.ClientIP()
		},
	})
}

// peekBodyDeviceID 从JSON请求体中读取设备编号，读完后还原请求体供后续绑定使用
func peekBodyDeviceID(c *gin.Context) string {
	if c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var payload struct {
		Device   string `json:"device"`
		DeviceID string `json:"device_id"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Device != "" {
		return payload.Device
	}
	return payload.DeviceID
}
