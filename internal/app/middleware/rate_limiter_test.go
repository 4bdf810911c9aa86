package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucket_BurstThenBlocked(t *testing.T) {
	tb := NewTokenBucket(1, 3)

	// 突发容量内的请求全部放行
	for i := 0; i < 3; i++ {
		assert.True(t, tb.Allow(), "第%d个请求应放行", i+1)
	}

	// 桶空之后立刻拒绝
	assert.False(t, tb.Allow())
}

func TestTokenBucket_RefillsOverTime(t *testing.T) {
	tb := NewTokenBucket(100, 1)

	assert.True(t, tb.Allow())
	assert.False(t, tb.Allow())

	// 100/s的速率下20ms足够补充一个令牌
	time.Sleep(20 * time.Millisecond)
	assert.True(t, tb.Allow())
}

func TestDeviceRateLimiter_KeyedByDeviceID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/report", DeviceRateLimiter(0.001, 1), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	do := func(deviceID string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/report?device_id="+deviceID, nil)
		r.ServeHTTP(w, req)
		return w.Code
	}

	// 同一设备第二个请求被限流
	assert.Equal(t, http.StatusOK, do("SL-RL-A"))
	assert.Equal(t, http.StatusTooManyRequests, do("SL-RL-A"))

	// 不同设备互不影响
	assert.Equal(t, http.StatusOK, do("SL-RL-B"))
}

func TestDeviceRateLimiter_KeyedByBodyDevice(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.POST("/report", DeviceRateLimiter(0.001, 1), func(c *gin.Context) {
		// 中间件读过请求体之后，处理函数必须仍能读到完整内容
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusInternalServerError, "read body failed")
			return
		}
		c.String(http.StatusOK, string(body))
	})

	do := func(payload string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/report", strings.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	// 上报体里携带设备编号，同一设备第二个请求被限流
	w := do(`{"device":"SL-RL-C","voltage":220.1}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `{"device":"SL-RL-C","voltage":220.1}`, w.Body.String())
	assert.Equal(t, http.StatusTooManyRequests, do(`{"device":"SL-RL-C","voltage":219.8}`).Code)

	// 不同设备走独立的令牌桶
	assert.Equal(t, http.StatusOK, do(`{"device":"SL-RL-D","voltage":220.0}`).Code)
}
