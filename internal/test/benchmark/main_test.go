package benchmark

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"
)

// 测试配置
type TestConfig struct {
	BaseURL     string `json:"base_url"`
	AdminUser   string `json:"admin_user"`
	AdminPass   string `json:"admin_pass"`
	DeviceID    string `json:"device_id"`
	Concurrency int    `json:"concurrency"`
	Requests    int    `json:"requests"`
}

// 登录请求
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// 登录响应
type LoginResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Token string `json:"token"`
	} `json:"data"`
}

var (
	config          TestConfig
	authToken       string
	serverAvailable bool
)

// TestMain 测试主函数
func TestMain(m *testing.M) {
	// 加载测试配置
	if err := loadConfig(); err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 获取认证令牌；服务不可用时跳过基准测试而不是失败
	if err := getAuthToken(); err != nil {
		fmt.Printf("服务不可用，跳过基准测试: %v\n", err)
		serverAvailable = false
	} else {
		serverAvailable = true
	}

	// 运行测试
	os.Exit(m.Run())
}

// loadConfig 加载测试配置
func loadConfig() error {
	// 默认配置
	config = TestConfig{
		BaseURL:     "http://localhost:20080/api",
		AdminUser:   "admin",
		AdminPass:   "admin123",
		DeviceID:    "SL-0001",
		Concurrency: 10,
		Requests:    100,
	}

	// 尝试从文件加载配置
	data, err := os.ReadFile("test_config.json")
	if err == nil {
		if err := json.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("解析配置文件失败: %v", err)
		}
	}

	return nil
}

// getAuthToken 获取认证令牌
func getAuthToken() error {
	loginReq := LoginRequest{
		Username: config.AdminUser,
		Password: config.AdminPass,
	}

	body, err := json.Marshal(loginReq)
	if err != nil {
		return err
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(config.BaseURL+"/auth/login", "application/json", bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var loginResp LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return fmt.Errorf("解析登录响应失败: %v", err)
	}
	if loginResp.Data.Token == "" {
		return fmt.Errorf("登录失败: %s", loginResp.Message)
	}

	authToken = loginResp.Data.Token
	return nil
}

func requireServer(t *testing.T) {
	if !serverAvailable {
		t.Skip("服务不可用，跳过基准测试")
	}
}

// TestDeviceList 测试设备列表接口
func TestDeviceList(t *testing.T) {
	requireServer(t)
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/devices")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("设备列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestDeviceDetail 测试设备详情接口
func TestDeviceDetail(t *testing.T) {
	requireServer(t)
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/devices/1") // 假设ID为1的设备存在
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("设备详情接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestScheduleList 测试调度列表接口
func TestScheduleList(t *testing.T) {
	requireServer(t)
	benchmark := NewAPIBenchmark(config.BaseURL, config.Concurrency, config.Requests, authToken)
	result := benchmark.RunGET("/schedules")
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("调度列表接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestReportData 测试设备数据上报接口
func TestReportData(t *testing.T) {
	requireServer(t)
	// 上报接口有设备级限流，降低并发避免429干扰结果
	benchmark := NewAPIBenchmark(config.BaseURL, 1, 5, "")

	reportRequest := map[string]interface{}{
		"device":  config.DeviceID,
		"voltage": 220.5,
		"current": 1.2,
		"power":   264.6,
		"energy":  18.4,
		"status":  "ON",
	}

	result := benchmark.RunPOST("/device/report", reportRequest)
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("数据上报接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}

// TestGetCommand 测试设备命令轮询接口
func TestGetCommand(t *testing.T) {
	requireServer(t)
	benchmark := NewAPIBenchmark(config.BaseURL, 1, 5, "")
	result := benchmark.RunGET("/device/command?device_id=" + config.DeviceID)
	result.PrintResult()

	// 验证结果
	if result.FailureCount > 0 {
		t.Errorf("命令轮询接口测试失败: 成功率 %.2f%%", float64(result.SuccessCount)/float64(result.TotalRequests)*100)
	}
}
