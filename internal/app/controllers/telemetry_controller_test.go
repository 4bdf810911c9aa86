package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"smartlight-http-service/internal/domain/services/container"
	"smartlight-http-service/internal/infrastructure/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, func()) {
	gin.SetMode(gin.TestMode)

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gdb, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cfg := &config.Config{
		LowPowerThreshold:        10.0,
		EvaluatorIntervalSeconds: 60,
		ScheduleTimezone:         "UTC",
		JWTSecretKey:             "test-secret-key",
	}
	serviceContainer := container.NewServiceContainer(gdb, cfg, nil)

	r := gin.New()
	r.POST("/api/device/report", HandleTelemetryFunc(serviceContainer, "reportData"))
	r.GET("/api/device/command", HandleTelemetryFunc(serviceContainer, "getCommand"))

	return r, mock, func() { _ = sqlDB.Close() }
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestReportDataEndpoint_MissingFields(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	// 缺少功率等必填字段，请求在绑定阶段被拒绝
	w, resp := doJSON(t, r, http.MethodPost, "/api/device/report", map[string]interface{}{
		"device": "SL-0001",
		"status": "ON",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotZero(t, resp.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportDataEndpoint_UnknownDevice(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id"}))

	w, resp := doJSON(t, r, http.MethodPost, "/api/device/report", map[string]interface{}{
		"device":  "SL-MISSING",
		"voltage": 220.0,
		"current": 1.0,
		"power":   220.0,
		"energy":  10.0,
		"status":  "ON",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, resp.Message, "SL-MISSING")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportDataEndpoint_ZeroValuesAccepted(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id", "location", "total_lights", "estimated_load", "status"}).
			AddRow(1, "SL-0001", "", 0, 0.0, "OFF"))
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `device_data`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	// 功率为0低于阈值，同事务写入低功率活动记录
	mock.ExpectExec("INSERT INTO `device_activities`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	// 熄灯状态下所有读数都是0，必须能通过必填校验
	w, resp := doJSON(t, r, http.MethodPost, "/api/device/report", map[string]interface{}{
		"device":  "SL-0001",
		"voltage": 0.0,
		"current": 0.0,
		"power":   0.0,
		"energy":  0.0,
		"status":  "OFF",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data received", resp.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommandEndpoint_MissingDeviceID(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	w, _ := doJSON(t, r, http.MethodGet, "/api/device/command", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommandEndpoint_NoCommandYet(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id", "location", "total_lights", "estimated_load", "status"}).
			AddRow(1, "SL-0001", "", 0, 0.0, "OFF"))
	mock.ExpectQuery("SELECT (.+) FROM `device_commands`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_ref_id", "command", "duration"}))

	w, _ := doJSON(t, r, http.MethodGet, "/api/device/command?device_id=SL-0001", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommandEndpoint_ReturnsLatestCommand(t *testing.T) {
	r, mock, cleanup := setupTestRouter(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id", "location", "total_lights", "estimated_load", "status"}).
			AddRow(1, "SL-0001", "", 0, 0.0, "ON"))
	mock.ExpectQuery("SELECT (.+) FROM `device_commands`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_ref_id", "command", "duration"}).
			AddRow(1, 1, "ON", 120))

	w, resp := doJSON(t, r, http.MethodGet, "/api/device/command?device_id=SL-0001", nil)

	require.Equal(t, http.StatusOK, w.Code)

	var cmd struct {
		Command  string `json:"command"`
		Duration int    `json:"duration"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &cmd))
	assert.Equal(t, "ON", cmd.Command)
	assert.Equal(t, 120, cmd.Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}
