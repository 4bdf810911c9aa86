package services

import (
	"testing"

	"smartlight-http-service/internal/infrastructure/config"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupMockDB 构造一个基于sqlmock的GORM连接，用于服务层测试
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
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

	cleanup := func() { _ = sqlDB.Close() }
	return gdb, mock, cleanup
}

func testConfig() *config.Config {
	return &config.Config{
		LowPowerThreshold:        10.0,
		EvaluatorIntervalSeconds: 60,
		ScheduleTimezone:         "UTC",
		JWTSecretKey:             "test-secret-key",
	}
}

func deviceRows(mock sqlmock.Sqlmock, id uint, deviceID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "device_id", "location", "total_lights", "estimated_load", "status"}).
		AddRow(id, deviceID, "", 0, 0.0, status)
}
