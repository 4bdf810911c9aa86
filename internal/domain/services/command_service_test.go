package services

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetCommand_InvalidCommand(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	err := svc.SetCommand("SL-0001", "BLINK", 0, "")
	assert.ErrorIs(t, err, ErrInvalidCommand)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCommand_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	// 状态更新、指令覆盖写与活动流水在同一事务内
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(deviceRows(mock, 1, "SL-0001", "OFF"))
	mock.ExpectExec("UPDATE `devices`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `device_commands`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `device_activities`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.SetCommand("SL-0001", "ON", 120, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCommand_DeviceNotFound(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_id"}))
	mock.ExpectRollback()

	err := svc.SetCommand("SL-MISSING", "ON", 0, "")
	assert.ErrorIs(t, err, ErrDeviceNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommand_Success(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(deviceRows(mock, 1, "SL-0001", "ON"))
	mock.ExpectQuery("SELECT (.+) FROM `device_commands`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_ref_id", "command", "duration"}).
			AddRow(1, 1, "ON", 120))

	cmd, err := svc.GetCommand("SL-0001")
	require.NoError(t, err)
	assert.Equal(t, "ON", cmd.Command)
	assert.Equal(t, 120, cmd.Duration)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetCommand_NoCommandYet(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(deviceRows(mock, 1, "SL-0001", "ON"))
	mock.ExpectQuery("SELECT (.+) FROM `device_commands`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "device_ref_id", "command", "duration"}))

	_, err := svc.GetCommand("SL-0001")
	assert.ErrorIs(t, err, ErrCommandNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSetCommand_NegativeDurationClamped(t *testing.T) {
	db, mock, cleanup := setupMockDB(t)
	defer cleanup()

	svc := NewCommandService(db, testConfig(), nil)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT (.+) FROM `devices`").
		WillReturnRows(deviceRows(mock, 1, "SL-0001", "ON"))
	mock.ExpectExec("UPDATE `devices`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `device_commands`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `device_activities`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.SetCommand("SL-0001", "OFF", -5, "")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
