package services

import (
	"errors"
	"testing"
	"time"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScheduleService 内存调度源，供执行器测试使用
type fakeScheduleService struct {
	schedules []models.Schedule
	loadErr   error
	consumed  []uint
}

func (f *fakeScheduleService) GetAllSchedules() ([]models.Schedule, error) {
	return f.schedules, f.loadErr
}

func (f *fakeScheduleService) GetActiveSchedules() ([]models.Schedule, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	var active []models.Schedule
	for _, s := range f.schedules {
		if !s.Consumed {
			active = append(active, s)
		}
	}
	return active, nil
}

func (f *fakeScheduleService) CreateSchedule(deviceID string, onTime, offTime string, repeatDaily bool) (*models.Schedule, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeScheduleService) DeleteSchedule(id uint) error { return nil }

func (f *fakeScheduleService) MarkConsumed(id uint) error {
	f.consumed = append(f.consumed, id)
	for i := range f.schedules {
		if f.schedules[i].ID == id {
			f.schedules[i].Consumed = true
		}
	}
	return nil
}

type commandCall struct {
	DeviceID string
	Command  string
	Source   string
}

// fakeCommandService 记录每次下发的指令
type fakeCommandService struct {
	calls   []commandCall
	failFor map[string]error // 按设备编号注入失败
}

func (f *fakeCommandService) SetCommand(deviceID string, command string, duration int, source string) error {
	if err, ok := f.failFor[deviceID]; ok && err != nil {
		return err
	}
	f.calls = append(f.calls, commandCall{DeviceID: deviceID, Command: command, Source: source})
	return nil
}

func (f *fakeCommandService) GetCommand(deviceID string) (*models.DeviceCommand, error) {
	return nil, ErrCommandNotFound
}

func newTestEvaluator(schedules *fakeScheduleService, commands *fakeCommandService) *EvaluatorService {
	cfg := &config.Config{
		EvaluatorIntervalSeconds: 60,
		ScheduleTimezone:         "UTC",
	}
	return NewEvaluatorService(cfg, schedules, commands)
}

// clock 构造当天指定时刻的时间点
func clock(hour, minute int) time.Time {
	return time.Date(2026, 3, 15, hour, minute, 0, 0, time.UTC)
}

func offDevice(id string) *models.Device {
	return &models.Device{ID: 1, DeviceID: id, Status: models.DeviceStatusOff}
}

func TestInWindow(t *testing.T) {
	tests := []struct {
		name     string
		onTime   string
		offTime  string
		now      time.Time
		inside   bool
		parsedOK bool
	}{
		{"普通窗口内", "08:00", "18:00", clock(12, 0), true, true},
		{"普通窗口起点含", "08:00", "18:00", clock(8, 0), true, true},
		{"普通窗口终点不含", "08:00", "18:00", clock(18, 0), false, true},
		{"普通窗口外", "08:00", "18:00", clock(7, 59), false, true},
		{"跨午夜晚间", "22:00", "06:00", clock(23, 30), true, true},
		{"跨午夜凌晨", "22:00", "06:00", clock(5, 59), true, true},
		{"跨午夜终点不含", "22:00", "06:00", clock(6, 0), false, true},
		{"跨午夜白天", "22:00", "06:00", clock(12, 0), false, true},
		{"空窗口", "10:00", "10:00", clock(10, 0), false, true},
		{"非法格式", "25:00", "06:00", clock(12, 0), false, false},
		{"缺少前导零", "8:00", "18:00", clock(12, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inside, ok := inWindow(tt.onTime, tt.offTime, tt.now)
			assert.Equal(t, tt.parsedOK, ok)
			assert.Equal(t, tt.inside, inside)
		})
	}
}

func TestEvaluator_EdgeTriggersExactlyOnce(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: offDevice("SL-0001")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	// 窗口外的tick不产生任何写入
	ev.runTick(clock(7, 0))
	ev.runTick(clock(7, 30))
	assert.Empty(t, commands.calls)

	// 进入窗口的那一tick下发一次ON
	ev.runTick(clock(8, 0))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, commandCall{DeviceID: "SL-0001", Command: "ON", Source: models.SourceSchedule}, commands.calls[0])

	// 窗口内部的tick不再重复下发，手动指令因此不会被覆盖
	ev.runTick(clock(9, 0))
	ev.runTick(clock(15, 30))
	assert.Len(t, commands.calls, 1)

	// 离开窗口的那一tick下发一次OFF
	ev.runTick(clock(18, 0))
	require.Len(t, commands.calls, 2)
	assert.Equal(t, commandCall{DeviceID: "SL-0001", Command: "OFF", Source: models.SourceSchedule}, commands.calls[1])

	// 窗口外继续静默
	ev.runTick(clock(19, 0))
	assert.Len(t, commands.calls, 2)
}

func TestEvaluator_MidnightWrapWindow(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "22:00", OffTime: "06:00", RepeatDaily: true, Device: offDevice("SL-0002")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(21, 59))
	assert.Empty(t, commands.calls)

	ev.runTick(clock(22, 0))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, "ON", commands.calls[0].Command)

	// 跨过午夜依然在窗口内
	ev.runTick(clock(23, 59))
	ev.runTick(clock(0, 10))
	ev.runTick(clock(5, 59))
	assert.Len(t, commands.calls, 1)

	ev.runTick(clock(6, 0))
	require.Len(t, commands.calls, 2)
	assert.Equal(t, "OFF", commands.calls[1].Command)
}

func TestEvaluator_RestartSeedsFromDeviceStatus(t *testing.T) {
	// 设备已经是ON且当前在窗口内：重启后的首个tick不应再下发ON
	onDev := &models.Device{ID: 1, DeviceID: "SL-0003", Status: models.DeviceStatusOn}
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: onDev},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(12, 0))
	assert.Empty(t, commands.calls)

	// 之后的OFF沿照常触发
	ev.runTick(clock(18, 0))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, "OFF", commands.calls[0].Command)
}

func TestEvaluator_RestartInsideWindowDeviceOff(t *testing.T) {
	// 设备是OFF但当前在窗口内：视为错过了ON沿，首个tick补发一次ON
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: offDevice("SL-0004")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(12, 0))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, "ON", commands.calls[0].Command)
}

func TestEvaluator_OneShotConsumedAfterOffEdge(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 7, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: false, Device: offDevice("SL-0005")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(8, 0))
	assert.Empty(t, schedules.consumed)

	ev.runTick(clock(18, 0))
	require.Len(t, commands.calls, 2)
	assert.Equal(t, []uint{7}, schedules.consumed)

	// 已消费的调度不再参与评估
	ev.runTick(clock(8, 0))
	assert.Len(t, commands.calls, 2)
}

func TestEvaluator_CommandFailureRetriedNextTick(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: offDevice("SL-0006")},
	}}
	commands := &fakeCommandService{failFor: map[string]error{"SL-0006": errors.New("db down")}}
	ev := newTestEvaluator(schedules, commands)

	// 下发失败：成员状态回滚，边沿留到下一tick
	ev.runTick(clock(8, 0))
	assert.Empty(t, commands.calls)

	// 故障恢复后重试成功
	commands.failFor = nil
	ev.runTick(clock(8, 1))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, "ON", commands.calls[0].Command)

	// 只补发一次
	ev.runTick(clock(8, 2))
	assert.Len(t, commands.calls, 1)
}

func TestEvaluator_FailureIsolatedPerSchedule(t *testing.T) {
	devA := &models.Device{ID: 1, DeviceID: "SL-A", Status: models.DeviceStatusOff}
	devB := &models.Device{ID: 2, DeviceID: "SL-B", Status: models.DeviceStatusOff}
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: devA},
		{ID: 2, DeviceRefID: 2, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: devB},
	}}
	commands := &fakeCommandService{failFor: map[string]error{"SL-A": errors.New("db down")}}
	ev := newTestEvaluator(schedules, commands)

	// 第一条失败不影响第二条
	ev.runTick(clock(8, 0))
	require.Len(t, commands.calls, 1)
	assert.Equal(t, "SL-B", commands.calls[0].DeviceID)
}

func TestEvaluator_InvalidTimesSkipped(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "8:00", OffTime: "18:00", RepeatDaily: true, Device: offDevice("SL-0007")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(12, 0))
	assert.Empty(t, commands.calls)
}

func TestEvaluator_MembershipPrunedForRemovedSchedules(t *testing.T) {
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: offDevice("SL-0008")},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(8, 0))
	require.Len(t, commands.calls, 1)

	// 调度被删除后，其成员状态随之清理
	schedules.schedules = nil
	ev.runTick(clock(9, 0))

	ev.mu.Lock()
	_, exists := ev.membership[1]
	ev.mu.Unlock()
	assert.False(t, exists)
}

func TestEvaluator_TruncatedScanKeepsDeferredMembership(t *testing.T) {
	devA := &models.Device{ID: 1, DeviceID: "SL-A", Status: models.DeviceStatusOff}
	devB := &models.Device{ID: 2, DeviceID: "SL-B", Status: models.DeviceStatusOff}
	devC := &models.Device{ID: 3, DeviceID: "SL-C", Status: models.DeviceStatusOff}
	schedules := &fakeScheduleService{schedules: []models.Schedule{
		{ID: 1, DeviceRefID: 1, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: devA},
		{ID: 2, DeviceRefID: 2, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: devB},
		{ID: 3, DeviceRefID: 3, OnTime: "08:00", OffTime: "18:00", RepeatDaily: true, Device: devC},
	}}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	ev.runTick(clock(8, 0))
	require.Len(t, commands.calls, 3)

	// 某一tick超预算被截断：顺延调度的成员状态不能被误清理
	ev.tickBudget = 0
	ev.runTick(clock(9, 0))
	assert.Len(t, commands.calls, 3)

	// 恢复预算后窗口内部的tick保持静默，不得重放ON覆盖手动指令
	ev.tickBudget = time.Minute
	ev.runTick(clock(10, 0))
	assert.Len(t, commands.calls, 3)

	ev.mu.Lock()
	assert.True(t, ev.membership[2])
	assert.True(t, ev.membership[3])
	ev.mu.Unlock()
}

func TestEvaluator_StartStop(t *testing.T) {
	schedules := &fakeScheduleService{}
	commands := &fakeCommandService{}
	ev := newTestEvaluator(schedules, commands)

	assert.False(t, ev.IsRunning())
	ev.Start()
	assert.True(t, ev.IsRunning())
	// 重复Start是幂等的
	ev.Start()
	ev.Stop()
	assert.False(t, ev.IsRunning())
	// 重复Stop不会panic
	ev.Stop()
}
