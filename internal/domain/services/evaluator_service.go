package services

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"smartlight-http-service/internal/domain/models"
	"smartlight-http-service/internal/infrastructure/config"
	Logger "smartlight-http-service/pkg/logger"
)

// InterfaceEvaluatorService 定义调度执行器接口
type InterfaceEvaluatorService interface {
	Start()
	Stop()
	IsRunning() bool
}

// EvaluatorService 周期性地把墙钟时间与调度窗口比对，
// 只在窗口边沿（进入/离开）下发指令，窗口内部或外部的普通tick不产生任何写入，
// 手动指令因此可以在两次边沿之间一直生效而不被反复覆盖。
//
// 窗口定义：on_time <= now < off_time；off_time 小于 on_time 表示窗口跨午夜，
// 此时 now >= on_time 或 now < off_time 都算在窗口内。
//
// 重启恢复：首次见到某条调度时，以当前设备状态推导上一次的窗口成员关系
// （设备为ON且当前在窗口内视为INSIDE，否则视为OUTSIDE），
// 重启后最多产生一次冗余指令写入，不会产生重复的边沿序列。
type EvaluatorService struct {
	Schedules InterfaceScheduleService
	Commands  InterfaceCommandService

	interval   time.Duration
	location   *time.Location
	tickBudget time.Duration

	// 每条调度上一tick的窗口成员关系
	membership map[uint]bool
	mu         sync.Mutex

	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	runMu   sync.Mutex
}

// NewEvaluatorService 创建一个新的调度执行器
func NewEvaluatorService(cfg *config.Config, scheduleService InterfaceScheduleService, commandService InterfaceCommandService) *EvaluatorService {
	// 参考时区固定，默认UTC，加载失败时退回UTC
	loc, err := time.LoadLocation(cfg.ScheduleTimezone)
	if err != nil {
		Logger.Warning("无法加载调度时区 %s，退回UTC: %v", cfg.ScheduleTimezone, err)
		loc = time.UTC
	}

	interval := time.Duration(cfg.EvaluatorIntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 60 * time.Second
	}

	return &EvaluatorService{
		Schedules:  scheduleService,
		Commands:   commandService,
		interval:   interval,
		location:   loc,
		tickBudget: interval * 9 / 10, // 单次tick的软时间预算，保证不与下一tick重叠
		membership: make(map[uint]bool),
	}
}

// Start 启动后台tick循环。tick串行执行，不会出现重叠。
func (s *EvaluatorService) Start() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if s.running {
		return
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})

	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		Logger.Info("调度执行器已启动: 间隔=%s 时区=%s", s.interval, s.location)
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.runTick(time.Now().In(s.location))
			}
		}
	}()
}

// Stop 停止tick循环并等待当前tick结束
func (s *EvaluatorService) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	if !s.running {
		return
	}
	close(s.stopCh)
	<-s.doneCh
	s.running = false
	Logger.Info("调度执行器已停止")
}

// IsRunning 返回执行器是否在运行
func (s *EvaluatorService) IsRunning() bool {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return s.running
}

// runTick 执行一轮调度评估。单条调度的失败只记日志，不影响同一轮的其他调度。
func (s *EvaluatorService) runTick(now time.Time) {
	started := time.Now()

	schedules, err := s.Schedules.GetActiveSchedules()
	if err != nil {
		Logger.Error("调度评估失败，无法加载调度列表: %v", err)
		return
	}

	seen := make(map[uint]bool, len(schedules))
	for i := range schedules {
		sched := &schedules[i]
		seen[sched.ID] = true

		if time.Since(started) > s.tickBudget {
			Logger.Warning("调度评估超出时间预算，本轮剩余 %d 条顺延到下一tick", len(schedules)-i)
			// 顺延的调度也要标记为在场，否则它们的成员状态会被当作
			// 已删除调度清理掉，下一tick被误判为首次见到
			for j := i; j < len(schedules); j++ {
				seen[schedules[j].ID] = true
			}
			break
		}

		s.evaluateSchedule(sched, now)
	}

	// 清理已删除或已消费调度的成员状态
	s.mu.Lock()
	for id := range s.membership {
		if !seen[id] {
			delete(s.membership, id)
		}
	}
	s.mu.Unlock()
}

// evaluateSchedule 评估单条调度的窗口边沿
func (s *EvaluatorService) evaluateSchedule(sched *models.Schedule, now time.Time) {
	inside, ok := inWindow(sched.OnTime, sched.OffTime, now)
	if !ok {
		Logger.Warning("调度 %d 的时间格式非法: on=%s off=%s", sched.ID, sched.OnTime, sched.OffTime)
		return
	}

	s.mu.Lock()
	prev, known := s.membership[sched.ID]
	if !known {
		// 首次见到该调度：用设备当前状态推导，推不出则当作OUTSIDE
		prev = false
		if sched.Device != nil && sched.Device.Status == models.DeviceStatusOn && inside {
			prev = true
		}
	}
	s.membership[sched.ID] = inside
	s.mu.Unlock()

	if inside == prev {
		// 无边沿，不写入
		return
	}

	deviceID := ""
	if sched.Device != nil {
		deviceID = sched.Device.DeviceID
	}
	if deviceID == "" {
		Logger.Warning("调度 %d 没有关联设备，跳过", sched.ID)
		return
	}

	command := string(models.DeviceStatusOff)
	if inside {
		command = string(models.DeviceStatusOn)
	}

	if err := s.Commands.SetCommand(deviceID, command, 0, models.SourceSchedule); err != nil {
		Logger.Error("调度 %d 下发指令 %s 失败 device=%s: %v", sched.ID, command, deviceID, err)
		// 写入失败时回滚成员状态，下一tick重试这个边沿
		s.mu.Lock()
		s.membership[sched.ID] = prev
		s.mu.Unlock()
		return
	}

	Logger.Info("调度 %d 触发 %s device=%s (窗口 %s-%s)", sched.ID, command, deviceID, sched.OnTime, sched.OffTime)

	// 一次性调度在OFF沿之后消费掉
	if !inside && !sched.RepeatDaily {
		if err := s.Schedules.MarkConsumed(sched.ID); err != nil {
			Logger.Error("标记调度 %d 已消费失败: %v", sched.ID, err)
		}
	}
}

// inWindow 判断now是否落在 [on, off) 窗口内。off早于on表示窗口跨午夜。
// on与off相等视为空窗口。
func inWindow(onTime, offTime string, now time.Time) (inside bool, ok bool) {
	on, err1 := parseClockMinutes(onTime)
	off, err2 := parseClockMinutes(offTime)
	if err1 != nil || err2 != nil {
		return false, false
	}

	nowMin := now.Hour()*60 + now.Minute()

	switch {
	case on == off:
		return false, true
	case on < off:
		return nowMin >= on && nowMin < off, true
	default:
		// 跨午夜窗口
		return nowMin >= on || nowMin < off, true
	}
}

// parseClockMinutes 把 "HH:MM" 解析为当日分钟数
func parseClockMinutes(value string) (int, error) {
	if !clockTimePattern.MatchString(value) {
		return 0, ErrInvalidClockTime
	}
	parts := strings.SplitN(value, ":", 2)
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return hour*60 + minute, nil
}
