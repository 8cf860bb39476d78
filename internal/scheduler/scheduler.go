package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"forgekit/internal/pkg/config"
	"forgekit/internal/pkg/logger"
)

// jobTimeout 单次观察的超时时间
const jobTimeout = time.Minute

// Observer 读取观察任务当前值, 由 service.ForgeService 实现
type Observer interface {
	Observe(ctx context.Context, job config.WatchJob) (string, error)
}

// Scheduler 调度器
type Scheduler struct {
	cron          *cron.Cron
	logger        *zap.Logger
	observer      Observer
	jobs          map[string]config.WatchJob
	cronSchedules map[string]cron.EntryID // 存储任务ID，便于管理

	mu   sync.Mutex
	last map[string]string
}

// NewScheduler 创建调度器
func NewScheduler(observer Observer, logger *zap.Logger, jobs []config.WatchJob) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 创建 cron 实例（带秒级支持）
	opts := []cron.Option{cron.WithSeconds()}
	if l := cronLogger(); l != nil {
		opts = append(opts, cron.WithLogger(l))
	}

	s := &Scheduler{
		cron:          cron.New(opts...),
		logger:        logger,
		observer:      observer,
		jobs:          make(map[string]config.WatchJob, len(jobs)),
		cronSchedules: make(map[string]cron.EntryID, len(jobs)),
		last:          make(map[string]string, len(jobs)),
	}
	for _, job := range jobs {
		if _, ok := s.jobs[job.Name]; ok {
			return nil, fmt.Errorf("观察任务重名: %s", job.Name)
		}
		s.jobs[job.Name] = job
	}
	return s, nil
}

// cronLogger cron 内部日志写入全局日志输出
func cronLogger() cron.Logger {
	if w := logger.GetWriter(); w != nil {
		return cron.PrintfLogger(w)
	}
	return nil
}

// Start 注册所有观察任务并启动调度器
// cron 表达式格式: 秒 分 时 日 月 周
func (s *Scheduler) Start() error {
	log := s.logger.Sugar()

	log.Info("启动定时任务调度器...")

	for name, job := range s.jobs {
		entryID, err := s.cron.AddFunc(job.Cron, func() {
			if _, _, err := s.Trigger(name); err != nil {
				log.Errorf("观察任务 %s 执行失败: %v", name, err)
			}
		})
		if err != nil {
			log.Errorf("注册观察任务 %s: %v 失败: %v", name, job.Cron, err)
			return fmt.Errorf("注册观察任务 %s 失败: %w", name, err)
		}
		s.cronSchedules[name] = entryID
		log.Infof("观察任务已注册: %s cron=%s entry_id=%d", name, job.Cron, entryID)
	}

	s.cron.Start()
	log.Info("定时任务调度器启动成功")

	return nil
}

// Stop 停止调度器
func (s *Scheduler) Stop() {
	s.logger.Info("正在停止定时任务调度器...")

	// 停止 cron（等待正在执行的任务完成）
	ctx := s.cron.Stop()
	<-ctx.Done()

	s.logger.Info("定时任务调度器已停止")
}

// Trigger 立即执行一次观察任务, 返回当前值以及是否与上次不同
// 首次观察只记录, 不算变化
func (s *Scheduler) Trigger(name string) (value string, changed bool, err error) {
	job, ok := s.jobs[name]
	if !ok {
		return "", false, fmt.Errorf("观察任务不存在: %s", name)
	}

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	value, err = s.observer.Observe(ctx, job)
	if err != nil {
		return "", false, err
	}

	s.mu.Lock()
	prev, seen := s.last[name]
	s.last[name] = value
	s.mu.Unlock()

	fields := []zap.Field{
		zap.String("job", name),
		zap.String("platform", job.Platform),
		zap.String("kind", job.Kind),
		zap.String("target", job.Target),
		zap.String("value", value),
	}
	switch {
	case !seen:
		s.logger.Debug("首次观察", fields...)
	case prev != value:
		changed = true
		s.logger.Info("观察值变化", append(fields, zap.String("previous", prev))...)
	}
	return value, changed, nil
}

// RunOnce 依次执行所有观察任务, 用于启动时建立初始值
func (s *Scheduler) RunOnce() {
	for name := range s.jobs {
		if _, _, err := s.Trigger(name); err != nil {
			s.logger.Warn("观察任务执行失败", zap.String("job", name), zap.Error(err))
		}
	}
}

// Last 获取任务最近一次观察值
func (s *Scheduler) Last(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.last[name]
	return v, ok
}
