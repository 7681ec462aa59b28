package scheduler

import (
	"context"
	"fmt"

	"mapper/internal/worker"

	"github.com/labstack/gommon/log"
	"github.com/robfig/cron/v3"
)

var logger = log.New("scheduler")

// Scheduler 依 cron 規則把工作丟進 worker pool，本身不執行工作
type Scheduler struct {
	cron *cron.Cron
	pool worker.Pool
}

func New(pool worker.Pool) *Scheduler {
	return &Scheduler{cron: cron.New(), pool: pool}
}

// Register 註冊排程；spec 為 cron 格式或 @every 描述
func (s *Scheduler) Register(spec, name string, t worker.Task) error {
	_, err := s.cron.AddFunc(spec, func() {
		if !s.pool.Submit(name, t) {
			logger.Warnf("pool stopped, skip %s", name)
		}
	})
	if err != nil {
		return fmt.Errorf("Register %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop 等待正在送出的排程結束
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// SessionSweeper 由 service.Identity 實作
type SessionSweeper interface {
	SweepExpiredSessions(ctx context.Context) (int64, error)
}

// SweepSessions 清除過期 session 的排程工作
func SweepSessions(s SessionSweeper) worker.Task {
	return func(ctx context.Context) error {
		n, err := s.SweepExpiredSessions(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			logger.Infof("removed %d expired sessions", n)
		}
		return nil
	}
}
