package worker

import (
	"context"
	"sync"

	"github.com/labstack/gommon/log"
)

// Task 為背景工作；ctx 在 Stop 時取消
type Task func(ctx context.Context) error

// Pool 固定數量 worker 的工作池
type Pool interface {
	// Submit 在池已停止時回傳 false
	Submit(name string, t Task) bool
	Stop()
}

var logger = log.New("worker")

type job struct {
	name string
	task Task
}

// NewPool 建立 n 個 worker，n<=0 時使用 1
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &pool{jobs: make(chan job), ctx: ctx, cancel: cancel}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			defer p.wg.Done()
			for j := range p.jobs {
				p.run(j)
			}
		}()
	}
	return p
}

type pool struct {
	jobs   chan job
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool
}

func (p *pool) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("task %s panic: %v", j.name, r)
		}
	}()
	if j.task == nil {
		return
	}
	if err := j.task(p.ctx); err != nil {
		logger.Errorf("task %s: %v", j.name, err)
	}
}

func (p *pool) Submit(name string, t Task) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.jobs <- job{name: name, task: t}
	return true
}

// Stop 不再接受新工作，取消 ctx 並等待執行中的工作結束
func (p *pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.cancel()
	p.wg.Wait()
}
