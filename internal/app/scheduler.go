package app

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Purger удаляет записи исключений с прошедшими датами
type Purger interface {
	PurgeExpiredNow(ctx context.Context) int
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	purger   Purger
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	started  atomic.Bool
	done     chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(purger Purger, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		purger:   purger,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	if !s.started.CompareAndSwap(false, true) {
		return
	}
	s.logger.Info("Starting background scheduler", zap.Duration("purge_interval", s.interval))

	go s.runPurgeTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт завершения текущего прохода
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	if s.started.Load() {
		<-s.done
	}
}

// runPurgeTask периодически очищает просроченные исключения
func (s *Scheduler) runPurgeTask(ctx context.Context) {
	defer close(s.done)

	// Первый запуск сразу при старте
	s.purge(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.purge(ctx)
		case <-s.stopChan:
			s.logger.Info("Purge task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Purge task cancelled")
			return
		}
	}
}

func (s *Scheduler) purge(ctx context.Context) {
	purged := s.purger.PurgeExpiredNow(ctx)
	s.logger.Debug("Purge pass completed", zap.Int("purged", purged))
}
