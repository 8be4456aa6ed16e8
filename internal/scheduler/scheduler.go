package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"lirik/internal/logger"
	"lirik/internal/service"
)

// Scheduler refreshes the trending feeds in the background.
type Scheduler struct {
	discovery  service.DiscoveryService
	interval   time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current refresh operation
	mu         sync.Mutex         // protects cancelFunc
}

func New(discovery service.DiscoveryService, interval time.Duration) *Scheduler {
	return &Scheduler{
		discovery: discovery,
		interval:  interval,
		stopCh:    make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok", "interval_ms", s.interval.Milliseconds())
}

func (s *Scheduler) Stop() {
	// Cancel any ongoing refresh operation first
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.refresh()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.refresh()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) refresh() {
	// Use the same timeout as the refresh interval
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	// Store cancel function so Stop() can cancel ongoing refresh
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	if err := s.discovery.Refresh(ctx); err != nil {
		if errors.Is(err, service.ErrAlreadyRefreshing) {
			return
		}
		if ctx.Err() != nil {
			logger.Warn("scheduled refresh cancelled", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "cancelled")
			return
		}
		logger.Error("scheduled refresh failed", "module", "scheduler", "action", "refresh", "resource", "feed", "result", "failed", "error", err)
	}
}
