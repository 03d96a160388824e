// Package scheduler keeps the default city warm: it re-fetches the
// configured landing city every freshness window so the first lookup of
// a session answers from cache.
package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"weather-dashboard/internal/services/weather"
	"weather-dashboard/pkg/observe"
)

type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *weather.Service
	city      string
	interval  time.Duration
	l         *observe.Logger
}

func New(city string, interval time.Duration, service *weather.Service, l *observe.Logger) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		city:      city,
		interval:  interval,
		l:         l,
	}
}

// Start schedules the warm-refresh job and starts the underlying
// scheduler. The first run fires immediately so the cache is warm
// before the first request arrives.
func (s *Scheduler) Start() error {
	if s.city == "" {
		s.l.Info("no default city configured, warm refresh disabled")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).StartImmediately().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.service.GetWeatherData(ctx, s.city); err != nil {
			s.l.Warning("warm refresh failed", map[string]any{
				"city": s.city, "err": err.Error(),
			})
			return
		}
		s.l.Debug("warm refresh completed", map[string]any{"city": s.city})
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
