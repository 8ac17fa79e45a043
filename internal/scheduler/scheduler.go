package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jonboulle/clockwork"

	"github.com/i474232898/open-meteo-tools/internal/observability"
	"github.com/i474232898/open-meteo-tools/internal/store"
	"github.com/i474232898/open-meteo-tools/internal/weather"
)

const locationTimeout = 30 * time.Second

// AlertSource evaluates forecast alerts for a coordinate.
type AlertSource interface {
	GetForecastAlerts(ctx context.Context, lat, lon float64, hours int, timezone string) (*weather.ForecastAlertReport, error)
}

// Recorder keeps the outcome of each watch run.
type Recorder interface {
	Save(rec store.WatchRecord)
}

// Scheduler periodically evaluates forecast alerts for the watched locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	alerts    AlertSource
	history   Recorder
	clock     clockwork.Clock
	locations []weather.Location
	interval  time.Duration
	hours     int
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// New creates a new Scheduler. history may be nil.
func New(locations []weather.Location, interval time.Duration, hours int, alerts AlertSource, history Recorder, clock clockwork.Clock, logger *slog.Logger, metrics *observability.Metrics) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		alerts:    alerts,
		history:   history,
		clock:     clock,
		locations: locations,
		interval:  interval,
		hours:     hours,
		logger:    logger,
		metrics:   metrics,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		s.logger.Info("alert watcher: no locations configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 15 * time.Minute
	}

	_, err := s.scheduler.Every(interval).SingletonMode().Do(func() {
		s.RunOnce(context.Background())
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	s.logger.Info("alert watcher started", "locations", len(s.locations), "interval", interval)
	return nil
}

// RunOnce evaluates every watched location concurrently and publishes the
// number of active alerts per location.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.logger.Debug("alert watcher: running")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(ctx, locationTimeout)
			defer cancel()

			report, err := s.alerts.GetForecastAlerts(ctx, loc.Latitude, loc.Longitude, s.hours, "auto")
			if err != nil {
				s.logger.Warn("alert watcher: evaluation failed", "location", loc.Key(), "error", err)
				return
			}

			s.metrics.WatchedActiveAlerts.WithLabelValues(loc.Key()).Set(float64(len(report.Alerts)))
			if s.history != nil {
				s.history.Save(store.WatchRecord{Location: loc, CheckedAt: s.clock.Now(), Alerts: report.Alerts})
			}
			for _, a := range report.Alerts {
				level := slog.LevelInfo
				if a.Severity == weather.SeverityWarning {
					level = slog.LevelWarn
				}
				s.logger.Log(ctx, level, "weather alert",
					"location", loc.Key(),
					"type", a.Type,
					"severity", a.Severity,
					"start", a.Start,
					"end", a.End,
				)
			}
		}()
	}
	wg.Wait()

	s.metrics.WatchRuns.Inc()
	s.logger.Debug("alert watcher: completed")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
