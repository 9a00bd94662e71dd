// Package jobs runs the recurring background work: the overdue sweep,
// dashboard summary refresh and rent reminders.
package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog"

	"nyumbani/internal/models"
	"nyumbani/internal/notify"
	"nyumbani/internal/services"
)

type Scheduler struct {
	scheduler    gocron.Scheduler
	tenantSvc    services.TenantService
	dashboardSvc services.DashboardService
	notifier     notify.Notifier
	logger       zerolog.Logger
}

func NewScheduler(tenantSvc services.TenantService, dashboardSvc services.DashboardService,
	notifier notify.Notifier, logger zerolog.Logger) (*Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		scheduler:    scheduler,
		tenantSvc:    tenantSvc,
		dashboardSvc: dashboardSvc,
		notifier:     notifier,
		logger:       logger,
	}
	if err := s.registerJobs(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Scheduler) Start() {
	s.logger.Info().Msg("starting background job scheduler")
	s.scheduler.Start()
}

func (s *Scheduler) Stop() error {
	s.logger.Info().Msg("stopping background job scheduler")
	return s.scheduler.Shutdown()
}

func (s *Scheduler) registerJobs() error {
	// Overdue sweep: runs shortly after midnight so statuses are fresh
	// when the office opens.
	if _, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 15, 0))),
		gocron.NewTask(s.sweepOverdue),
		gocron.WithName("overdue-sweep"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	// Summary refresh keeps the dashboard cache warm.
	if _, err := s.scheduler.NewJob(
		gocron.DurationJob(5*time.Minute),
		gocron.NewTask(s.refreshSummary),
		gocron.WithName("summary-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	// Rent reminders go out each morning to tenants still pending.
	if _, err := s.scheduler.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(8, 0, 0))),
		gocron.NewTask(s.sendRentReminders),
		gocron.WithName("rent-reminders"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	); err != nil {
		return err
	}

	return nil
}

func (s *Scheduler) sweepOverdue() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	flipped, err := s.tenantSvc.MarkOverdueTenants(ctx, time.Now())
	if err != nil {
		s.logger.Error().Err(err).Msg("overdue sweep failed")
		return
	}
	s.logger.Info().Int("tenants", flipped).Msg("overdue sweep completed")
}

func (s *Scheduler) refreshSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := s.dashboardSvc.RefreshSummaryCache(ctx); err != nil {
		s.logger.Error().Err(err).Msg("summary refresh failed")
	}
}

func (s *Scheduler) sendRentReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	tenants, err := s.tenantSvc.List(ctx, false, 10000, 0)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load tenants for reminders")
		return
	}

	var sent int
	for _, tenant := range tenants {
		if tenant.Lease == nil || tenant.Lease.PaymentStatus == models.PaymentStatusPaid {
			continue
		}
		if tenant.Email == "" {
			continue
		}
		if err := s.notifier.SendRentReminder(ctx, tenant); err != nil {
			s.logger.Warn().Err(err).Str("tenant", tenant.Name).Msg("failed to send rent reminder")
			continue
		}
		sent++
	}
	s.logger.Info().Int("sent", sent).Msg("rent reminders dispatched")
}
