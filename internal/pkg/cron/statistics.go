package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/dateutil"
	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/policy"
)

// StatisticsJobs logs the previous day's organization statistics as a digest.
type StatisticsJobs struct {
	dashboardService dashboard.DashboardService
	clock            policy.Clock
	loc              *time.Location
	logger           *slog.Logger
}

func NewStatisticsJobs(dashboardService dashboard.DashboardService, clock policy.Clock, loc *time.Location, logger *slog.Logger) *StatisticsJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &StatisticsJobs{
		dashboardService: dashboardService,
		clock:            clock,
		loc:              loc,
		logger:           logger,
	}
}

func (j *StatisticsJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(Job{
		Name:     "daily_statistics_digest",
		Interval: interval,
		Fn:       j.LogPreviousDay,
	})
}

// LogPreviousDay reconciles yesterday, in the policy's zone, and logs the counts.
func (j *StatisticsJobs) LogPreviousDay(ctx context.Context) error {
	yesterday := j.clock.Now().In(j.loc).AddDate(0, 0, -1)
	date := yesterday.Format(dateutil.DateLayout)

	stats, err := j.dashboardService.GetDailyStatistics(ctx, date)
	if err != nil {
		return fmt.Errorf("daily statistics for %s: %w", date, err)
	}

	j.logger.InfoContext(ctx, "daily attendance digest",
		slog.String("date", stats.Date),
		slog.Int("total", stats.Total),
		slog.Int("present", stats.Present),
		slog.Int("late", stats.Late),
		slog.Int("absent", stats.Absent),
		slog.Int("on_leave", stats.OnLeave),
		slog.Int("not_applied", stats.NotApplied),
	)
	return nil
}
