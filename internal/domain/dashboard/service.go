package dashboard

import "context"

// DashboardService defines the interface for organization-wide statistics
type DashboardService interface {
	// GetDailyStatistics reconciles active employees against one day's attendance and
	// approved leave. An empty date means today in the attendance policy's zone.
	GetDailyStatistics(ctx context.Context, date string) (DailyStatisticsResponse, error)
}
