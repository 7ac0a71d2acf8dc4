package report

import "context"

// MonthlySummarizer aggregates one employee's month. It only reads.
type MonthlySummarizer interface {
	GetMonthlySummary(ctx context.Context, req MonthlySummaryRequest) (MonthlySummaryResponse, error)
}

// ReportService defines the interface for report generation
type ReportService interface {
	MonthlySummarizer

	// ExportMonthlyReport renders every active employee's summary as an XLSX workbook.
	ExportMonthlyReport(ctx context.Context, req MonthlyReportRequest) ([]byte, error)
}
