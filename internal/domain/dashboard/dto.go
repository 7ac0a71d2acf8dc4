package dashboard

// ========== DAILY STATISTICS ==========

// DailyStatisticsResponse counts one calendar day across the organization.
// Present includes late check-ins; Late is reported separately as a subset.
type DailyStatisticsResponse struct {
	Date       string `json:"date"` // Format: "YYYY-MM-DD"
	Total      int    `json:"total"`
	Present    int    `json:"present"`
	Late       int    `json:"late"`
	Absent     int    `json:"absent"`
	OnLeave    int    `json:"on_leave"`
	NotApplied int    `json:"not_applied"`

	PresentPercent float64 `json:"present_percent"`
	AbsentPercent  float64 `json:"absent_percent"`
	OnLeavePercent float64 `json:"on_leave_percent"`
}
