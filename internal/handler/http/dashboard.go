package http

import (
	"net/http"

	"github.com/cmlabs-hris/hris-payroll-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hris-payroll-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetDailyStatistics(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetDailyStatistics implements DashboardHandler. ?date=YYYY-MM-DD, default today.
func (h *dashboardHandlerImpl) GetDailyStatistics(w http.ResponseWriter, r *http.Request) {
	result, err := h.dashboardService.GetDailyStatistics(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
