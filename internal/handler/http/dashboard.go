package http

import (
	"net/http"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/dashboard"
	"github.com/kennar-hris/kennar-backend-go/internal/handler/http/response"
)

type DashboardHandler interface {
	// GetStats returns employees/present/late/absent for a day
	GetStats(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.DashboardService
}

func NewDashboardHandler(dashboardService dashboard.DashboardService) DashboardHandler {
	return &dashboardHandlerImpl{dashboardService: dashboardService}
}

// GetStats handles GET /dashboard-stats
func (h *dashboardHandlerImpl) GetStats(w http.ResponseWriter, r *http.Request) {
	req := dashboard.StatsRequest{
		Date: r.URL.Query().Get("date"), // format: YYYY-MM-DD, default: today
	}

	result, err := h.dashboardService.GetStats(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.OK(w, result)
}
