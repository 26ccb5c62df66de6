package dashboard

import "context"

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetStats returns employees/present/late/absent for the requested day
	GetStats(ctx context.Context, req StatsRequest) (StatsResponse, error)
}
