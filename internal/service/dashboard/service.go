package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/attendance"
	"github.com/kennar-hris/kennar-backend-go/internal/domain/dashboard"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	utcOffsetHours int
	now            func() time.Time
}

func NewDashboardService(repo dashboard.DashboardRepository, utcOffsetHours int) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		utcOffsetHours:      utcOffsetHours,
		now:                 time.Now,
	}
}

// resolveDate parses YYYY-MM-DD, defaults to today at the configured offset
func (s *DashboardServiceImpl) resolveDate(date string) (time.Time, error) {
	if date == "" {
		date = attendance.LocalDate(s.now(), s.utcOffsetHours)
	}
	return time.Parse("2006-01-02", date)
}

// GetStats runs the four counts in parallel. Each is its own query, so under
// concurrent writes the numbers may be taken from slightly different moments.
func (s *DashboardServiceImpl) GetStats(ctx context.Context, req dashboard.StatsRequest) (dashboard.StatsResponse, error) {
	if err := req.Validate(); err != nil {
		return dashboard.StatsResponse{}, err
	}

	day, err := s.resolveDate(req.Date)
	if err != nil {
		return dashboard.StatsResponse{}, err
	}

	var stats dashboard.StatsResponse

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		stats.Employees = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountPresent(gCtx, day)
		stats.Present = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountLate(gCtx, day)
		stats.Late = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAbsent(gCtx, day)
		stats.Absent = n
		return err
	})

	if err := g.Wait(); err != nil {
		metrics.DashboardStats("error")
		slog.Error("failed to compute dashboard stats", "date", day.Format("2006-01-02"), "error", err)
		return dashboard.StatsResponse{}, err
	}

	metrics.DashboardStats("ok")
	return stats, nil
}
