package dashboard

import (
	"context"
	"time"
)

// DashboardRepository defines the per-day counting queries. Each method is a
// single independent query; callers must tolerate skew between them.
type DashboardRepository interface {
	// CountActiveEmployees counts roster entries with status Active
	CountActiveEmployees(ctx context.Context) (int64, error)

	// CountPresent counts distinct employees with a Present or Late record on date
	CountPresent(ctx context.Context, date time.Time) (int64, error)

	// CountLate counts distinct employees with a Late record on date
	CountLate(ctx context.Context, date time.Time) (int64, error)

	// CountAbsent counts Active employees without any record on date
	CountAbsent(ctx context.Context, date time.Time) (int64, error)
}
