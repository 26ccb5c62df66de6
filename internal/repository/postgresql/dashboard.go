package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/kennar-hris/kennar-backend-go/internal/domain/dashboard"
	"github.com/kennar-hris/kennar-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountActiveEmployees implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'Active'`).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return total, nil
}

// CountPresent implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountPresent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM attendance
		WHERE date = $1 AND status IN ('Present', 'Late')
	`

	var present int64
	if err := q.QueryRow(ctx, query, date).Scan(&present); err != nil {
		return 0, fmt.Errorf("failed to count present employees: %w", err)
	}
	return present, nil
}

// CountLate implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountLate(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(DISTINCT employee_id)
		FROM attendance
		WHERE date = $1 AND status = 'Late'
	`

	var late int64
	if err := q.QueryRow(ctx, query, date).Scan(&late); err != nil {
		return 0, fmt.Errorf("failed to count late employees: %w", err)
	}
	return late, nil
}

// CountAbsent implements dashboard.DashboardRepository.
func (r *dashboardRepositoryImpl) CountAbsent(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM employees e
		WHERE e.status = 'Active'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.employee_id = e.employee_id AND a.date = $1
		  )
	`

	var absent int64
	if err := q.QueryRow(ctx, query, date).Scan(&absent); err != nil {
		return 0, fmt.Errorf("failed to count absent employees: %w", err)
	}
	return absent, nil
}
