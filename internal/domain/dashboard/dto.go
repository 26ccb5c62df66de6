package dashboard

import "github.com/kennar-hris/kennar-backend-go/internal/pkg/validator"

// StatsRequest selects the calendar day; empty means today at the local offset
type StatsRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *StatsRequest) Validate() error {
	if r.Date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		}}
	}
	return nil
}

// StatsResponse holds the aggregate counts for one day
type StatsResponse struct {
	Employees int64 `json:"employees"`
	Present   int64 `json:"present"`
	Late      int64 `json:"late"`
	Absent    int64 `json:"absent"`
}
