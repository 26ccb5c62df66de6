package postgresql

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/kennar-hris/kennar-backend-go/internal/pkg/database"
)

//go:embed schema.sql
var Schema string

// EnsureSchema creates the tables when they do not exist yet
func EnsureSchema(ctx context.Context, db *database.DB) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
