package ports

import (
	"context"

	"github.com/lumapanel/admin-api/internal/core/domain"
)

// ThemeRepository persists the globally shared theme configuration.
type ThemeRepository interface {
	List(ctx context.Context) ([]domain.ThemeEntry, error)
	// Upsert inserts the key or overwrites its value and refreshes the
	// timestamp.
	Upsert(ctx context.Context, key, value string) error
}
