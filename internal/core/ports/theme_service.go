package ports

import "context"

type ThemeService interface {
	GetTheme(ctx context.Context) (map[string]string, error)
	// UpdateTheme upserts each key in config. Keys are applied one at a
	// time; a failure mid-loop leaves earlier keys updated.
	UpdateTheme(ctx context.Context, config map[string]string) error
}
