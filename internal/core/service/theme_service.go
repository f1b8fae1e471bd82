package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumapanel/admin-api/internal/core/domain"
	"github.com/lumapanel/admin-api/internal/core/ports"
)

// ThemeService reads and updates the globally shared theme configuration.
// Reads are public; writes pass the admin gate before reaching this service.
type ThemeService struct {
	repo ports.ThemeRepository
}

func NewThemeService(repo ports.ThemeRepository) *ThemeService {
	return &ThemeService{repo: repo}
}

func (s *ThemeService) GetTheme(ctx context.Context) (map[string]string, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	config := make(map[string]string, len(entries))
	for _, e := range entries {
		config[e.Key] = e.Value
	}
	return config, nil
}

// UpdateTheme upserts each key in turn. The loop is not transactional: a
// failure part-way leaves the keys already written in place.
func (s *ThemeService) UpdateTheme(ctx context.Context, config map[string]string) error {
	for key, value := range config {
		if strings.TrimSpace(key) == "" {
			return domain.ErrValidation
		}
		if err := s.repo.Upsert(ctx, key, value); err != nil {
			return fmt.Errorf("upsert theme key %q: %w", key, err)
		}
	}
	return nil
}
