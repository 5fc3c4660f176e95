package notes

import (
	"context"
	"fmt"

	"github.com/aretw0/jot/pkg/core"
)

// Theme returns the persisted theme preference.
func (s *Service) Theme() core.Theme {
	return core.ThemeFromDark(s.dark.Get())
}

// SetTheme persists the theme preference.
func (s *Service) SetTheme(ctx context.Context, theme core.Theme) error {
	if err := s.dark.Set(ctx, theme.Dark()); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	s.debug("theme set", "theme", theme.String())
	return nil
}

// ToggleTheme flips the theme preference and returns the new theme.
func (s *Service) ToggleTheme(ctx context.Context) (core.Theme, error) {
	var next bool
	err := s.dark.Update(ctx, func(prev bool) bool {
		next = !prev
		return next
	})
	if err != nil {
		return s.Theme(), fmt.Errorf("toggle theme: %w", err)
	}
	theme := core.ThemeFromDark(next)
	s.debug("theme toggled", "theme", theme.String())
	return theme, nil
}

// Palette resolves the presentation palette of the current theme.
func (s *Service) Palette() core.Palette {
	return core.PaletteFor(s.Theme())
}
