package core

import (
	"fmt"
	"strings"
)

// Theme is the presentation theme preference.
type Theme int

const (
	ThemeLight Theme = iota
	ThemeDark
)

// ThemeFromDark maps the persisted dark-mode flag to a Theme.
func ThemeFromDark(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// Dark reports whether the theme is the dark one.
func (t Theme) Dark() bool {
	return t == ThemeDark
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// MarshalText implements encoding.TextMarshaler.
func (t Theme) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Theme) UnmarshalText(text []byte) error {
	parsed, err := ParseTheme(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTheme parses "light" or "dark", case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return ThemeLight, nil
	case "dark":
		return ThemeDark, nil
	}
	return ThemeLight, fmt.Errorf("%w: unknown theme %q", ErrInvalidInput, s)
}

// Palette is the presentation configuration of a theme.
// The presentation layer resolves it once per render via PaletteFor.
type Palette struct {
	Theme       Theme  `json:"theme"`
	Background  string `json:"background"`
	Surface     string `json:"surface"`
	Text        string `json:"text"`
	Border      string `json:"border"`
	OptionHover string `json:"optionHover"`
	// ToggleLabel names the theme the toggle switches to.
	ToggleLabel string `json:"toggleLabel"`
}

var palettes = map[Theme]Palette{
	ThemeLight: {
		Theme:       ThemeLight,
		Background:  "rgb(243 244 246)",
		Surface:     "rgb(255 255 255)",
		Text:        "rgb(17 24 39)",
		Border:      "black",
		OptionHover: "blue",
		ToggleLabel: "Dark",
	},
	ThemeDark: {
		Theme:       ThemeDark,
		Background:  "rgb(17 24 39)",
		Surface:     "rgb(31 41 55)",
		Text:        "rgb(243 244 246)",
		Border:      "gray",
		OptionHover: "blue",
		ToggleLabel: "Light",
	},
}

// PaletteFor returns the palette of t. Unknown values fall back to light.
func PaletteFor(t Theme) Palette {
	if p, ok := palettes[t]; ok {
		return p
	}
	return palettes[ThemeLight]
}
