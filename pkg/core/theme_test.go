package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
)

func TestTheme(t *testing.T) {
	assert.Equal(t, core.ThemeLight, core.ThemeFromDark(false))
	assert.Equal(t, core.ThemeDark, core.ThemeFromDark(true))
	assert.Equal(t, core.ThemeDark, core.ThemeLight.Toggle())
	assert.Equal(t, core.ThemeLight, core.ThemeDark.Toggle())
	assert.True(t, core.ThemeDark.Dark())
	assert.Equal(t, "light", core.ThemeLight.String())
	assert.Equal(t, "dark", core.ThemeDark.String())
}

func TestParseTheme(t *testing.T) {
	theme, err := core.ParseTheme(" Dark ")
	require.NoError(t, err)
	assert.Equal(t, core.ThemeDark, theme)

	theme, err = core.ParseTheme("light")
	require.NoError(t, err)
	assert.Equal(t, core.ThemeLight, theme)

	_, err = core.ParseTheme("sepia")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestPaletteFor(t *testing.T) {
	light := core.PaletteFor(core.ThemeLight)
	dark := core.PaletteFor(core.ThemeDark)

	assert.Equal(t, "Dark", light.ToggleLabel)
	assert.Equal(t, "Light", dark.ToggleLabel)
	assert.NotEqual(t, light.Background, dark.Background)
	assert.Equal(t, light, core.PaletteFor(core.Theme(42)))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, core.Validate(core.NoteData{Title: "t", Markdown: "m"}))
	assert.NoError(t, core.Validate(core.Tag{Label: "work"}))

	err := core.Validate(core.NoteData{Title: "t"})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
	assert.Contains(t, err.Error(), "markdown")

	assert.ErrorIs(t, core.Validate(core.Tag{}), core.ErrInvalidInput)
}

func TestThemeJSON(t *testing.T) {
	data, err := json.Marshal(core.PaletteFor(core.ThemeDark))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"theme":"dark"`)

	var p core.Palette
	require.NoError(t, json.Unmarshal(data, &p))
	assert.Equal(t, core.ThemeDark, p.Theme)

	assert.Error(t, json.Unmarshal([]byte(`{"theme":"sepia"}`), &p))
}
