package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	t.Parallel()

	theme := Default()

	assert.Equal(t, "Studentersamfundet", theme.Name)
	assert.Equal(t, "v. Aalborg Universitet", theme.Subtitle)
	assert.Equal(t, "#145014", theme.Colors.PrimaryGreen)
	assert.Equal(t, "#FFFAF1", theme.Colors.Cream)
	assert.Equal(t, "#333230", theme.Colors.TextDark)
	assert.Equal(t, "Days One", theme.Fonts.Brand)
	assert.Equal(t, "Poppins", theme.Fonts.UI)
	assert.Equal(t, "/assets/studentersamfundet-logo.png", theme.LogoPath)
	assert.NoError(t, theme.Validate())
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	t.Parallel()

	theme, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), theme)
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, `
name: Studenterhuset
colors:
  primary_green: "#112233"
fonts:
  ui: Inter
`)

	theme, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Studenterhuset", theme.Name)
	assert.Equal(t, "#112233", theme.Colors.PrimaryGreen)
	assert.Equal(t, "Inter", theme.Fonts.UI)
	assert.Equal(t, "Days One", theme.Fonts.Brand)
	assert.Equal(t, "#FFFAF1", theme.Colors.Cream)
	assert.Equal(t, "v. Aalborg Universitet", theme.Subtitle)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad color", "colors:\n  cream: cream\n", "color cream must be #RRGGBB"},
		{"short color", "colors:\n  muted: \"#fff\"\n", "color muted"},
		{"empty name", "name: \"\"\n", "name is required"},
		{"bad yaml", "name: [unclosed\n", "failed to parse theme file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Load(writeTheme(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.ErrorContains(t, err, "failed to read theme file")
	})
}
