package theme

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

//go:embed default.yml
var defaultYAML []byte

var colorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Fonts struct {
	Brand string `yaml:"brand" json:"brand"`
	UI    string `yaml:"ui" json:"ui"`
}

type Colors struct {
	PrimaryGreen   string `yaml:"primary_green" json:"primaryGreen"`
	DarkGreen      string `yaml:"dark_green" json:"darkGreen"`
	SecondaryGreen string `yaml:"secondary_green" json:"secondaryGreen"`
	TintGreen      string `yaml:"tint_green" json:"tintGreen"`
	PaleGreen      string `yaml:"pale_green" json:"paleGreen"`
	Cream          string `yaml:"cream" json:"cream"`
	TextDark       string `yaml:"text_dark" json:"textDark"`
	Muted          string `yaml:"muted" json:"muted"`
}

type Theme struct {
	Name     string `yaml:"name" json:"name"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Tagline  string `yaml:"tagline" json:"tagline"`
	LogoPath string `yaml:"logo_path" json:"logoPath"`
	Fonts    Fonts  `yaml:"fonts" json:"fonts"`
	Colors   Colors `yaml:"colors" json:"colors"`
}

// Default returns the built-in Studentersamfundet brand theme.
func Default() Theme {
	var t Theme
	if err := yaml.Unmarshal(defaultYAML, &t); err != nil {
		panic(fmt.Sprintf("invalid embedded theme: %v", err))
	}
	return t
}

// Load reads a YAML override file and merges it over the defaults. An empty
// path returns the defaults.
func Load(path string) (Theme, error) {
	t := Default()
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("failed to read theme file: %w", err)
	}

	if err := yaml.Unmarshal(data, &t); err != nil {
		return Theme{}, fmt.Errorf("failed to parse theme file %s: %w", path, err)
	}

	if err := t.Validate(); err != nil {
		return Theme{}, fmt.Errorf("invalid theme %s: %w", path, err)
	}

	return t, nil
}

func (t Theme) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("name is required")
	}

	colors := []struct {
		name  string
		value string
	}{
		{"primary_green", t.Colors.PrimaryGreen},
		{"dark_green", t.Colors.DarkGreen},
		{"secondary_green", t.Colors.SecondaryGreen},
		{"tint_green", t.Colors.TintGreen},
		{"pale_green", t.Colors.PaleGreen},
		{"cream", t.Colors.Cream},
		{"text_dark", t.Colors.TextDark},
		{"muted", t.Colors.Muted},
	}

	for _, c := range colors {
		if !colorRe.MatchString(c.value) {
			return fmt.Errorf("color %s must be #RRGGBB, got %q", c.name, c.value)
		}
	}

	return nil
}
