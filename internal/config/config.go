// Package config loads the ini-style configuration file: a [misc]
// section of interpreter-wide defaults, a [UserDefinedCharacters]
// section naming the glyph-mapping database, and one section per
// typeface family.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// FontSpec names the font files backing one typeface family.
type FontSpec struct {
	Path         string `mapstructure:"path"`
	Fixed        string `mapstructure:"fixed"`
	Proportional string `mapstructure:"proportional"`
}

// Misc mirrors the [misc] section.
type Misc struct {
	LogLevel            string  `mapstructure:"loglevel"`
	DefaultFontPath     string  `mapstructure:"default_font_path"`
	Pins                int     `mapstructure:"pins"`
	MarginTopMM         float64 `mapstructure:"-"`
	MarginBottomMM      float64 `mapstructure:"-"`
	MarginLeftMM        float64 `mapstructure:"-"`
	MarginRightMM       float64 `mapstructure:"-"`
	PrintableAreaMargin string  `mapstructure:"printable_area_margins_mm"`
	PageSize            string  `mapstructure:"page_size"`
	SingleSheets        bool    `mapstructure:"single_sheets"`
	AutomaticLinefeed   bool    `mapstructure:"automatic_linefeed"`
	Renderer            string  `mapstructure:"renderer"`
	CondensedFallback   string  `mapstructure:"condensed_fallback"`
}

// UserDefinedCharacters mirrors the [UserDefinedCharacters] section.
type UserDefinedCharacters struct {
	DatabaseFilepath string `mapstructure:"database_filepath"`
	ImagesPath       string `mapstructure:"images_path"`
}

// Config is the fully-loaded configuration file, ready to seed a
// printer state's defaults. Typefaces is keyed by lowercase section
// name (viper folds all keys to lowercase).
type Config struct {
	Misc                  Misc
	UserDefinedCharacters UserDefinedCharacters
	Typefaces             map[string]FontSpec
}

// reservedSections are parsed into their own struct fields rather than
// folded into Typefaces.
var reservedSections = map[string]bool{
	"misc":                  true,
	"userdefinedcharacters": true,
}

// mandatoryTypefaces must resolve to a font, falling back to an
// embedded core font when the configuration omits them. Keys are
// lowercase: viper folds every section name to lowercase, so typeface
// lookups throughout the module are case-insensitive.
var mandatoryTypefaces = map[string]FontSpec{
	"roman":      {Fixed: "Courier", Proportional: "Times-Roman"},
	"sans serif": {Fixed: "Courier", Proportional: "Helvetica"},
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("ini")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := &Config{Typefaces: make(map[string]FontSpec)}

	if err := v.UnmarshalKey("misc", &cfg.Misc); err != nil {
		return nil, fmt.Errorf("config: [misc] section: %w", err)
	}
	if err := v.UnmarshalKey("userdefinedcharacters", &cfg.UserDefinedCharacters); err != nil {
		return nil, fmt.Errorf("config: [UserDefinedCharacters] section: %w", err)
	}
	if err := parseMargins(cfg.Misc.PrintableAreaMargin, &cfg.Misc); err != nil {
		return nil, fmt.Errorf("config: printable_area_margins_mm: %w", err)
	}

	for _, key := range v.AllKeys() {
		dot := strings.IndexByte(key, '.')
		if dot < 0 {
			continue
		}
		section := key[:dot]
		if reservedSections[strings.ToLower(section)] {
			continue
		}
		if _, seen := cfg.Typefaces[section]; seen {
			continue
		}
		var spec FontSpec
		if err := v.UnmarshalKey(section, &spec); err != nil {
			return nil, fmt.Errorf("config: [%s] section: %w", section, err)
		}
		cfg.Typefaces[section] = spec
	}

	for name, fallback := range mandatoryTypefaces {
		if _, ok := cfg.Typefaces[name]; !ok {
			cfg.Typefaces[name] = fallback
		}
	}

	return cfg, nil
}

func parseMargins(raw string, m *Misc) error {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return fmt.Errorf("expected 4 comma-separated values, got %d", len(parts))
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		if _, err := fmt.Sscanf(strings.TrimSpace(p), "%f", &vals[i]); err != nil {
			return fmt.Errorf("invalid margin value %q: %w", p, err)
		}
	}
	m.MarginTopMM, m.MarginBottomMM, m.MarginLeftMM, m.MarginRightMM = vals[0], vals[1], vals[2], vals[3]
	return nil
}
