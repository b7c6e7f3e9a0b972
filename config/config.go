// Package config loads the project-independent defaults: which unit
// system the user works in, and the margins and alignment newly visited
// pages start out with.
//
// The configuration lives in a TOML file under the user config directory.
// A missing file is created with compiled-in defaults; a malformed file
// falls back to those same defaults rather than failing, because defaults
// are never load-bearing — every value can be overridden per page later.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// PageLayout holds the global defaults for the page-layout stage. Margin
// values are expressed in Units, not millimetres; they are converted per
// page because pixel units depend on each page's resolution.
type PageLayout struct {
	Units        string  `toml:"units"` // "px", "mm", "cm" or "in"
	MarginLeft   float64 `toml:"margin_left"`
	MarginTop    float64 `toml:"margin_top"`
	MarginRight  float64 `toml:"margin_right"`
	MarginBottom float64 `toml:"margin_bottom"`
	Alignment    string  `toml:"alignment"` // e.g. "center", "top-left"
	AutoMargins  bool    `toml:"auto_margins"`
}

// Config is the top-level TOML structure.
type Config struct {
	PageLayout PageLayout `toml:"page_layout"`
}

const defaultConfigTOML = `# scantailor defaults
# Values under [page_layout] seed every page that has no parameters yet.

[page_layout]
units = "mm"
margin_left = 10.0
margin_top = 5.0
margin_right = 10.0
margin_bottom = 5.0
alignment = "center"
auto_margins = false
`

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		PageLayout: PageLayout{
			Units:        "mm",
			MarginLeft:   10,
			MarginTop:    5,
			MarginRight:  10,
			MarginBottom: 5,
			Alignment:    "center",
			AutoMargins:  false,
		},
	}
}

// Dir returns the directory holding scantailor config files, using
// XDG_CONFIG_HOME or the platform equivalent.
func Dir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(dir, "scantailor"), nil
}

// Path returns the full path to the defaults file.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "defaults.toml"), nil
}

// Load reads the defaults file, creating it with compiled-in defaults if
// it does not exist. On any failure the compiled-in defaults are returned
// alongside the error.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(filepath.Dir(path), 0755); mkErr != nil {
			return Default(), fmt.Errorf("create config dir: %w", mkErr)
		}
		if wErr := os.WriteFile(path, []byte(defaultConfigTOML), 0644); wErr != nil {
			return Default(), fmt.Errorf("write default config: %w", wErr)
		}
	}

	return LoadFile(path)
}

// LoadFile reads defaults from an explicit path. Unknown keys are
// ignored; missing keys keep their compiled-in values.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Default(), fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}
