// Package config loads shroud generation settings from defaults, a YAML
// file and SHROUD_ prefixed environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/nathanworms/3dprints/helpers/matter"
	"github.com/nathanworms/3dprints/shroud"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "SHROUD_"

// Config is a complete description of a shroud generation run.
type Config struct {
	Board string `yaml:"board" env:"BOARD"`
	// JumperPins are pin names that get through-hole jumper access.
	JumperPins []string `yaml:"jumper_pins" env:"JUMPER_PINS" envSeparator:","`
	// Material enables shrink compensation of hole widths. Empty or "none" disables it.
	Material string `yaml:"material" env:"MATERIAL"`
	// CatalogFiles are YAML board lists merged over the builtin boards.
	CatalogFiles []string          `yaml:"catalog_files" env:"CATALOG_FILES" envSeparator:","`
	Tolerances   shroud.Tolerances `yaml:"tolerances" envPrefix:"TOL_"`
}

// Default returns the NodeMCU Amica configuration with the usual jumper pins.
func Default() Config {
	return Config{
		Board:      "NodeMCU_Amica",
		JumperPins: []string{"VIN", "GND1", "D1", "D2", "D7", "3V3_1"},
		Tolerances: shroud.DefaultTolerances(),
	}
}

// Load builds a validated configuration from defaults, the YAML file at
// path (skipped if path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		fp, err := os.Open(path)
		if err != nil {
			return Config{}, err
		}
		defer fp.Close()
		if err := cfg.Decode(fp); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode overlays YAML settings from r onto c. Unknown fields are rejected.
func (c *Config) Decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	err := dec.Decode(c)
	if errors.Is(err, io.EOF) {
		return nil // Empty file keeps current settings.
	}
	if err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// ApplyEnv overlays SHROUD_ prefixed environment variables onto c, e.g.
// SHROUD_BOARD, SHROUD_JUMPER_PINS=VIN,D1 and SHROUD_TOL_WALL_THICKNESS.
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Validate checks the configuration. Board names are checked against the
// catalog later, once catalog files are loaded.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Board) == "" {
		return &shroud.ValidationError{Field: "board", Reason: "no board selected"}
	}
	if err := c.Tolerances.Validate(); err != nil {
		return err
	}
	if _, err := c.material(); err != nil {
		return &shroud.ValidationError{Field: "material", Reason: err.Error()}
	}
	return nil
}

// EffectiveTolerances returns the tolerances with material shrink
// compensation applied to the hole widths.
func (c Config) EffectiveTolerances() (shroud.Tolerances, error) {
	t := c.Tolerances
	m, err := c.material()
	if err != nil || m == nil {
		return t, err
	}
	if t.StandardHoleWidth > 0 {
		t.StandardHoleWidth = m.InternalDimScale(t.StandardHoleWidth)
	}
	if t.JumperHoleWidth > 0 {
		t.JumperHoleWidth = m.InternalDimScale(t.JumperHoleWidth)
	}
	return t, nil
}

// Compensates reports whether a known material enables shrink compensation.
func (c Config) Compensates() bool {
	m, err := c.material()
	return err == nil && m != nil
}

func (c Config) material() (*matter.ViscousMaterial, error) {
	if c.Material == "" || strings.EqualFold(c.Material, "none") {
		return nil, nil
	}
	m, err := matter.ByName(c.Material)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
