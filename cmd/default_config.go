package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// FileConfig is the experiment config file (--config). Pointer fields stay
// nil when a key is absent so the file only overrides what it names.
// YAML parsing rejects unknown keys, and so does TOML via MetaData.Undecoded.
type FileConfig struct {
	NumDoors             *int    `yaml:"num_doors" toml:"num_doors"`
	NumDoorsOpenedByHost *int    `yaml:"num_doors_opened_by_host" toml:"num_doors_opened_by_host"`
	NumSimulations       *int    `yaml:"num_simulations" toml:"num_simulations"`
	Seed                 *int64  `yaml:"seed" toml:"seed"`
	Workers              *int    `yaml:"workers" toml:"workers"`
	Trial                *string `yaml:"trial" toml:"trial"`
	DB                   *string `yaml:"db" toml:"db"`
}

// LoadFileConfig reads a YAML (.yaml, .yml) or TOML (.toml) config file.
func LoadFileConfig(path string) (FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	var cfg FileConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return FileConfig{}, fmt.Errorf("parsing config YAML %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return FileConfig{}, fmt.Errorf("parsing config TOML %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			sort.Strings(keys)
			return FileConfig{}, fmt.Errorf("parsing config TOML %s: unknown keys: %s", path, strings.Join(keys, ", "))
		}
	default:
		return FileConfig{}, fmt.Errorf("unsupported config file extension %q; valid: .yaml, .yml, .toml", ext)
	}
	return cfg, nil
}

// apply overlays the keys present in the file onto opts.
func (f FileConfig) apply(opts *options) {
	if f.NumDoors != nil {
		opts.Config.NumDoors = *f.NumDoors
	}
	if f.NumDoorsOpenedByHost != nil {
		opts.Config.NumDoorsOpenedByHost = *f.NumDoorsOpenedByHost
	}
	if f.NumSimulations != nil {
		opts.Config.NumSimulations = *f.NumSimulations
	}
	if f.Seed != nil {
		opts.Run.Seed = *f.Seed
		opts.SeedSet = true
	}
	if f.Workers != nil {
		opts.Run.Workers = *f.Workers
	}
	if f.Trial != nil {
		opts.Run.Trial = *f.Trial
	}
	if f.DB != nil {
		opts.DBPath = *f.DB
	}
}
