package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. User config file
// 3. Project config file in workDir, or the file given with --config
// 4. Environment variables
// 5. CLI flags that were explicitly set
//
// fl may be nil when no flags were parsed.
func Load(fl *Flags, workDir string) (*Config, error) {
	cfg := Default()

	// 2. User config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
	}

	// 3. Project config file (overrides user config)
	if fl != nil && fl.ConfigFile != "" {
		path := expandPath(fl.ConfigFile)
		if err := loadConfigFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if path := findProjectConfigFile(workDir); path != "" {
		if err := loadConfigFile(cfg, path, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
	}

	// 4. Environment
	loadFromEnv(cfg)

	// 5. Flags
	if fl != nil {
		fl.apply(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadConfigFile decodes the TOML file at path over cfg. Only keys present in
// the file change, and those keys are attributed to source.
func loadConfigFile(cfg *Config, path string, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return fmt.Errorf("decode: %w", err)
	}
	cfg.Files = append(cfg.Files, path)

	for _, field := range configFields() {
		if md.IsDefined(field) {
			cfg.set(field, source)
		}
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		cfg.warnf("%s: unknown keys ignored: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// findProjectConfigFile looks for a config file in dir.
func findProjectConfigFile(dir string) string {
	names := []string{"sknext.toml", ".sknext.toml"}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
