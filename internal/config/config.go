// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the root configuration structure.
type Config struct {
	LogLevel string         `toml:"log_level"`
	Database DatabaseConfig `toml:"database"`
	Library  LibraryConfig  `toml:"library"`
	Sync     SyncConfig     `toml:"sync"`
	Targets  []TargetConfig `toml:"targets"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type LibraryConfig struct {
	Root string `toml:"root"`
	// Naming is the folder-level naming pattern used when deriving titles
	// from paths, e.g. "{title} ({year})".
	Naming string `toml:"naming"`
}

type SyncConfig struct {
	// CleanRewrite drops retained foreign tags instead of re-emitting them.
	CleanRewrite bool `toml:"clean_rewrite"`
	// RatingOrder is the source preference for the legacy flat rating tag.
	RatingOrder []string `toml:"rating_order"`
	// SingleStudio limits joined-tag dialects to the first studio.
	SingleStudio bool `toml:"single_studio"`
	// WriteLockData controls emission of the edit-lock tag.
	WriteLockData bool `toml:"write_lockdata"`
	// Workers bounds how many movies are synced concurrently.
	Workers int `toml:"workers"`
	// MatchThreshold is the minimum title similarity for pairing a sidecar
	// with a video file when names disagree.
	MatchThreshold float64 `toml:"match_threshold"`
	// BackupRemoved copies orphaned sidecars into a .backup directory
	// before deleting them.
	BackupRemoved bool `toml:"backup_removed"`
}

// TargetConfig is one sidecar output target. Each movie gets one file per
// target on every sync.
type TargetConfig struct {
	Dialect string `toml:"dialect"`
	// Naming is the sidecar file name pattern relative to the movie folder.
	// Supported placeholders: {base} (video file name without extension),
	// {title}, {year}, {dialect}.
	Naming string `toml:"naming"`
}

// Load reads, parses, and validates the configuration file.
func Load(path string) (*Config, error) {
	cfg, missing, err := parse(path)
	if err != nil {
		return nil, err
	}

	errs := cfg.Validate()
	if len(missing) > 0 || len(errs) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing, Errors: errs}
	}
	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file, skipping
// validation and missing-variable checks. Used by commands that inspect or
// repair configs.
func LoadWithoutValidation(path string) (*Config, error) {
	cfg, _, err := parse(path)
	return cfg, err
}

func parse(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, missing, nil
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/nfokit.db"
	}
	if c.Library.Naming == "" {
		c.Library.Naming = "{title} ({year})"
	}
	if len(c.Sync.RatingOrder) == 0 {
		c.Sync.RatingOrder = []string{"imdb", "tmdb", "default"}
	}
	if c.Sync.Workers == 0 {
		c.Sync.Workers = 4
	}
	if c.Sync.MatchThreshold == 0 {
		c.Sync.MatchThreshold = 0.85
	}
	if len(c.Targets) == 0 {
		c.Targets = []TargetConfig{{Dialect: "kodi"}}
	}
	for i := range c.Targets {
		if c.Targets[i].Naming == "" {
			c.Targets[i].Naming = "{base}.nfo"
		}
	}
}

// envVarPattern matches ${VAR}, ${VAR:-default}, and ${VAR:?message}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(:-([^}]*)|:\?([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} references with environment variable
// values. Returns the substituted content and the list of unresolved
// variables. ${VAR:-default} falls back to default when VAR is unset or
// empty; ${VAR:?message} records message as the failure reason.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		name := groups[1]
		value := os.Getenv(name)

		switch {
		case strings.HasPrefix(groups[2], ":-"):
			if value != "" {
				return value
			}
			return groups[3]
		case strings.HasPrefix(groups[2], ":?"):
			if value != "" {
				return value
			}
			missing = append(missing, fmt.Sprintf("%s: %s", name, groups[4]))
			return match
		default:
			if _, ok := os.LookupEnv(name); ok {
				return value
			}
			missing = append(missing, name)
			return match
		}
	})
	return result, missing
}
