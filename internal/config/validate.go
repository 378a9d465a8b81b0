// internal/config/validate.go
package config

import (
	"fmt"
	"os"

	"github.com/vmunix/nfokit/pkg/nfo"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Library.Root == "" {
		errs = append(errs, "library.root: required")
	}

	if !validLogLevels[c.LogLevel] {
		errs = append(errs, fmt.Sprintf("log_level: must be one of debug, info, warn, error; got %q", c.LogLevel))
	}

	if len(c.Targets) == 0 {
		errs = append(errs, "targets: at least one sidecar target must be configured")
	}
	seen := make(map[string]bool)
	for i, target := range c.Targets {
		if _, err := nfo.ParseDialect(target.Dialect); err != nil {
			errs = append(errs, fmt.Sprintf("targets[%d].dialect: %v", i, err))
		}
		if seen[target.Naming] {
			errs = append(errs, fmt.Sprintf("targets[%d].naming: pattern %q already used by another target", i, target.Naming))
		}
		seen[target.Naming] = true
	}

	for _, key := range c.Sync.RatingOrder {
		if key == "" {
			errs = append(errs, "sync.rating_order: empty source key")
		}
	}
	if c.Sync.Workers < 0 {
		errs = append(errs, fmt.Sprintf("sync.workers: must be positive, got %d", c.Sync.Workers))
	}
	if c.Sync.MatchThreshold < 0 || c.Sync.MatchThreshold > 1 {
		errs = append(errs, fmt.Sprintf("sync.match_threshold: must be between 0 and 1, got %g", c.Sync.MatchThreshold))
	}

	// Library path warning (non-fatal)
	if c.Library.Root != "" {
		if _, err := os.Stat(c.Library.Root); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("library.root: warning: directory %q does not exist", c.Library.Root))
		}
	}

	return errs
}
