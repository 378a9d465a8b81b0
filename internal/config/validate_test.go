// internal/config/validate_test.go
package config

import (
	"strings"
	"testing"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{
		Library: LibraryConfig{Root: t.TempDir()},
		Targets: []TargetConfig{{Dialect: "kodi"}},
	}
	cfg.applyDefaults()
	return cfg
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig(t)
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_MissingRoot(t *testing.T) {
	cfg := validConfig(t)
	cfg.Library.Root = ""
	errs := cfg.Validate()
	if !containsError(errs, "library.root") {
		t.Errorf("expected library.root error, got %v", errs)
	}
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig(t)
	cfg.LogLevel = "verbose"
	errs := cfg.Validate()
	if !containsError(errs, "log_level") {
		t.Errorf("expected log_level error, got %v", errs)
	}
}

func TestValidate_UnknownDialect(t *testing.T) {
	cfg := validConfig(t)
	cfg.Targets = append(cfg.Targets, TargetConfig{Dialect: "plex", Naming: "{base}.plex.nfo"})
	errs := cfg.Validate()
	if !containsError(errs, "targets[1].dialect") {
		t.Errorf("expected dialect error, got %v", errs)
	}
}

func TestValidate_DuplicateTargetNaming(t *testing.T) {
	cfg := validConfig(t)
	cfg.Targets = append(cfg.Targets, TargetConfig{Dialect: "emby", Naming: "{base}.nfo"})
	errs := cfg.Validate()
	if !containsError(errs, "already used") {
		t.Errorf("expected duplicate naming error, got %v", errs)
	}
}

func TestValidate_DistinctTargetNamingOK(t *testing.T) {
	cfg := validConfig(t)
	cfg.Targets = append(cfg.Targets, TargetConfig{Dialect: "emby", Naming: "{base}.emby.nfo"})
	errs := cfg.Validate()
	if len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestValidate_BadThreshold(t *testing.T) {
	cfg := validConfig(t)
	cfg.Sync.MatchThreshold = 1.5
	errs := cfg.Validate()
	if !containsError(errs, "match_threshold") {
		t.Errorf("expected match_threshold error, got %v", errs)
	}
}

func TestValidate_NegativeWorkers(t *testing.T) {
	cfg := validConfig(t)
	cfg.Sync.Workers = -1
	errs := cfg.Validate()
	if !containsError(errs, "sync.workers") {
		t.Errorf("expected workers error, got %v", errs)
	}
}

func TestValidate_MissingRootDirWarns(t *testing.T) {
	cfg := validConfig(t)
	cfg.Library.Root = "/nonexistent/movies"
	errs := cfg.Validate()
	if !containsError(errs, "does not exist") {
		t.Errorf("expected missing directory warning, got %v", errs)
	}
}

func containsError(errs []string, substr string) bool {
	for _, e := range errs {
		if strings.Contains(e, substr) {
			return true
		}
	}
	return false
}
