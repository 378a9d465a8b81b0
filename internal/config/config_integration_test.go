package config

import (
	"path/filepath"
	"testing"
)

func TestFullWorkflow(t *testing.T) {
	tmp := t.TempDir()

	// 1. Write default config
	cfgPath := filepath.Join(tmp, "nfokit", "config.toml")
	if err := WriteDefault(cfgPath); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	// 2. Load without validation (library path doesn't exist)
	cfg, err := LoadWithoutValidation(cfgPath)
	if err != nil {
		t.Fatalf("LoadWithoutValidation: %v", err)
	}

	// 3. Verify the shipped defaults parse into a usable config
	if cfg.Library.Root != "/movies" {
		t.Errorf("expected /movies root, got %q", cfg.Library.Root)
	}
	if len(cfg.Targets) != 1 || cfg.Targets[0].Dialect != "kodi" {
		t.Errorf("expected one kodi target, got %+v", cfg.Targets)
	}
	if !cfg.Sync.BackupRemoved {
		t.Error("expected backup_removed enabled in shipped defaults")
	}
}
