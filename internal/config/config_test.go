package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("defaults should load: %v", err)
	}
	if cfg.World.Width != 4800 || cfg.World.Height != 3200 {
		t.Fatalf("world defaults wrong: %+v", cfg.World)
	}
	if cfg.AI.WaveInterval != 30 || cfg.AI.ShipCap != 10 {
		t.Fatalf("ai defaults wrong: %+v", cfg.AI)
	}
	if cfg.Production.QueueCapacity != 10 {
		t.Fatalf("queue capacity default wrong: %d", cfg.Production.QueueCapacity)
	}
	if cfg.Telemetry.DSN != "" {
		t.Fatal("telemetry should default to disabled")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	body := "world:\n  width: 6000\nai:\n  ship_cap: 4\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.World.Width != 6000 {
		t.Fatalf("override not applied: width %.0f", cfg.World.Width)
	}
	if cfg.World.Height != 3200 {
		t.Fatal("unset keys should keep defaults")
	}
	if cfg.AI.ShipCap != 4 {
		t.Fatalf("ai.ship_cap override not applied: %d", cfg.AI.ShipCap)
	}
}

func TestLoad_MissingExplicitFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/run.yaml"); err == nil {
		t.Fatal("explicit missing file should fail")
	}
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("world:\n  width: -5\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("negative world width should be rejected")
	}
}
