package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SNAPSHOT_DRIVER", "")
	t.Setenv("SNAPSHOT_KEY", "")
	t.Setenv("SNAPSHOT_ON_CORRUPT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Snapshot.Key != DefaultSnapshotKey {
		t.Fatalf("expected key %q, got %q", DefaultSnapshotKey, cfg.Snapshot.Key)
	}
	if cfg.Snapshot.Driver != DriverMemory {
		t.Fatalf("expected memory driver, got %q", cfg.Snapshot.Driver)
	}
	if !cfg.Snapshot.EscapeText {
		t.Fatal("expected escaping on by default")
	}
	if cfg.Snapshot.OnCorrupt != OnCorruptFail {
		t.Fatalf("expected fail policy, got %q", cfg.Snapshot.OnCorrupt)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SNAPSHOT_DRIVER", "Redis")
	t.Setenv("SNAPSHOT_ESCAPE_TEXT", "false")
	t.Setenv("SNAPSHOT_ON_CORRUPT", "seed")
	t.Setenv("EMPLOYEE_STRICT_IDS", "true")
	t.Setenv("APP_PORT", "9090")
	t.Setenv("HTTP_REQUEST_TIMEOUT_SECONDS", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Snapshot.Driver != DriverRedis {
		t.Fatalf("expected redis driver, got %q", cfg.Snapshot.Driver)
	}
	if cfg.Snapshot.EscapeText {
		t.Fatal("expected escaping disabled")
	}
	if cfg.Snapshot.OnCorrupt != OnCorruptSeed {
		t.Fatalf("expected seed policy, got %q", cfg.Snapshot.OnCorrupt)
	}
	if !cfg.Employees.StrictIDs {
		t.Fatal("expected strict ids")
	}
	if cfg.App.Addr() != "0.0.0.0:9090" {
		t.Fatalf("unexpected addr %q", cfg.App.Addr())
	}
	if cfg.App.RequestTimeout().Seconds() != 30 {
		t.Fatalf("expected fallback timeout, got %v", cfg.App.RequestTimeout())
	}
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("SNAPSHOT_DRIVER", "floppy")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestUsesNATS(t *testing.T) {
	cfg := Config{Snapshot: SnapshotConfig{Driver: DriverMemory}}
	if cfg.UsesNATS() {
		t.Fatal("memory driver without events should not need NATS")
	}
	cfg.NATS.PublishEvents = true
	if !cfg.UsesNATS() {
		t.Fatal("event publishing needs NATS")
	}
}
