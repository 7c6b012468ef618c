package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Server.HTTPPort != "5000" {
		t.Errorf("HTTPPort = %q, want 5000", cfg.Server.HTTPPort)
	}
	if cfg.Game.BasePoints != 1000 {
		t.Errorf("BasePoints = %d, want 1000", cfg.Game.BasePoints)
	}
	if cfg.Game.RevealSec != 5 {
		t.Errorf("RevealSec = %d, want 5", cfg.Game.RevealSec)
	}
	if cfg.Game.TeardownGraceSec != 60 {
		t.Errorf("TeardownGraceSec = %d, want 60", cfg.Game.TeardownGraceSec)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("HTTP_PORT", "8123")
	t.Setenv("GAME_BASE_POINTS", "500")
	t.Setenv("S3_USE_SSL", "true")

	cfg := Load()

	if cfg.Server.HTTPPort != "8123" {
		t.Errorf("HTTPPort = %q, want 8123", cfg.Server.HTTPPort)
	}
	if cfg.Game.BasePoints != 500 {
		t.Errorf("BasePoints = %d, want 500", cfg.Game.BasePoints)
	}
	if !cfg.S3.UseSSL {
		t.Error("S3.UseSSL = false, want true")
	}
}

func TestGetEnvAsInt_Invalid(t *testing.T) {
	t.Setenv("GAME_BASE_POINTS", "not-a-number")

	cfg := Load()
	if cfg.Game.BasePoints != 1000 {
		t.Errorf("BasePoints = %d, want default 1000 on parse failure", cfg.Game.BasePoints)
	}
}
