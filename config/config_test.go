package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultIsValid(t *testing.T) {
	if errs := Default().Validate(); len(errs) != 0 {
		t.Errorf("Default().Validate() = %v", errs)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		modify     func(c *Config)
		wantFields []string
	}{
		{name: "upper case level", modify: func(c *Config) { c.Logging.Level = "DEBUG" }},
		{name: "warning level", modify: func(c *Config) { c.Logging.Level = "warning" }},
		{name: "empty level", modify: func(c *Config) { c.Logging.Level = "" }},
		{
			name:       "unknown level",
			modify:     func(c *Config) { c.Logging.Level = "loud" },
			wantFields: []string{"logging.level"},
		},
		{
			name: "two problems",
			modify: func(c *Config) {
				c.Logging.Level = "loud"
				c.Game.SnapshotPath = "  "
			},
			wantFields: []string{"logging.level", "game.snapshot_path"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			errs := cfg.Validate()
			if len(errs) != len(tt.wantFields) {
				t.Fatalf("Validate() = %v, want fields %v", errs, tt.wantFields)
			}
			for i, f := range tt.wantFields {
				if errs[i].Field != f {
					t.Errorf("errs[%d].Field = %q, want %q", i, errs[i].Field, f)
				}
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	one := ValidationErrors{{Field: "a", Value: 1, Message: "bad"}}
	if got := one.Error(); got != "a: bad (got: 1)" {
		t.Errorf("Error() = %q", got)
	}
	two := append(one, ValidationError{Field: "b", Value: 2, Message: "worse"})
	if got := two.Error(); !strings.HasPrefix(got, "2 validation errors:") || !strings.Contains(got, "2. b: worse") {
		t.Errorf("Error() = %q", got)
	}
}

func TestInitAndLoad(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	path := filepath.Join(t.TempDir(), "minesweeper.yaml")
	content := "board:\n  rows: 9\n  columns: 12\n  mines: 10\ngame:\n  seed: 42\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Board != (BoardConfig{Rows: 9, Columns: 12, Mines: 10}) {
		t.Errorf("Board = %+v", cfg.Board)
	}
	if cfg.Game.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Game.Seed)
	}
	if cfg.Game.SnapshotPath != "minesweeper.txt" {
		t.Errorf("SnapshotPath = %q, want the default", cfg.Game.SnapshotPath)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Logging.Level)
	}
}

func TestInitMissingExplicitFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	if err := Init(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Init with a missing explicit file should fail")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	SetDefaults()
	viper.Set("logging.level", "chatty")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted an unknown log level")
	}
}
