package repl

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigFileMissing(t *testing.T) {
	cfg, err := loadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.Prompt != ">> " || cfg.HistoryFile != ".corvid_history" {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvid.yaml")
	data := "prompt: \"corvid> \"\nhistory_file: /tmp/hist\ncolor: false\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Prompt != "corvid> " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.HistoryFile != "/tmp/hist" {
		t.Errorf("HistoryFile = %q", cfg.HistoryFile)
	}
	if cfg.Color == nil || *cfg.Color {
		t.Errorf("Color = %v, want false", cfg.Color)
	}
}

func TestLoadConfigFilePartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corvid.yaml")
	if err := os.WriteFile(path, []byte("prompt: \"? \"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfigFile(path)
	if err != nil {
		t.Fatalf("loadConfigFile: %v", err)
	}
	if cfg.Prompt != "? " {
		t.Errorf("Prompt = %q", cfg.Prompt)
	}
	if cfg.HistoryFile != ".corvid_history" {
		t.Errorf("HistoryFile should keep default, got %q", cfg.HistoryFile)
	}
	if cfg.Color != nil {
		t.Errorf("Color should stay unset, got %v", *cfg.Color)
	}
}

func TestHistoryPathAbsolute(t *testing.T) {
	cfg := Config{HistoryFile: "/var/tmp/h"}
	if got := cfg.historyPath(); got != "/var/tmp/h" {
		t.Errorf("historyPath() = %q", got)
	}
}
