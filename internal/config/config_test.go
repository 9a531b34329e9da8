package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Chat.HistoryWindow != 10 {
		t.Errorf("history window = %d, want 10", cfg.Chat.HistoryWindow)
	}
	if cfg.Chat.MaxContextFiles != 5 {
		t.Errorf("max context files = %d, want 5", cfg.Chat.MaxContextFiles)
	}
	if cfg.Chat.DefaultModel != "gpt-4o-mini" {
		t.Errorf("default model = %q, want gpt-4o-mini", cfg.Chat.DefaultModel)
	}
	if cfg.Chat.DefaultTemperature != 0.7 {
		t.Errorf("default temperature = %v, want 0.7", cfg.Chat.DefaultTemperature)
	}
	if cfg.Chat.DefaultMaxTokens != 1000 {
		t.Errorf("default max tokens = %d, want 1000", cfg.Chat.DefaultMaxTokens)
	}
	if cfg.File.MaxExtractedChars != 50000 {
		t.Errorf("max extracted chars = %d, want 50000", cfg.File.MaxExtractedChars)
	}
	if cfg.RateLimit.Requests != 100 || cfg.RateLimit.WindowSeconds != 900 {
		t.Errorf("rate limit = %d/%ds, want 100/900s", cfg.RateLimit.Requests, cfg.RateLimit.WindowSeconds)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("server:\n  port: 9090\nchat:\n  historyWindow: 20\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("server port = %d, want 9090 from file", cfg.Server.Port)
	}
	if cfg.Chat.HistoryWindow != 20 {
		t.Errorf("history window = %d, want 20 from file", cfg.Chat.HistoryWindow)
	}
	// 文件没写的项保持默认
	if cfg.Chat.MaxContextFiles != 5 {
		t.Errorf("max context files = %d, want default 5", cfg.Chat.MaxContextFiles)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatal("Load() must fail for a missing explicit config file")
	}
}

func TestGetDSN(t *testing.T) {
	c := DatabaseConfig{
		Host: "db", Port: 5432, User: "postgres", Password: "pw",
		DBName: "agenthub", SSLMode: "disable",
	}
	want := "host=db port=5432 user=postgres password=pw dbname=agenthub sslmode=disable"
	if got := c.GetDSN(); got != want {
		t.Errorf("GetDSN() = %q, want %q", got, want)
	}
}

func TestGetAddr(t *testing.T) {
	s := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := s.GetAddr(); got != "0.0.0.0:8080" {
		t.Errorf("ServerConfig.GetAddr() = %q", got)
	}
	r := RedisConfig{Host: "localhost", Port: 6379}
	if got := r.GetAddr(); got != "localhost:6379" {
		t.Errorf("RedisConfig.GetAddr() = %q", got)
	}
}
