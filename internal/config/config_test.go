package config

import (
	"strings"
	"testing"
	"time"
)

// clearEnv unsets every variable the loader reads so tests see a clean
// environment regardless of the host shell.
func clearEnv(t *testing.T) {
	t.Helper()
	vars := []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_REQUEST_TIMEOUT",
		"DATABASE_URL", "DB_URL", "DB_MAX_CONNS", "DB_MIN_CONNS",
		"DB_MAX_CONN_LIFETIME", "DB_MAX_CONN_IDLE_TIME",
		"UPLOAD_MAX_FILE_SIZE", "UPLOAD_MAX_CONCURRENT", "UPLOAD_MAX_WAIT_TIME",
		"INGEST_HEADER_KEYWORDS", "INGEST_HEADER_MATCH_THRESHOLD",
		"LOG_LEVEL", "LOG_FORMAT",
	}
	for _, v := range vars {
		t.Setenv(v, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/receipts")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("ReadTimeout = %v", cfg.Server.ReadTimeout)
	}
	if cfg.Database.MaxConns != 20 || cfg.Database.MinConns != 4 {
		t.Errorf("pool sizing = %d/%d", cfg.Database.MaxConns, cfg.Database.MinConns)
	}
	if cfg.Upload.MaxFileSize != 20971520 {
		t.Errorf("MaxFileSize = %d", cfg.Upload.MaxFileSize)
	}
	if cfg.Upload.MaxConcurrent != 5 {
		t.Errorf("MaxConcurrent = %d", cfg.Upload.MaxConcurrent)
	}

	wantKeywords := []string{"Номер чека", "Чек", "Операція"}
	if len(cfg.Ingest.HeaderKeywords) != len(wantKeywords) {
		t.Fatalf("HeaderKeywords = %v", cfg.Ingest.HeaderKeywords)
	}
	for i, kw := range wantKeywords {
		if cfg.Ingest.HeaderKeywords[i] != kw {
			t.Errorf("HeaderKeywords[%d] = %q, want %q", i, cfg.Ingest.HeaderKeywords[i], kw)
		}
	}
	if cfg.Ingest.HeaderMatchThreshold != 3 {
		t.Errorf("HeaderMatchThreshold = %d", cfg.Ingest.HeaderMatchThreshold)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("logging = %q/%q", cfg.Logging.Level, cfg.Logging.Format)
	}
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)

	if _, err := Load(); err == nil {
		t.Fatal("Load succeeded without DATABASE_URL")
	}
}

func TestLoadDatabaseURLAlternate(t *testing.T) {
	clearEnv(t)
	t.Setenv("DB_URL", "postgres://localhost/alt")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/alt" {
		t.Errorf("URL = %q", cfg.Database.URL)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/receipts")
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("UPLOAD_MAX_WAIT_TIME", "5s")
	t.Setenv("INGEST_HEADER_KEYWORDS", "Чек, Операція ")
	t.Setenv("INGEST_HEADER_MATCH_THRESHOLD", "2")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != 9001 {
		t.Errorf("Port = %d", cfg.Server.Port)
	}
	if cfg.Upload.MaxWaitTime != 5*time.Second {
		t.Errorf("MaxWaitTime = %v", cfg.Upload.MaxWaitTime)
	}
	if len(cfg.Ingest.HeaderKeywords) != 2 || cfg.Ingest.HeaderKeywords[1] != "Операція" {
		t.Errorf("HeaderKeywords = %v (values must be trimmed)", cfg.Ingest.HeaderKeywords)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Format = %q", cfg.Logging.Format)
	}
}

func TestValidateFailures(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantMsg string
	}{
		{
			name:    "bad port",
			env:     map[string]string{"SERVER_PORT": "70000"},
			wantMsg: "SERVER_PORT",
		},
		{
			name:    "pool bounds inverted",
			env:     map[string]string{"DB_MAX_CONNS": "2", "DB_MIN_CONNS": "10"},
			wantMsg: "DB_MAX_CONNS",
		},
		{
			name:    "threshold above keyword count",
			env:     map[string]string{"INGEST_HEADER_KEYWORDS": "Чек", "INGEST_HEADER_MATCH_THRESHOLD": "3"},
			wantMsg: "INGEST_HEADER_MATCH_THRESHOLD",
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"LOG_LEVEL": "verbose"},
			wantMsg: "LOG_LEVEL",
		},
		{
			name:    "bad duration",
			env:     map[string]string{"UPLOAD_MAX_WAIT_TIME": "soon"},
			wantMsg: "UPLOAD_MAX_WAIT_TIME",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("DATABASE_URL", "postgres://localhost/receipts")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if err == nil {
				t.Fatal("Load succeeded, want failure")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %s", err, tt.wantMsg)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "0.0.0.0", Port: 8080}
	if got := c.Addr(); got != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q", got)
	}

	c.Host = ""
	if got := c.Addr(); got != ":8080" {
		t.Errorf("Addr() with empty host = %q", got)
	}
}
