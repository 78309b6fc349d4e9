package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
server:
  host: "0.0.0.0"
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "gymrat"
  user: "gymrat"
  password: "secret"
  sslmode: "disable"
auth:
  api_key: "test-key-123"
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestLoadValid verifies that a well-formed YAML config loads with all fields
// populated.
func TestLoadValid(t *testing.T) {
	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Name != "gymrat" {
		t.Errorf("database.name = %q, want %q", cfg.Database.Name, "gymrat")
	}
	if cfg.Auth.APIKey != "test-key-123" {
		t.Errorf("auth.api_key = %q, want %q", cfg.Auth.APIKey, "test-key-123")
	}
	if cfg.Tailscale.Enabled {
		t.Error("tailscale.enabled = true, want false by default")
	}
}

// TestEnvOverride verifies that GYMRAT_ env vars take precedence over YAML
// values.
func TestEnvOverride(t *testing.T) {
	t.Setenv("GYMRAT_DB_PASSWORD", "env-secret")
	t.Setenv("GYMRAT_SERVER_PORT", "9999")

	cfg, err := Load(writeTemp(t, validYAML))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Database.Password != "env-secret" {
		t.Errorf("database.password = %q, want env override", cfg.Database.Password)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("server.port = %d, want 9999", cfg.Server.Port)
	}
}

// TestValidationFailures verifies each required field is enforced.
func TestValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "missing api key",
			yaml: `
server:
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "gymrat"
  user: "gymrat"
`,
		},
		{
			name: "missing database host",
			yaml: `
server:
  port: 8080
database:
  port: 5432
  name: "gymrat"
  user: "gymrat"
auth:
  api_key: "k"
`,
		},
		{
			name: "tailscale enabled without hostname",
			yaml: `
server:
  port: 8080
database:
  host: "localhost"
  port: 5432
  name: "gymrat"
  user: "gymrat"
auth:
  api_key: "k"
tailscale:
  enabled: true
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeTemp(t, tt.yaml)); err == nil {
				t.Error("Load succeeded, want validation error")
			}
		})
	}
}

// TestDSN verifies the connection string format and the sslmode default.
func TestDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, Name: "gymrat", User: "u", Password: "p"}
	want := "postgres://u:p@db:5432/gymrat?sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}

	d.SSLMode = "require"
	if got := d.DSN(); got != "postgres://u:p@db:5432/gymrat?sslmode=require" {
		t.Errorf("DSN with sslmode = %q", got)
	}
}
