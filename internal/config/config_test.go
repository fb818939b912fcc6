package config

import (
	"testing"
	"time"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"ADDR", "WEB_DIR", "LOG_LEVEL", "LOG_FORMAT", "DATABASE_URL", "REDIS_URL",
		"SESSION_TTL", "WORKSPACE_IDLE_TTL", "SWEEP_INTERVAL", "OIDC_ISSUER", "OIDC_CLIENT_ID", "TRUST_REMOTE_USER"} {
		t.Setenv(k, "")
	}

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Addr != ":8080" || c.WebDir != "web" || c.LogLevel != "info" {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.SessionTTL != 24*time.Hour || c.WorkspaceIdleTTL != 2*time.Hour || c.SweepInterval != 5*time.Minute {
		t.Errorf("unexpected duration defaults: %+v", c)
	}
	if c.OIDC.Enabled() {
		t.Error("SSO should be off by default")
	}
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("OIDC_ISSUER", "https://id.example.com")
	t.Setenv("OIDC_CLIENT_ID", "emberguard")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if c.Addr != ":9000" || c.SessionTTL != 30*time.Minute {
		t.Errorf("overrides not applied: %+v", c)
	}
	if !c.OIDC.Enabled() {
		t.Error("expected SSO enabled")
	}
}

func TestFromEnvBadDuration(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"SESSION_TTL", "soon"},
		{"WORKSPACE_IDLE_TTL", "-1h"},
		{"SWEEP_INTERVAL", "0s"},
		{"TRUST_REMOTE_USER", "maybe"},
	}
	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}
