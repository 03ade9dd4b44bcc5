package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "creditflow.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Policy.FollowUpDays != 30 {
		t.Errorf("follow_up_days = %d, want 30", cfg.Policy.FollowUpDays)
	}
	if cfg.Policy.CompletionDays != 120 {
		t.Errorf("completion_days = %d, want 120", cfg.Policy.CompletionDays)
	}
	if cfg.Letters.DefaultMethod != "postal" {
		t.Errorf("default_method = %q", cfg.Letters.DefaultMethod)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[database]
url = "postgres://localhost:5432/creditflow"

[policy]
follow_up_days = 45
sweep_interval = "30m"

[ai]
enabled = true
timeout = "2s"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.URL != "postgres://localhost:5432/creditflow" {
		t.Errorf("database url = %q", cfg.Database.URL)
	}
	if cfg.Policy.FollowUpDays != 45 {
		t.Errorf("follow_up_days = %d, want 45", cfg.Policy.FollowUpDays)
	}
	if cfg.Policy.CompletionDays != 120 {
		t.Errorf("completion_days = %d, want default 120", cfg.Policy.CompletionDays)
	}
	if cfg.Policy.SweepInterval.Std() != 30*time.Minute {
		t.Errorf("sweep_interval = %v", cfg.Policy.SweepInterval.Std())
	}
	if !cfg.AI.Enabled || cfg.AI.Timeout.Std() != 2*time.Second {
		t.Errorf("ai = %+v", cfg.AI)
	}
}

func TestLoadRejectsUnknownKey(t *testing.T) {
	path := writeConfig(t, `
[policy]
follow_up_dayz = 30
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unknown key") {
		t.Fatalf("err = %v, want unknown key", err)
	}
}

func TestLoadRejectsBadPolicy(t *testing.T) {
	cases := map[string]string{
		"zero follow-up":      "[policy]\nfollow_up_days = 0\n",
		"inverted windows":    "[policy]\nfollow_up_days = 60\ncompletion_days = 30\n",
		"unknown transport":   "[letters]\ndefault_method = \"pigeon\"\n",
		"nonpositive timeout": "[ai]\ntimeout = \"0s\"\n",
	}
	for name, body := range cases {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Errorf("%s: invalid config accepted", name)
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Fatalf("missing file must fail")
	}
}

func TestPolicyWindows(t *testing.T) {
	p := Policy{FollowUpDays: 30, CompletionDays: 120}
	if p.FollowUpWindow() != 30*24*time.Hour {
		t.Errorf("follow-up window = %v", p.FollowUpWindow())
	}
	if p.CompletionWindow() != 120*24*time.Hour {
		t.Errorf("completion window = %v", p.CompletionWindow())
	}
}
