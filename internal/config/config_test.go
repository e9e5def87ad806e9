package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load missing file: %v", err)
	}

	if cfg.Vault.RequiredApprovals != 2 {
		t.Errorf("expected default quorum 2, got %d", cfg.Vault.RequiredApprovals)
	}
	if cfg.Vault.StateFile == "" || cfg.Database.SQLitePath == "" {
		t.Error("expected default paths to be filled in")
	}
	if cfg.Schedule.SweepCron == "" || cfg.Schedule.SummaryCron == "" {
		t.Error("expected default cron expressions")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
vault:
  owner: alice
  required_approvals: 3
  administrators: [bob, carol]
telegram:
  bot_token: tok
  chat_id: "123"
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VAULT_REQUIRED_APPROVALS", "4")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Vault.Owner != "alice" {
		t.Errorf("expected owner alice, got %q", cfg.Vault.Owner)
	}
	if len(cfg.Vault.Administrators) != 2 {
		t.Errorf("expected 2 administrators, got %v", cfg.Vault.Administrators)
	}
	if cfg.Vault.RequiredApprovals != 4 {
		t.Errorf("env override lost: got %d", cfg.Vault.RequiredApprovals)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"missing owner", func(c *Config) { c.Vault.Owner = "" }, true},
		{"zero quorum", func(c *Config) { c.Vault.RequiredApprovals = 0 }, true},
		{"missing bot token", func(c *Config) { c.Telegram.BotToken = "" }, true},
		{"missing chat id", func(c *Config) { c.Telegram.ChatID = "" }, true},
		{"complete", func(c *Config) {}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Vault.Owner = "alice"
			cfg.Vault.RequiredApprovals = 2
			cfg.Telegram.BotToken = "tok"
			cfg.Telegram.ChatID = "123"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
