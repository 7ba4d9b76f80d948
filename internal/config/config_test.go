package config

import (
	"testing"
)

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.ReportsDir != DefaultReportsDir {
		t.Errorf("expected ReportsDir %s, got %s", DefaultReportsDir, cfg.ReportsDir)
	}
	if cfg.GroqModel != DefaultGroqModel {
		t.Errorf("expected GroqModel %s, got %s", DefaultGroqModel, cfg.GroqModel)
	}
	if cfg.DB.Host != DefaultDBHost {
		t.Errorf("expected DB host %s, got %s", DefaultDBHost, cfg.DB.Host)
	}
	if cfg.Jira.Configured() {
		t.Error("fresh config should not have Jira configured")
	}
	if cfg.DB.Configured() {
		t.Error("fresh config should not have history DB configured")
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk-test")
	t.Setenv("GROQ_MODEL", "llama-3.1-70b-versatile")
	t.Setenv("QAFORGE_REPORTS_DIR", "/tmp/qaforge-reports")
	t.Setenv("JIRA_SERVER_URL", "https://example.atlassian.net")
	t.Setenv("JIRA_EMAIL", "qa@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")
	t.Setenv("JIRA_PROJECT_KEY", "QA")
	t.Setenv("DB_DATABASE", "qaforge")

	cfg := FromEnv()

	if cfg.GroqAPIKey != "gsk-test" {
		t.Errorf("expected API key from env, got %q", cfg.GroqAPIKey)
	}
	if cfg.GroqModel != "llama-3.1-70b-versatile" {
		t.Errorf("expected model override, got %q", cfg.GroqModel)
	}
	if cfg.ReportsDir != "/tmp/qaforge-reports" {
		t.Errorf("expected reports dir override, got %q", cfg.ReportsDir)
	}
	if !cfg.Jira.Configured() {
		t.Error("expected Jira to be configured")
	}
	if !cfg.DB.Configured() {
		t.Error("expected history DB to be configured")
	}
}

func TestConfig_Model(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default model",
			config:   &Config{GroqModel: DefaultGroqModel},
			expected: DefaultGroqModel,
		},
		{
			name: "flag override",
			config: &Config{
				GroqModel: DefaultGroqModel,
				Flags:     Flags{Model: "mixtral-8x7b-32768"},
			},
			expected: "mixtral-8x7b-32768",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.Model(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}
