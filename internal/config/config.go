package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is constructed
// once at process start and passed into every component that needs it;
// components never read the environment themselves.
type Config struct {
	// Output settings
	ReportsDir string

	// Text-generation settings
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string

	// Issue-tracker settings
	Jira JiraConfig

	// Run-history database settings (optional)
	DB DBConfig

	// Command flags
	Flags Flags
}

// JiraConfig holds the Jira connection settings.
type JiraConfig struct {
	ServerURL  string
	Email      string
	APIToken   string
	ProjectKey string
}

// Configured reports whether all Jira settings are present.
func (j JiraConfig) Configured() bool {
	return j.ServerURL != "" && j.Email != "" && j.APIToken != "" && j.ProjectKey != ""
}

// DBConfig holds the optional run-history database settings. History is
// disabled when no database name is set.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// Configured reports whether the history database is enabled.
func (d DBConfig) Configured() bool {
	return d.Database != ""
}

// Flags holds command-line flags
type Flags struct {
	DocPath      string
	CrawlPath    string
	InputPath    string
	ArtifactPath string
	Model        string
	CreateIssues bool
	OpenReview   bool
	UniqueRun    bool
	Limit        int
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		ReportsDir:  DefaultReportsDir,
		GroqBaseURL: DefaultGroqBaseURL,
		GroqModel:   DefaultGroqModel,
		DB: DBConfig{
			Host: DefaultDBHost,
			Port: DefaultDBPort,
			User: DefaultDBUser,
		},
	}
}

// FromEnv creates a config from defaults, a .env file (if present), and
// environment variables.
func FromEnv() *Config {
	// .env file might not exist, that's okay - use environment variables
	_ = godotenv.Load()

	cfg := New()
	if v := os.Getenv("QAFORGE_REPORTS_DIR"); v != "" {
		cfg.ReportsDir = v
	}
	cfg.GroqAPIKey = os.Getenv("GROQ_API_KEY")
	if v := os.Getenv("GROQ_BASE_URL"); v != "" {
		cfg.GroqBaseURL = v
	}
	if v := os.Getenv("GROQ_MODEL"); v != "" {
		cfg.GroqModel = v
	}

	cfg.Jira = JiraConfig{
		ServerURL:  os.Getenv("JIRA_SERVER_URL"),
		Email:      os.Getenv("JIRA_EMAIL"),
		APIToken:   os.Getenv("JIRA_API_TOKEN"),
		ProjectKey: os.Getenv("JIRA_PROJECT_KEY"),
	}

	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.DB.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		cfg.DB.Port = v
	}
	if v := os.Getenv("DB_USERNAME"); v != "" {
		cfg.DB.User = v
	}
	cfg.DB.Password = os.Getenv("DB_PASSWORD")
	cfg.DB.Database = os.Getenv("DB_DATABASE")

	return cfg
}

// Model returns the generation model, using the flag override if provided.
func (c *Config) Model() string {
	if c.Flags.Model != "" {
		return c.Flags.Model
	}
	return c.GroqModel
}

// ReportsPath returns the absolute reports base directory so every command
// reads and writes the same tree regardless of cwd.
func (c *Config) ReportsPath() string {
	if abs, err := filepath.Abs(c.ReportsDir); err == nil {
		return abs
	}
	return c.ReportsDir
}
