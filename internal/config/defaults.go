package config

const (
	// DefaultReportsDir is the default base directory for artifact runs
	DefaultReportsDir = "reports"
	// DefaultGroqBaseURL is the default Groq API endpoint
	DefaultGroqBaseURL = "https://api.groq.com/openai/v1"
	// DefaultGroqModel is the default generation model
	DefaultGroqModel = "llama-3.3-70b-versatile"
	// DefaultDBHost is the default history database host
	DefaultDBHost = "127.0.0.1"
	// DefaultDBPort is the default history database port
	DefaultDBPort = "3306"
	// DefaultDBUser is the default history database user
	DefaultDBUser = "root"
)
