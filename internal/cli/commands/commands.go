package commands

import (
	"context"
	"fmt"

	"qaforge/internal/cli"
	"qaforge/internal/config"
	"qaforge/internal/document"
	"qaforge/internal/history"
	"qaforge/internal/jira"
	"qaforge/internal/llm"
	"qaforge/internal/report"
	"qaforge/internal/storage"
	"qaforge/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Generate *GenerateCommand
	Report   *ReportCommand
	Issues   *IssuesCommand
	Review   *ReviewCommand
	Runs     *RunsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	// Initialize dependencies
	normalizer := document.NewNormalizer()
	jsonStorage := storage.NewJSONStorage()
	formatter := ui.NewFormatter()
	synthesizer := report.NewSynthesizer()
	reviewViewer := ui.NewReviewViewer(jsonStorage)

	// The model flag is only known after flag parsing, so the completer is
	// built per invocation rather than up front.
	newCompleter := func() llm.Completer {
		return llm.NewGroqClient(cfg.GroqBaseURL, cfg.GroqAPIKey, cfg.Model())
	}

	return &Commands{
		Generate: NewGenerateCommand(cfg, normalizer, newCompleter, jsonStorage, formatter, reviewViewer),
		Report:   NewReportCommand(cfg, synthesizer, formatter),
		Issues:   NewIssuesCommand(cfg, jsonStorage, formatter),
		Review:   NewReviewCommand(cfg, jsonStorage, reviewViewer),
		Runs:     NewRunsCommand(cfg, jsonStorage),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	// Generate command
	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate test cases from a requirements document or crawl data",
		Long:  "Send a requirements document (PDF, DOCX or TXT) or website crawl data to the language model and persist the generated test suite document",
		RunE:  c.Generate.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Update config with flags after parsing
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	generateCmd.Flags().StringVarP(&flags.DocPath, "doc", "d", "", "Path to a requirements document (.pdf, .docx or .txt)")
	generateCmd.Flags().StringVarP(&flags.CrawlPath, "crawl", "c", "", "Path to website crawl data (JSON)")
	generateCmd.Flags().StringVarP(&flags.Model, "model", "m", "", "Override the generation model")
	generateCmd.Flags().BoolVar(&flags.CreateIssues, "jira", false, "Create a Jira issue for every generated test case")
	generateCmd.Flags().BoolVar(&flags.OpenReview, "review", false, "Open the review viewer after generation")
	generateCmd.Flags().BoolVar(&flags.UniqueRun, "unique", false, "Append a random suffix to the run directory name")
	rootCmd.AddCommand(generateCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Build an HTML report from visual comparison results",
		Long:  "Decode per-page comparison results, persist the screenshots and write a standalone HTML report into a timestamped run directory",
		RunE:  c.Report.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	reportCmd.Flags().StringVarP(&flags.InputPath, "input", "i", "", "Path to comparison results (JSON)")
	reportCmd.Flags().BoolVar(&flags.CreateIssues, "jira", false, "Create a Jira issue for every discrepancy on failing pages")
	reportCmd.Flags().BoolVar(&flags.UniqueRun, "unique", false, "Append a random suffix to the run directory name")
	rootCmd.AddCommand(reportCmd)

	// Issues command
	issuesCmd := &cobra.Command{
		Use:   "issues",
		Short: "Create Jira issues from a generated document",
		Long:  "Load a previously generated test suite document and create one Jira issue per test case",
		RunE:  c.Issues.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	issuesCmd.Flags().StringVarP(&flags.DocPath, "doc", "d", "", "Path to a generated test suite document (test_cases.json)")
	rootCmd.AddCommand(issuesCmd)

	// Review command
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Review generated test cases interactively",
		Long:  "Display a generated test suite document in an interactive viewer and mark cases as reviewed",
		RunE:  c.Review.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	reviewCmd.Flags().StringVarP(&flags.DocPath, "doc", "d", "", "Path to a generated test suite document (test_cases.json)")
	rootCmd.AddCommand(reviewCmd)

	// Runs command
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "List past runs",
		Long:  "List run directories under the reports folder, newest first, with their generated artifacts",
		RunE:  c.Runs.Execute,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			cfg.Flags = flags.ToConfigFlags()
			return nil
		},
	}
	runsCmd.Flags().IntVarP(&flags.Limit, "limit", "n", 10, "Maximum number of runs to list")
	rootCmd.AddCommand(runsCmd)
}

// connectTracker builds a Jira client from config and verifies credentials.
func connectTracker(ctx context.Context, cfg *config.Config) (*jira.Client, error) {
	if !cfg.Jira.Configured() {
		return nil, fmt.Errorf("jira is not configured: set JIRA_SERVER_URL, JIRA_EMAIL, JIRA_API_TOKEN and JIRA_PROJECT_KEY")
	}
	client, err := jira.New(cfg.Jira.ServerURL, cfg.Jira.Email, cfg.Jira.APIToken)
	if err != nil {
		return nil, err
	}
	name, err := client.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("jira connection failed: %w", err)
	}
	color.Green("✓ Connected to Jira as %s", name)
	return client, nil
}

// recordRun stores a run summary in the history database when one is
// configured. History failures never fail the command.
func recordRun(ctx context.Context, cfg *config.Config, run history.Run) {
	if !cfg.DB.Configured() {
		return
	}
	store, err := history.Open(cfg.DB)
	if err != nil {
		color.Yellow("⚠ run history unavailable: %v", err)
		return
	}
	defer store.Close()
	if err := store.Record(ctx, run); err != nil {
		color.Yellow("⚠ failed to record run: %v", err)
	}
}
