package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qaforge/internal/artifact"
	"qaforge/internal/config"
	"qaforge/internal/document"
	"qaforge/internal/domain"
	"qaforge/internal/history"
	"qaforge/internal/issues"
	"qaforge/internal/llm"
	"qaforge/internal/prompt"
	"qaforge/internal/schema"
	"qaforge/internal/storage"
	"qaforge/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// GenerateCommand handles the generate command
type GenerateCommand struct {
	config       *config.Config
	normalizer   *document.Normalizer
	newCompleter func() llm.Completer
	storage      storage.Storage
	formatter    *ui.Formatter
	viewer       *ui.ReviewViewer
}

// NewGenerateCommand creates a new GenerateCommand
func NewGenerateCommand(
	cfg *config.Config,
	normalizer *document.Normalizer,
	newCompleter func() llm.Completer,
	st storage.Storage,
	formatter *ui.Formatter,
	viewer *ui.ReviewViewer,
) *GenerateCommand {
	return &GenerateCommand{
		config:       cfg,
		normalizer:   normalizer,
		newCompleter: newCompleter,
		storage:      st,
		formatter:    formatter,
		viewer:       viewer,
	}
}

// Execute runs the command
func (gc *GenerateCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := gc.config.Flags
	if (flags.DocPath == "") == (flags.CrawlPath == "") {
		return fmt.Errorf("exactly one of --doc or --crawl is required")
	}

	ctx := cmd.Context()

	// Build the prompt from the selected input
	var (
		promptText string
		source     string
		kind       string
	)
	if flags.DocPath != "" {
		raw, err := os.ReadFile(flags.DocPath)
		if err != nil {
			return fmt.Errorf("read document: %w", err)
		}
		text, err := gc.normalizer.Normalize(raw, flags.DocPath)
		if err != nil {
			return err
		}
		promptText = prompt.FromRequirements(text)
		source = filepath.Base(flags.DocPath)
		kind = "requirements"
	} else {
		raw, err := os.ReadFile(flags.CrawlPath)
		if err != nil {
			return fmt.Errorf("read crawl data: %w", err)
		}
		var crawl domain.CrawlData
		if err := json.Unmarshal(raw, &crawl); err != nil {
			return fmt.Errorf("parse crawl data: %w", err)
		}
		promptText = prompt.FromCrawl(crawl)
		source = filepath.Base(flags.CrawlPath)
		kind = "crawl"
	}

	color.Cyan("Generating test cases from %s using %s...", source, gc.config.Model())

	completer := gc.newCompleter()
	output, err := completer.Complete(ctx, promptText)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return fmt.Errorf("GROQ_API_KEY is not set")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	result, err := schema.Extract(output)
	if err != nil {
		var malformed *schema.MalformedResponseError
		if errors.As(err, &malformed) {
			color.Red("✗ Model response could not be parsed. Raw output:")
			fmt.Println(malformed.Raw)
		}
		return err
	}

	doc := result.Document
	if doc.Empty() {
		color.Red("✗ Model produced no test cases. Raw output:")
		fmt.Println(output)
		return fmt.Errorf("no test cases produced")
	}

	// Persist the document into a timestamped run directory
	var storeOpts []artifact.Option
	if flags.UniqueRun {
		storeOpts = append(storeOpts, artifact.WithUniqueSuffix())
	}
	store := artifact.NewStore(gc.config.ReportsPath(), storeOpts...)

	persisted := &storage.Document{
		Meta: storage.Meta{
			Source:      source,
			Kind:        kind,
			Model:       gc.config.Model(),
			SuiteCount:  len(doc.TestSuites),
			CaseCount:   doc.CaseCount(),
			Warnings:    result.Warnings,
			GeneratedAt: time.Now().Format(time.RFC3339),
		},
		TestSuiteDocument: *doc,
	}
	if err := gc.storage.Save(persisted, store.DocumentPath()); err != nil {
		return err
	}

	recordRun(ctx, gc.config, history.Run{
		Kind:     kind,
		Source:   source,
		Artifact: store.DocumentPath(),
		Suites:   persisted.Meta.SuiteCount,
		Cases:    persisted.Meta.CaseCount,
	})

	gc.formatter.PrintGenerationStats(persisted)
	gc.formatter.PrintWarnings(result.Warnings)
	fmt.Printf("\nSaved: %s\n", color.CyanString(store.DocumentPath()))

	if flags.CreateIssues {
		tracker, err := connectTracker(ctx, gc.config)
		if err != nil {
			return err
		}
		materializer := issues.NewMaterializer(tracker)
		progress := ui.NewProgressBar(doc.CaseCount())
		materializer.SetProgress(progress)
		created, errs := materializer.MaterializeTestCases(ctx, doc, gc.config.Jira.ProjectKey)
		gc.formatter.PrintCreatedIssues(created, errs)
	}

	if flags.OpenReview {
		return gc.viewer.View(persisted, store.DocumentPath())
	}
	return nil
}
