package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"qaforge/internal/artifact"
	"qaforge/internal/config"
	"qaforge/internal/domain"
	"qaforge/internal/history"
	"qaforge/internal/issues"
	"qaforge/internal/report"
	"qaforge/internal/ui"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// ReportCommand handles the report command
type ReportCommand struct {
	config      *config.Config
	synthesizer *report.Synthesizer
	formatter   *ui.Formatter
}

// NewReportCommand creates a new ReportCommand
func NewReportCommand(cfg *config.Config, synthesizer *report.Synthesizer, formatter *ui.Formatter) *ReportCommand {
	return &ReportCommand{
		config:      cfg,
		synthesizer: synthesizer,
		formatter:   formatter,
	}
}

// Execute runs the command
func (rc *ReportCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := rc.config.Flags
	if flags.InputPath == "" {
		return fmt.Errorf("--input is required")
	}

	ctx := cmd.Context()

	raw, err := os.ReadFile(flags.InputPath)
	if err != nil {
		return fmt.Errorf("read comparison results: %w", err)
	}
	var run domain.ComparisonRun
	if err := json.Unmarshal(raw, &run); err != nil {
		return fmt.Errorf("parse comparison results: %w", err)
	}

	if run.PagesCompared != len(run.ComparisonDetails) {
		color.Yellow("⚠ pages_compared is %d but %d page results are present; using the page results",
			run.PagesCompared, len(run.ComparisonDetails))
		run.PagesCompared = len(run.ComparisonDetails)
	}

	var storeOpts []artifact.Option
	if flags.UniqueRun {
		storeOpts = append(storeOpts, artifact.WithUniqueSuffix())
	}
	store := artifact.NewStore(rc.config.ReportsPath(), storeOpts...)

	result, err := rc.synthesizer.Render(run, store)
	if err != nil {
		return err
	}

	rc.formatter.PrintComparisonSummary(run, result.HTMLPath)

	recordRun(ctx, rc.config, history.Run{
		Kind:     "comparison",
		Source:   flags.InputPath,
		Artifact: result.HTMLPath,
		Pages:    run.PagesCompared,
		Score:    run.OverallScore,
	})

	if flags.CreateIssues {
		return rc.createDiscrepancyIssues(cmd, run, result)
	}
	return nil
}

// createDiscrepancyIssues files one bug per discrepancy on every failing
// page, attaching the persisted screenshots.
func (rc *ReportCommand) createDiscrepancyIssues(cmd *cobra.Command, run domain.ComparisonRun, result *report.RenderResult) error {
	ctx := cmd.Context()

	tracker, err := connectTracker(ctx, rc.config)
	if err != nil {
		return err
	}
	materializer := issues.NewMaterializer(tracker)

	var (
		created []issues.CreatedIssue
		errs    []error
	)
	for i, page := range run.ComparisonDetails {
		if domain.Passed(page.SimilarityScore) {
			continue
		}

		persisted := result.Pages[i]
		underscored := strings.ReplaceAll(page.PageName, " ", "_")
		attachments := []issues.Attachment{
			{Path: persisted.FigmaPath, Filename: fmt.Sprintf("Figma_Design_%s.png", underscored)},
			{Path: persisted.WebsitePath, Filename: fmt.Sprintf("Website_Screenshot_%s.png", underscored)},
		}

		for _, d := range page.Differences {
			key, err := materializer.MaterializeDiscrepancy(ctx, page.PageName, d, rc.config.Jira.ProjectKey, attachments...)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			created = append(created, issues.CreatedIssue{
				Key:   key,
				Name:  fmt.Sprintf("Design Issue: %s - %s", page.PageName, d.Type),
				Suite: page.PageName,
			})
		}
	}

	rc.formatter.PrintCreatedIssues(created, errs)
	return nil
}
