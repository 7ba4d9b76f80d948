package commands

import (
	"fmt"

	"qaforge/internal/config"
	"qaforge/internal/issues"
	"qaforge/internal/storage"
	"qaforge/internal/ui"

	"github.com/spf13/cobra"
)

// IssuesCommand handles the issues command
type IssuesCommand struct {
	config    *config.Config
	storage   storage.Storage
	formatter *ui.Formatter
}

// NewIssuesCommand creates a new IssuesCommand
func NewIssuesCommand(cfg *config.Config, st storage.Storage, formatter *ui.Formatter) *IssuesCommand {
	return &IssuesCommand{
		config:    cfg,
		storage:   st,
		formatter: formatter,
	}
}

// Execute runs the command
func (ic *IssuesCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := ic.config.Flags
	if flags.DocPath == "" {
		return fmt.Errorf("--doc is required")
	}

	ctx := cmd.Context()

	doc, err := ic.storage.Load(flags.DocPath)
	if err != nil {
		return err
	}
	if doc.Empty() {
		return fmt.Errorf("document contains no test cases")
	}

	tracker, err := connectTracker(ctx, ic.config)
	if err != nil {
		return err
	}

	materializer := issues.NewMaterializer(tracker)
	progress := ui.NewProgressBar(doc.CaseCount())
	materializer.SetProgress(progress)

	created, errs := materializer.MaterializeTestCases(ctx, &doc.TestSuiteDocument, ic.config.Jira.ProjectKey)
	ic.formatter.PrintCreatedIssues(created, errs)

	if len(errs) > 0 {
		return fmt.Errorf("%d of %d issues failed", len(errs), doc.CaseCount())
	}
	return nil
}
