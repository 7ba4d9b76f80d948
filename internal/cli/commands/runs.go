package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"qaforge/internal/artifact"
	"qaforge/internal/config"
	"qaforge/internal/history"
	"qaforge/internal/storage"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// RunsCommand handles the runs command
type RunsCommand struct {
	config  *config.Config
	storage storage.Storage
}

// NewRunsCommand creates a new RunsCommand
func NewRunsCommand(cfg *config.Config, st storage.Storage) *RunsCommand {
	return &RunsCommand{
		config:  cfg,
		storage: st,
	}
}

// Execute runs the command
func (rc *RunsCommand) Execute(cmd *cobra.Command, args []string) error {
	base := rc.config.ReportsPath()

	entries, err := os.ReadDir(base)
	if err != nil {
		if os.IsNotExist(err) {
			color.Yellow("No runs found (reports directory does not exist yet)")
			return nil
		}
		return fmt.Errorf("read reports directory: %w", err)
	}

	var runDirs []string
	for _, entry := range entries {
		if entry.IsDir() && strings.HasPrefix(entry.Name(), artifact.RunPrefix) {
			runDirs = append(runDirs, entry.Name())
		}
	}
	if len(runDirs) == 0 {
		color.Yellow("No runs found")
		return nil
	}

	// Run ids embed a sortable timestamp, so newest first is a reverse sort
	sort.Sort(sort.Reverse(sort.StringSlice(runDirs)))

	limit := rc.config.Flags.Limit
	if limit > 0 && len(runDirs) > limit {
		runDirs = runDirs[:limit]
	}

	color.Green("Found %d run(s):\n", len(runDirs))
	for i, name := range runDirs {
		connector := "├── "
		if i == len(runDirs)-1 {
			connector = "└── "
		}
		fmt.Printf("%s%s\n", connector, color.CyanString(name))

		childPrefix := "│   "
		if i == len(runDirs)-1 {
			childPrefix = "    "
		}

		docPath := filepath.Join(base, name, artifact.DocumentFilename)
		if doc, err := rc.storage.Load(docPath); err == nil {
			fmt.Printf("%s%s %s (%d suites, %d cases, model %s)\n",
				childPrefix, color.YellowString(artifact.DocumentFilename),
				doc.Meta.Kind, doc.Meta.SuiteCount, doc.Meta.CaseCount, doc.Meta.Model)
		}

		htmlPath := filepath.Join(base, name, artifact.ReportFilename)
		if _, err := os.Stat(htmlPath); err == nil {
			fmt.Printf("%s%s\n", childPrefix, color.YellowString(artifact.ReportFilename))
		}
	}

	if rc.config.DB.Configured() {
		rc.printHistory(cmd)
	}
	return nil
}

// printHistory lists recorded runs from the history database.
func (rc *RunsCommand) printHistory(cmd *cobra.Command) {
	store, err := history.Open(rc.config.DB)
	if err != nil {
		color.Yellow("⚠ run history unavailable: %v", err)
		return
	}
	defer store.Close()

	limit := rc.config.Flags.Limit
	if limit <= 0 {
		limit = 10
	}
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		color.Yellow("⚠ failed to read run history: %v", err)
		return
	}
	if len(runs) == 0 {
		return
	}

	fmt.Println()
	color.Green("Recorded history:")
	for _, run := range runs {
		switch run.Kind {
		case "comparison":
			fmt.Printf("  %s %-10s %s (%d pages, %.1f%%)\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.Kind, run.Source, run.Pages, run.Score*100)
		default:
			fmt.Printf("  %s %-10s %s (%d suites, %d cases)\n",
				run.CreatedAt.Format("2006-01-02 15:04:05"), run.Kind, run.Source, run.Suites, run.Cases)
		}
	}
}
