package commands

import (
	"fmt"

	"qaforge/internal/config"
	"qaforge/internal/storage"
	"qaforge/internal/ui"

	"github.com/spf13/cobra"
)

// ReviewCommand handles the review command
type ReviewCommand struct {
	config  *config.Config
	storage storage.Storage
	viewer  *ui.ReviewViewer
}

// NewReviewCommand creates a new ReviewCommand
func NewReviewCommand(cfg *config.Config, st storage.Storage, viewer *ui.ReviewViewer) *ReviewCommand {
	return &ReviewCommand{
		config:  cfg,
		storage: st,
		viewer:  viewer,
	}
}

// Execute runs the command
func (rc *ReviewCommand) Execute(cmd *cobra.Command, args []string) error {
	flags := rc.config.Flags
	if flags.DocPath == "" {
		return fmt.Errorf("--doc is required")
	}

	doc, err := rc.storage.Load(flags.DocPath)
	if err != nil {
		return err
	}

	return rc.viewer.View(doc, flags.DocPath)
}
