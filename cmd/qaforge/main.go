package main

import (
	"fmt"
	"os"

	"qaforge/internal/cli"
	"qaforge/internal/cli/commands"
	"qaforge/internal/config"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:     "qaforge",
		Short:   "Test artifact synthesis pipeline",
		Long:    `Generate structured test cases from requirements documents or website crawl data using a language model, build HTML reports from visual comparison results, and push both into Jira.`,
		Version: version,
	}

	// Create config from defaults, .env and environment
	cfg := config.FromEnv()

	// Create flags struct (will be populated by command flags)
	var flags cli.Flags

	// Create commands with dependencies
	cmds := commands.NewCommands(cfg)

	// Register all commands
	cmds.Register(rootCmd, &flags, cfg)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
