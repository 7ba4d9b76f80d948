package ui

import (
	"fmt"

	"github.com/fatih/color"
	"qaforge/internal/domain"
	"qaforge/internal/issues"
	"qaforge/internal/storage"
)

// Formatter formats and displays output
type Formatter struct{}

// NewFormatter creates a new Formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

// PrintGenerationStats displays statistics for a generated document
func (f *Formatter) PrintGenerationStats(doc *storage.Document) {
	meta := doc.Meta

	// Print header
	fmt.Print("\n")
	color.Cyan("╔═══════════════════════════════════════════════════════════════╗")
	color.Cyan("║                   Test Generation Statistics                  ║")
	color.Cyan("╚═══════════════════════════════════════════════════════════════╝\n")

	// Print table
	fmt.Println("┌─────────────────────────────────┬─────────────────────────────┐")

	fmt.Printf("│ %-31s │ ", "Source")
	color.White("%-27s │\n", truncate(meta.Source, 27))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Input Kind")
	color.White("%-27s │\n", meta.Kind)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Model")
	color.White("%-27s │\n", truncate(meta.Model, 27))
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Test Suites")
	color.Green("%-27d │\n", meta.SuiteCount)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Test Cases")
	color.Green("%-27d │\n", meta.CaseCount)
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Warnings")
	if len(meta.Warnings) > 0 {
		color.Yellow("%-27d │\n", len(meta.Warnings))
	} else {
		color.White("%-27d │\n", 0)
	}
	fmt.Println("├─────────────────────────────────┼─────────────────────────────┤")

	fmt.Printf("│ %-31s │ ", "Generated At")
	color.White("%-27s │\n", truncate(meta.GeneratedAt, 27))

	fmt.Println("└─────────────────────────────────┴─────────────────────────────┘")

	fmt.Println()
	f.printSuiteTree(doc.TestSuites)
}

// printSuiteTree prints the generated suites and cases as a tree
func (f *Formatter) printSuiteTree(suites []domain.TestSuite) {
	for i, suite := range suites {
		isLastSuite := i == len(suites)-1
		if isLastSuite {
			color.Cyan("└── %s (%d cases)", suite.SuiteName, len(suite.TestCases))
		} else {
			color.Cyan("├── %s (%d cases)", suite.SuiteName, len(suite.TestCases))
		}

		for j, tc := range suite.TestCases {
			isLastCase := j == len(suite.TestCases)-1

			var prefix string
			if isLastSuite {
				if isLastCase {
					prefix = "    └── "
				} else {
					prefix = "    ├── "
				}
			} else {
				if isLastCase {
					prefix = "│   └── "
				} else {
					prefix = "│   ├── "
				}
			}

			fmt.Printf("%s%s %s\n", prefix, color.YellowString(tc.ID), tc.Name)
		}

		if i < len(suites)-1 {
			fmt.Println()
		}
	}
}

// PrintComparisonSummary displays the outcome of a comparison run
func (f *Formatter) PrintComparisonSummary(run domain.ComparisonRun, htmlPath string) {
	fmt.Println()
	if domain.Passed(run.OverallScore) {
		color.Green("✓ PASS - overall similarity %.1f%%", run.OverallScore*100)
	} else {
		color.Red("✗ FAIL - overall similarity %.1f%%", run.OverallScore*100)
	}

	failed := 0
	for _, page := range run.ComparisonDetails {
		if !domain.Passed(page.SimilarityScore) {
			failed++
		}
	}
	fmt.Printf("Pages compared: %d, failing: %d\n", len(run.ComparisonDetails), failed)

	for i, page := range run.ComparisonDetails {
		isLast := i == len(run.ComparisonDetails)-1
		connector := "├── "
		if isLast {
			connector = "└── "
		}
		if domain.Passed(page.SimilarityScore) {
			fmt.Printf("%s%s %s\n", connector, color.GreenString("✓"), page.PageName)
		} else {
			fmt.Printf("%s%s %s (%.1f%%, %d discrepancies)\n",
				connector, color.RedString("✗"), page.PageName,
				page.SimilarityScore*100, len(page.Differences))
		}
	}

	fmt.Println()
	fmt.Printf("Report: %s\n", color.CyanString(htmlPath))
}

// PrintWarnings displays extraction warnings
func (f *Formatter) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		return
	}
	fmt.Println()
	for _, w := range warnings {
		color.Yellow("⚠ %s", w)
	}
}

// PrintCreatedIssues displays the outcome of an issue creation pass
func (f *Formatter) PrintCreatedIssues(created []issues.CreatedIssue, errs []error) {
	fmt.Println()
	if len(created) > 0 {
		color.Green("✓ Created %d issue(s):", len(created))
		for _, issue := range created {
			fmt.Printf("  %s %s\n", color.CyanString(issue.Key), issue.Name)
		}
	}
	if len(errs) > 0 {
		color.Red("✗ %d issue(s) failed:", len(errs))
		for _, err := range errs {
			fmt.Printf("  %v\n", err)
		}
	}
	if len(created) == 0 && len(errs) == 0 {
		fmt.Println("No issues to create.")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
