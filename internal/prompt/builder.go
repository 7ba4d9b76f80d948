// Package prompt renders generation prompts. Builders are pure functions:
// identical input yields an identical prompt, assembled as an ordered
// sequence of sections joined once at the end.
package prompt

import (
	"fmt"
	"strings"

	"qaforge/internal/domain"
)

// schemaTemplate is the literal JSON structure the model is instructed to
// return. The extractor validates against exactly these field names.
const schemaTemplate = `{
    "test_suites": [
        {
            "suite_name": "Functional Tests",
            "description": "Test core functionality",
            "test_cases": [
                {
                    "id": "TC001",
                    "name": "Test case name",
                    "priority": "High|Medium|Low",
                    "type": "Functional|UI|Integration|Negative",
                    "description": "Detailed description",
                    "preconditions": "What needs to be set up",
                    "test_steps": [
                        "Step 1: Action to perform",
                        "Step 2: Next action",
                        "Step 3: Verification step"
                    ],
                    "expected_result": "What should happen",
                    "test_data": "Any required test data",
                    "automation_priority": "High|Medium|Low"
                }
            ]
        }
    ]
}`

// FromRequirements builds the generation prompt for a requirements
// document. No truncation is applied; the caller must ensure the text fits
// the model's input limit.
func FromRequirements(text string) string {
	sections := []string{
		"Analyze the following requirements document and generate comprehensive test cases in JSON format.",
		"Requirements:\n" + text,
		"Generate test cases in this EXACT JSON structure:\n" + schemaTemplate,
		"Focus on:\n" + numbered(
			"Happy path scenarios",
			"Error handling and edge cases",
			"Input validation",
			"User interface interactions",
			"Integration points",
			"Performance considerations",
			"Security aspects",
			"Accessibility requirements",
		),
		"Make sure the JSON is properly formatted and complete.",
	}
	return strings.Join(sections, "\n\n")
}

// FromCrawl builds the generation prompt for crawled website data. Every
// page is rendered as a summary block; blocks are blank-line separated and
// precede the schema template and guidance.
func FromCrawl(data domain.CrawlData) string {
	summaries := make([]string, 0, len(data.Pages))
	for _, page := range data.Pages {
		summaries = append(summaries, pageSummary(page))
	}

	sections := []string{
		"Based on the following website crawl data, generate comprehensive test cases in JSON format:",
		strings.Join(summaries, "\n\n"),
		"Generate test cases using this EXACT JSON structure:\n" + schemaTemplate,
		"Focus on:\n" + numbered(
			"Form validation tests (positive and negative)",
			"Navigation functionality",
			"Button click interactions",
			"Page load verification",
			"Error handling scenarios",
			"Cross-browser compatibility",
			"Mobile responsiveness",
			"Accessibility compliance",
		),
		"Ensure JSON is properly formatted and complete.",
	}
	return strings.Join(sections, "\n\n")
}

// pageSummary renders one crawled page: header counts, then form details
// with their inputs, then button details.
func pageSummary(page domain.CrawlPage) string {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("Page: %s (%s)", page.Title, page.URL),
		fmt.Sprintf("Forms: %d", len(page.Forms)),
		fmt.Sprintf("Buttons: %d", len(page.Buttons)),
		fmt.Sprintf("Navigation: %d", len(page.Navigation)),
		"",
		"Form Details:",
	)
	for _, form := range page.Forms {
		lines = append(lines, fmt.Sprintf("  Action: %s, Method: %s", form.Action, form.Method))
		for _, input := range form.Inputs {
			requirement := "optional"
			if input.Required {
				requirement = "required"
			}
			lines = append(lines, fmt.Sprintf("    Input: %s - %s (%s)", input.Type, input.Name, requirement))
		}
	}
	lines = append(lines, "", "Button Details:")
	for _, button := range page.Buttons {
		lines = append(lines, fmt.Sprintf("  %s (%s)", button.Text, button.Type))
	}
	return strings.Join(lines, "\n")
}

func numbered(items ...string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return strings.Join(lines, "\n")
}
