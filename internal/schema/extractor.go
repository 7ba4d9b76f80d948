// Package schema extracts and validates a test-suite document embedded in
// free-form model output.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"qaforge/internal/domain"
)

// MalformedResponseError reports model output from which no valid document
// could be extracted. Raw always carries the full original text so callers
// can surface it for diagnosis; it must never be silently dropped.
type MalformedResponseError struct {
	Raw string
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// Result is a validated document plus any non-fatal validation warnings.
type Result struct {
	Document *domain.TestSuiteDocument
	Warnings []string
}

// Extract locates the JSON object between the first '{' and the last '}'
// of modelOutput, parses it, and normalizes optional fields. Markdown code
// fences around the object fall outside the brace span and need no special
// handling. Structural validation only: a document with zero suites is
// valid here and left to the caller to treat as "no test cases produced".
func Extract(modelOutput string) (*Result, error) {
	start := strings.Index(modelOutput, "{")
	end := strings.LastIndex(modelOutput, "}")
	if start < 0 || end <= start {
		return nil, &MalformedResponseError{Raw: modelOutput, Err: errors.New("no JSON object found")}
	}

	var doc domain.TestSuiteDocument
	if err := json.Unmarshal([]byte(modelOutput[start:end+1]), &doc); err != nil {
		return nil, &MalformedResponseError{Raw: modelOutput, Err: err}
	}

	warnings := normalize(&doc)
	return &Result{Document: &doc, Warnings: warnings}, nil
}

// normalize applies schema defaults in place and collects validation
// warnings. Empty test_steps and duplicate ids are warnings, not failures.
func normalize(doc *domain.TestSuiteDocument) []string {
	var warnings []string
	seen := make(map[string]bool)

	for si := range doc.TestSuites {
		suite := &doc.TestSuites[si]
		for ci := range suite.TestCases {
			tc := &suite.TestCases[ci]

			tc.Priority = normalizeEnum(tc.Priority, domain.PriorityMedium, priorities, tc.ID, "priority", &warnings)
			tc.Type = normalizeEnum(tc.Type, domain.TypeFunctional, caseTypes, tc.ID, "type", &warnings)
			tc.AutomationPriority = normalizeEnum(tc.AutomationPriority, domain.PriorityMedium, priorities, tc.ID, "automation_priority", &warnings)
			if tc.TestData == "" {
				tc.TestData = "N/A"
			}
			if tc.TestSteps == nil {
				tc.TestSteps = []string{}
			}
			if len(tc.TestSteps) == 0 {
				warnings = append(warnings, fmt.Sprintf("test case %s has no test steps", describe(tc)))
			}
			if tc.ID != "" {
				if seen[tc.ID] {
					warnings = append(warnings, fmt.Sprintf("duplicate test case id %s", tc.ID))
				}
				seen[tc.ID] = true
			}
		}
	}
	return warnings
}

var priorities = map[string]bool{
	domain.PriorityHigh:   true,
	domain.PriorityMedium: true,
	domain.PriorityLow:    true,
}

var caseTypes = map[string]bool{
	domain.TypeFunctional:  true,
	domain.TypeUI:          true,
	domain.TypeIntegration: true,
	domain.TypeNegative:    true,
}

// normalizeEnum defaults empty values silently and unknown values with a
// warning.
func normalizeEnum(value, fallback string, allowed map[string]bool, id, field string, warnings *[]string) string {
	if value == "" {
		return fallback
	}
	if !allowed[value] {
		*warnings = append(*warnings, fmt.Sprintf("test case %s has unknown %s %q, using %s", id, field, value, fallback))
		return fallback
	}
	return value
}

func describe(tc *domain.TestCase) string {
	if tc.ID != "" {
		return tc.ID
	}
	if tc.Name != "" {
		return fmt.Sprintf("%q", tc.Name)
	}
	return "(unnamed)"
}
