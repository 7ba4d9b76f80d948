package schema

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"qaforge/internal/domain"
)

func TestExtract_NoBraces(t *testing.T) {
	_, err := Extract("no braces here")

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Raw != "no braces here" {
		t.Errorf("original text must be preserved, got %q", malformed.Raw)
	}
}

func TestExtract_InvalidJSON(t *testing.T) {
	raw := "here is the result: {not valid json}"
	_, err := Extract(raw)

	var malformed *MalformedResponseError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if malformed.Raw != raw {
		t.Errorf("original text must be preserved, got %q", malformed.Raw)
	}
}

func TestExtract_SurroundingText(t *testing.T) {
	res, err := Extract(`prefix {"test_suites": []} suffix`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Document.TestSuites) != 0 {
		t.Errorf("expected empty suite sequence, got %d suites", len(res.Document.TestSuites))
	}
	if !res.Document.Empty() {
		t.Error("document should be empty")
	}
}

func TestExtract_MarkdownFence(t *testing.T) {
	raw := "```json\n{\"test_suites\": [{\"suite_name\": \"Login\", \"test_cases\": [{\"id\": \"TC001\", \"name\": \"Valid login\", \"test_steps\": [\"Open login page\"]}]}]}\n```"
	res, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Document.CaseCount() != 1 {
		t.Errorf("expected 1 test case, got %d", res.Document.CaseCount())
	}
}

func TestExtract_AppliesDefaults(t *testing.T) {
	raw := `{"test_suites": [{"suite_name": "S", "test_cases": [{"id": "TC001", "name": "minimal", "test_steps": ["step"]}]}]}`
	res, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tc := res.Document.TestSuites[0].TestCases[0]
	if tc.Priority != domain.PriorityMedium {
		t.Errorf("expected default priority Medium, got %q", tc.Priority)
	}
	if tc.Type != domain.TypeFunctional {
		t.Errorf("expected default type Functional, got %q", tc.Type)
	}
	if tc.Preconditions != "" {
		t.Errorf("expected empty preconditions, got %q", tc.Preconditions)
	}
	if tc.TestData != "N/A" {
		t.Errorf("expected default test data N/A, got %q", tc.TestData)
	}
	if tc.AutomationPriority != domain.PriorityMedium {
		t.Errorf("expected default automation priority Medium, got %q", tc.AutomationPriority)
	}
}

func TestExtract_Warnings(t *testing.T) {
	t.Run("empty test steps", func(t *testing.T) {
		raw := `{"test_suites": [{"suite_name": "S", "test_cases": [{"id": "TC001", "name": "no steps", "test_steps": []}]}]}`
		res, err := Extract(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "no test steps") {
			t.Errorf("expected empty-steps warning, got %v", res.Warnings)
		}
		if res.Document.TestSuites[0].TestCases[0].TestSteps == nil {
			t.Error("test_steps should default to an empty slice, not nil")
		}
	})

	t.Run("duplicate ids", func(t *testing.T) {
		raw := `{"test_suites": [{"suite_name": "S", "test_cases": [
			{"id": "TC001", "name": "a", "test_steps": ["s"]},
			{"id": "TC001", "name": "b", "test_steps": ["s"]}]}]}`
		res, err := Extract(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "duplicate") {
			t.Errorf("expected duplicate-id warning, got %v", res.Warnings)
		}
		if res.Document.CaseCount() != 2 {
			t.Error("duplicate cases must be kept, not dropped")
		}
	})

	t.Run("unknown enum value normalizes with warning", func(t *testing.T) {
		raw := `{"test_suites": [{"suite_name": "S", "test_cases": [{"id": "TC001", "name": "a", "priority": "Critical", "test_steps": ["s"]}]}]}`
		res, err := Extract(raw)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if res.Document.TestSuites[0].TestCases[0].Priority != domain.PriorityMedium {
			t.Error("unknown priority should normalize to Medium")
		}
		if len(res.Warnings) != 1 {
			t.Errorf("expected one warning, got %v", res.Warnings)
		}
	})
}

// Rendering a fully-populated document and re-extracting it must yield a
// structurally equal document.
func TestExtract_RoundTrip(t *testing.T) {
	doc := domain.TestSuiteDocument{
		TestSuites: []domain.TestSuite{
			{
				SuiteName:   "Authentication",
				Description: "Login and session handling",
				TestCases: []domain.TestCase{
					{
						ID:                 "TC001",
						Name:               "Valid login",
						Priority:           domain.PriorityHigh,
						Type:               domain.TypeFunctional,
						Description:        "Login with valid credentials",
						Preconditions:      "Account exists",
						TestSteps:          []string{"Open login page", "Enter credentials", "Submit"},
						ExpectedResult:     "User is logged in",
						TestData:           "user@example.com / secret",
						AutomationPriority: domain.PriorityHigh,
					},
					{
						ID:                 "TC002",
						Name:               "Invalid password",
						Priority:           domain.PriorityMedium,
						Type:               domain.TypeNegative,
						Description:        "Login rejected with wrong password",
						Preconditions:      "Account exists",
						TestSteps:          []string{"Open login page", "Enter wrong password", "Submit"},
						ExpectedResult:     "Error message shown",
						TestData:           "user@example.com / wrong",
						AutomationPriority: domain.PriorityMedium,
					},
				},
			},
		},
	}

	rendered, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	res, err := Extract("Here are the generated test cases:\n" + string(rendered) + "\nLet me know if you need more.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("well-formed document should produce no warnings, got %v", res.Warnings)
	}
	if !reflect.DeepEqual(*res.Document, doc) {
		t.Errorf("round-trip mismatch:\ngot  %+v\nwant %+v", *res.Document, doc)
	}
}

// Unique ids across a valid document (generation contract, checked as a
// content-shape property).
func TestExtract_UniqueIDsProduceNoWarnings(t *testing.T) {
	raw := `{"test_suites": [
		{"suite_name": "A", "test_cases": [{"id": "TC001", "name": "a", "test_steps": ["s"]}]},
		{"suite_name": "B", "test_cases": [{"id": "TC002", "name": "b", "test_steps": ["s"]}]}]}`
	res, err := Extract(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unique ids should produce no warnings, got %v", res.Warnings)
	}
}
