package domain

// Priority levels carried by generated test cases.
const (
	PriorityHigh   = "High"
	PriorityMedium = "Medium"
	PriorityLow    = "Low"
)

// Test case types produced by generation.
const (
	TypeFunctional  = "Functional"
	TypeUI          = "UI"
	TypeIntegration = "Integration"
	TypeNegative    = "Negative"
)

// TestCase is a single generated test case. Field names and JSON tags match
// the generation schema exactly; optional fields are defaulted during
// extraction, never here.
type TestCase struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Priority           string   `json:"priority"`
	Type               string   `json:"type"`
	Description        string   `json:"description"`
	Preconditions      string   `json:"preconditions"`
	TestSteps          []string `json:"test_steps"`
	ExpectedResult     string   `json:"expected_result"`
	TestData           string   `json:"test_data"`
	AutomationPriority string   `json:"automation_priority"`
	Reviewed           bool     `json:"reviewed,omitempty"` // set by the review viewer, not by generation
}

// TestSuite groups test cases sharing a theme.
type TestSuite struct {
	SuiteName   string     `json:"suite_name"`
	Description string     `json:"description"`
	TestCases   []TestCase `json:"test_cases"`
}

// TestSuiteDocument is the validated output of a generation run.
type TestSuiteDocument struct {
	TestSuites []TestSuite `json:"test_suites"`
}

// CaseCount returns the total number of test cases across all suites.
func (d *TestSuiteDocument) CaseCount() int {
	var total int
	for _, s := range d.TestSuites {
		total += len(s.TestCases)
	}
	return total
}

// Empty reports whether the document contains no test cases at all.
// A structurally valid but empty document is treated as a generation
// failure by callers, not by the extractor.
func (d *TestSuiteDocument) Empty() bool {
	return d.CaseCount() == 0
}
