package domain

import "testing"

func TestPassed_ThresholdBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected bool
	}{
		{name: "exactly at threshold fails", score: 0.8, expected: false},
		{name: "just above threshold passes", score: 0.8000001, expected: true},
		{name: "perfect score passes", score: 1.0, expected: true},
		{name: "zero score fails", score: 0.0, expected: false},
		{name: "well below threshold fails", score: 0.5, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Passed(tt.score); got != tt.expected {
				t.Errorf("Passed(%v) = %v, expected %v", tt.score, got, tt.expected)
			}
		})
	}
}

func TestTestSuiteDocument_CaseCount(t *testing.T) {
	doc := &TestSuiteDocument{
		TestSuites: []TestSuite{
			{SuiteName: "A", TestCases: []TestCase{{ID: "TC001"}, {ID: "TC002"}}},
			{SuiteName: "B", TestCases: []TestCase{{ID: "TC003"}}},
		},
	}

	if got := doc.CaseCount(); got != 3 {
		t.Errorf("expected 3 test cases, got %d", got)
	}
	if doc.Empty() {
		t.Error("document with cases should not be empty")
	}

	empty := &TestSuiteDocument{TestSuites: []TestSuite{{SuiteName: "A"}}}
	if !empty.Empty() {
		t.Error("document without cases should be empty")
	}
}
