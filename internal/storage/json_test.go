package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"qaforge/internal/domain"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	doc := &Document{
		Meta: Meta{
			Source:      "requirements.pdf",
			Kind:        "requirements",
			Model:       "llama-3.3-70b-versatile",
			SuiteCount:  1,
			CaseCount:   1,
			Warnings:    []string{"test case TC001 has no test steps"},
			GeneratedAt: "2025-03-14T09:26:53Z",
		},
		TestSuiteDocument: domain.TestSuiteDocument{
			TestSuites: []domain.TestSuite{
				{
					SuiteName: "Authentication",
					TestCases: []domain.TestCase{
						{
							ID:                 "TC001",
							Name:               "Valid login",
							Priority:           domain.PriorityHigh,
							Type:               domain.TypeFunctional,
							Description:        "Login with valid credentials",
							TestSteps:          []string{},
							ExpectedResult:     "User is logged in",
							TestData:           "N/A",
							AutomationPriority: domain.PriorityMedium,
						},
					},
				},
			},
		},
	}

	path := filepath.Join(t.TempDir(), "nested", "test_cases.json")
	store := NewJSONStorage()
	if err := store.Save(doc, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Errorf("loaded document differs:\ngot  %+v\nwant %+v", loaded, doc)
	}
}

func TestSaveInlinesSuites(t *testing.T) {
	doc := &Document{
		Meta: Meta{Kind: "crawl"},
		TestSuiteDocument: domain.TestSuiteDocument{
			TestSuites: []domain.TestSuite{{SuiteName: "Navigation"}},
		},
	}

	path := filepath.Join(t.TempDir(), "test_cases.json")
	if err := NewJSONStorage().Save(doc, path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"test_suites"`) {
		t.Errorf("document should inline test_suites at the top level:\n%s", data)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := NewJSONStorage().Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
