// Package storage persists generated test suite documents as JSON
// artifacts alongside run metadata.
package storage

import "qaforge/internal/domain"

// Meta carries provenance for a generated document.
type Meta struct {
	Source      string   `json:"source"`
	Kind        string   `json:"kind"`
	Model       string   `json:"model"`
	SuiteCount  int      `json:"suite_count"`
	CaseCount   int      `json:"case_count"`
	Warnings    []string `json:"warnings,omitempty"`
	GeneratedAt string   `json:"generated_at"`
}

// Document is a test suite document together with its generation metadata.
type Document struct {
	Meta Meta `json:"meta"`
	domain.TestSuiteDocument
}

// Storage abstracts document persistence.
type Storage interface {
	Save(doc *Document, path string) error
	Load(path string) (*Document, error)
}
