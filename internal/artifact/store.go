// Package artifact manages the timestamped on-disk report tree for a
// single run. The store exclusively owns its tree; no other component
// writes into it directly.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Filenames fixed within a run's report root.
const (
	ReportFilename   = "comparison_report.html"
	DocumentFilename = "test_cases.json"
	RunPrefix        = "test_report_"
)

// Store manages one artifact run. Construct once per run; the identifier
// and all returned paths are stable for the run's lifetime. Two runs
// starting within the same second share a directory (last-write-wins)
// unless WithUniqueSuffix is used.
type Store struct {
	baseDir string
	runID   string
	root    string
}

// Option configures the Store during construction.
type Option func(*options)

type options struct {
	now    func() time.Time
	suffix string
}

// WithClock overrides the clock used to derive the run identifier.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithUniqueSuffix appends a random suffix to the run identifier for
// callers that need strict isolation between runs started within the same
// second.
func WithUniqueSuffix() Option {
	return func(o *options) {
		o.suffix = uuid.NewString()[:8]
	}
}

// NewStore creates a store rooted at baseDir/test_report_<timestamp>.
// Directories are created lazily; creating an existing directory is never
// an error.
func NewStore(baseDir string, opts ...Option) *Store {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	runID := o.now().Format("20060102_150405")
	if o.suffix != "" {
		runID += "_" + o.suffix
	}

	return &Store{
		baseDir: baseDir,
		runID:   runID,
		root:    filepath.Join(baseDir, RunPrefix+runID),
	}
}

// RunID returns the timestamp-derived run identifier.
func (s *Store) RunID() string {
	return s.runID
}

// ReportRoot returns the run's report directory.
func (s *Store) ReportRoot() string {
	return s.root
}

// ScreenshotsDir returns the run's screenshots directory.
func (s *Store) ScreenshotsDir() string {
	return filepath.Join(s.root, "screenshots")
}

// ComparisonsDir returns the run's comparisons directory.
func (s *Store) ComparisonsDir() string {
	return filepath.Join(s.root, "comparisons")
}

// HTMLPath returns the fixed path of the run's comparison report.
func (s *Store) HTMLPath() string {
	return filepath.Join(s.root, ReportFilename)
}

// DocumentPath returns the fixed path of the run's generated test-suite
// document.
func (s *Store) DocumentPath() string {
	return filepath.Join(s.root, DocumentFilename)
}

// EnsureDirs creates the run's directory tree. Idempotent.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.ScreenshotsDir(), s.ComparisonsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create report dir: %w", err)
		}
	}
	return nil
}

// Save writes image bytes under screenshots/<subfolder>/<filename>,
// creating intermediate directories as needed, and returns an absolute
// path. An existing file of the same name is overwritten without warning.
func (s *Store) Save(data []byte, filename, subfolder string) (string, error) {
	dir := s.ScreenshotsDir()
	if subfolder != "" {
		dir = filepath.Join(dir, subfolder)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create screenshots dir: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write %s: %w", filename, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}

// Rel returns path relative to the report root, for referencing saved
// images from generated HTML.
func (s *Store) Rel(path string) string {
	root := s.root
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return rel
}
