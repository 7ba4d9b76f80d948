// Package issues maps validated test-suite documents and comparison
// discrepancies into issue-tracker creation requests.
package issues

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"qaforge/internal/domain"
)

// IssueRequest is a tracker-agnostic issue payload.
type IssueRequest struct {
	Summary     string
	Description string
	IssueType   string
	Priority    string
	Labels      []string
}

// CreatedIssue records one successfully created tracker issue.
type CreatedIssue struct {
	Key   string
	Name  string
	Suite string
}

// Attachment is a file to attach to a created issue.
type Attachment struct {
	Path     string
	Filename string
}

// Tracker is the issue-tracker collaborator. Implementations own
// connection, auth, and any retry policy.
type Tracker interface {
	CreateIssue(ctx context.Context, projectKey string, req IssueRequest) (string, error)
	Attach(ctx context.Context, issueKey, path, filename string) error
}

// Progress receives creation counts while a batch runs.
type Progress interface {
	Update(created, failed int)
	Finish()
}

// Materializer builds tracker issues from pipeline artifacts.
type Materializer struct {
	tracker  Tracker
	logger   *slog.Logger
	now      func() time.Time
	progress Progress
}

// Option configures the Materializer.
type Option func(*Materializer)

// WithLogger configures structured logging (attachment warnings).
func WithLogger(l *slog.Logger) Option {
	return func(m *Materializer) {
		m.logger = l
	}
}

// WithClock overrides the clock used for generation timestamps in issue
// bodies.
func WithClock(now func() time.Time) Option {
	return func(m *Materializer) {
		m.now = now
	}
}

// NewMaterializer creates a new Materializer
func NewMaterializer(tracker Tracker, opts ...Option) *Materializer {
	m := &Materializer{
		tracker: tracker,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetProgress sets the progress reporter for issue batches.
func (m *Materializer) SetProgress(p Progress) {
	m.progress = p
}

// MaterializeTestCases creates one tracker issue per test case. Each
// individual creation failure is isolated: it is collected and the batch
// continues with the remaining cases.
func (m *Materializer) MaterializeTestCases(ctx context.Context, doc *domain.TestSuiteDocument, projectKey string) ([]CreatedIssue, []error) {
	var created []CreatedIssue
	var failures []error

	for _, suite := range doc.TestSuites {
		for _, tc := range suite.TestCases {
			req := IssueRequest{
				Summary:     fmt.Sprintf("[%s] %s", idOrDefault(tc.ID), tc.Name),
				Description: m.testCaseBody(suite, tc),
				IssueType:   "Test",
				Priority:    tc.Priority,
				Labels:      []string{"automated-test", "ai-generated", slugify(suite.SuiteName)},
			}

			key, err := m.tracker.CreateIssue(ctx, projectKey, req)
			if err != nil {
				failures = append(failures, fmt.Errorf("create test case %q: %w", tc.Name, err))
			} else {
				created = append(created, CreatedIssue{Key: key, Name: tc.Name, Suite: suite.SuiteName})
			}
			if m.progress != nil {
				m.progress.Update(len(created), len(failures))
			}
		}
	}
	if m.progress != nil {
		m.progress.Finish()
	}
	return created, failures
}

// testCaseBody renders the fixed-structure issue description for a test
// case.
func (m *Materializer) testCaseBody(suite domain.TestSuite, tc domain.TestCase) string {
	steps := make([]string, 0, len(tc.TestSteps))
	for i, step := range tc.TestSteps {
		steps = append(steps, fmt.Sprintf("%d. %s", i+1, step))
	}

	sections := []string{
		fmt.Sprintf("*Test Suite:* %s", suite.SuiteName),
		fmt.Sprintf("*Priority:* %s", tc.Priority),
		fmt.Sprintf("*Type:* %s", tc.Type),
		"",
		"*Description:*",
		tc.Description,
		"",
		"*Preconditions:*",
		tc.Preconditions,
		"",
		"*Test Steps:*",
		strings.Join(steps, "\n"),
		"",
		"*Expected Result:*",
		tc.ExpectedResult,
		"",
		"*Test Data:*",
		tc.TestData,
		"",
		fmt.Sprintf("*Automation Priority:* %s", tc.AutomationPriority),
		fmt.Sprintf("*Generated:* %s", m.now().Format("2006-01-02 15:04:05")),
	}
	return strings.Join(sections, "\n")
}

// MaterializeDiscrepancy creates one tracker bug for a visual discrepancy.
// Attachment failures are non-fatal: the issue key is still returned and
// the failure is logged as a warning.
func (m *Materializer) MaterializeDiscrepancy(ctx context.Context, pageName string, d domain.Discrepancy, projectKey string, attachments ...Attachment) (string, error) {
	issueType := d.Type
	if issueType == "" {
		issueType = "Design Mismatch"
	}

	priority := domain.PriorityMedium
	if d.Severity == domain.SeverityHigh {
		priority = domain.PriorityHigh
	}

	req := IssueRequest{
		Summary:     fmt.Sprintf("Design Issue: %s - %s", pageName, issueType),
		Description: m.discrepancyBody(pageName, issueType, d),
		IssueType:   "Bug",
		Priority:    priority,
		Labels:      []string{"design-comparison", "automated-testing", "figma-integration", "ui-bug"},
	}

	key, err := m.tracker.CreateIssue(ctx, projectKey, req)
	if err != nil {
		return "", fmt.Errorf("create design bug for %s: %w", pageName, err)
	}

	for _, att := range attachments {
		if err := m.tracker.Attach(ctx, key, att.Path, att.Filename); err != nil {
			m.logger.WarnContext(ctx, "attachment failed", "issue", key, "filename", att.Filename, "error", err)
		}
	}
	return key, nil
}

func (m *Materializer) discrepancyBody(pageName, issueType string, d domain.Discrepancy) string {
	description := d.Description
	if description == "" {
		description = "Design discrepancy detected between Figma design and website implementation"
	}

	sections := []string{
		"*Design Comparison Issue*",
		"",
		fmt.Sprintf("*Page:* %s", pageName),
		fmt.Sprintf("*Issue Type:* %s", issueType),
		fmt.Sprintf("*Severity:* %s", d.Severity),
		"",
		"*Description:*",
		description,
		"",
		"*Detection Method:* Automated Figma vs Website Comparison",
		fmt.Sprintf("*Timestamp:* %s", m.now().Format("2006-01-02 15:04:05")),
		"",
		"*Expected Result:* Website design should match Figma specifications",
		"*Actual Result:* Design discrepancies detected in automated comparison",
	}
	return strings.Join(sections, "\n")
}

// slugify lower-cases a suite name and replaces spaces with hyphens for
// use as a tracker label.
func slugify(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), " ", "-")
}

func idOrDefault(id string) string {
	if id == "" {
		return "TC"
	}
	return id
}
