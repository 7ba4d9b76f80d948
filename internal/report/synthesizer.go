// Package report turns structured comparison results into a persisted,
// self-contained HTML report with deterministic pass/fail classification.
package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"

	"qaforge/internal/artifact"
	"qaforge/internal/domain"
)

// PersistedPage records where a page's images landed on disk, for callers
// that attach them to tracker issues.
type PersistedPage struct {
	Name        string
	Passed      bool
	FigmaPath   string
	WebsitePath string
}

// RenderResult is the outcome of one report render.
type RenderResult struct {
	HTMLPath string
	Pages    []PersistedPage
}

// Synthesizer renders comparison runs into HTML reports.
type Synthesizer struct {
	now func() time.Time
}

// Option configures the Synthesizer.
type Option func(*Synthesizer)

// WithClock overrides the clock used for the generation timestamp, so
// renders of identical input are byte-identical.
func WithClock(now func() time.Time) Option {
	return func(s *Synthesizer) {
		s.now = now
	}
}

// NewSynthesizer creates a new Synthesizer
func NewSynthesizer(opts ...Option) *Synthesizer {
	s := &Synthesizer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Render persists every page's images through the store and writes the
// HTML report at the store's fixed report path. The file is written to a
// temporary name and renamed, so an aborted run never leaves a partial
// comparison_report.html behind. Re-invocation overwrites idempotently.
func (s *Synthesizer) Render(run domain.ComparisonRun, store *artifact.Store) (*RenderResult, error) {
	if err := store.EnsureDirs(); err != nil {
		return nil, err
	}

	view := reportView{
		RunID:              store.RunID(),
		Generated:          s.now().Format("2006-01-02 15:04:05"),
		OverallPercent:     formatPercent(run.OverallScore),
		OverallStatus:      statusLabel(run.OverallScore),
		OverallStatusClass: statusClass(run.OverallScore),
		PagesCompared:      run.PagesCompared,
		IssuesFound:        len(run.IssuesFound),
	}

	result := &RenderResult{}
	for _, detail := range run.ComparisonDetails {
		figma, err := base64.StdEncoding.DecodeString(detail.FigmaImage)
		if err != nil {
			return nil, fmt.Errorf("decode figma image for %s: %w", detail.PageName, err)
		}
		website, err := base64.StdEncoding.DecodeString(detail.WebsiteImage)
		if err != nil {
			return nil, fmt.Errorf("decode website image for %s: %w", detail.PageName, err)
		}

		name := strings.ReplaceAll(detail.PageName, " ", "_")
		figmaPath, err := store.Save(figma, "figma_"+name+".png", "figma")
		if err != nil {
			return nil, err
		}
		websitePath, err := store.Save(website, "website_"+name+".png", "website")
		if err != nil {
			return nil, err
		}

		pv := pageView{
			Name:        detail.PageName,
			Percent:     formatPercent(detail.SimilarityScore),
			StatusClass: statusClass(detail.SimilarityScore),
			FigmaSrc:    store.Rel(figmaPath),
			WebsiteSrc:  store.Rel(websitePath),
		}
		for _, d := range detail.Differences {
			color := "orange"
			if d.Severity == domain.SeverityHigh {
				color = "red"
			}
			pv.Discrepancies = append(pv.Discrepancies, discrepancyView{
				Severity:    strings.ToUpper(d.Severity),
				Type:        humanizeType(d.Type),
				Color:       color,
				Description: d.Description,
			})
		}
		view.Pages = append(view.Pages, pv)

		result.Pages = append(result.Pages, PersistedPage{
			Name:        detail.PageName,
			Passed:      domain.Passed(detail.SimilarityScore),
			FigmaPath:   figmaPath,
			WebsitePath: websitePath,
		})
	}

	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}

	if err := writeAtomic(store.ReportRoot(), store.HTMLPath(), buf.Bytes()); err != nil {
		return nil, err
	}

	result.HTMLPath = store.HTMLPath()
	return result, nil
}

// writeAtomic writes data to a temporary file in dir and renames it onto
// path.
func writeAtomic(dir, path string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "comparison_report_*.html")
	if err != nil {
		return fmt.Errorf("create temp report: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close report: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename report: %w", err)
	}
	return nil
}

// formatPercent renders a [0,1] score as a percentage with one decimal.
func formatPercent(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func statusLabel(score float64) string {
	if domain.Passed(score) {
		return "PASS"
	}
	return "FAIL"
}

func statusClass(score float64) string {
	if domain.Passed(score) {
		return "pass"
	}
	return "fail"
}

// humanizeType turns a discrepancy type like "color_mismatch" into
// "Color Mismatch".
func humanizeType(t string) string {
	words := strings.Fields(strings.ReplaceAll(t, "_", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
