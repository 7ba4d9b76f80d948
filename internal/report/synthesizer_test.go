package report

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"
	"time"

	"qaforge/internal/artifact"
	"qaforge/internal/domain"
)

var testPNG = base64.StdEncoding.EncodeToString([]byte("fake-png-bytes"))

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", "2025-03-14 09:26:53")
	if err != nil {
		t.Fatalf("parse fixture time: %v", err)
	}
	return func() time.Time { return ts }
}

func newTestStore(t *testing.T) *artifact.Store {
	t.Helper()
	return artifact.NewStore(t.TempDir(), artifact.WithClock(fixedClock(t)))
}

func TestSynthesizer_Render_FailingRun(t *testing.T) {
	run := domain.ComparisonRun{
		OverallScore:  0.65,
		PagesCompared: 1,
		IssuesFound:   []domain.Discrepancy{{Type: "layout_shift", Severity: "high"}},
		ComparisonDetails: []domain.PageComparison{
			{
				PageName:        "Home",
				SimilarityScore: 0.5,
				FigmaImage:      testPNG,
				WebsiteImage:    testPNG,
				Differences: []domain.Discrepancy{
					{Type: "layout_shift", Severity: "high", Description: "Hero section moved 40px down"},
				},
			},
		},
	}

	store := newTestStore(t)
	syn := NewSynthesizer(WithClock(fixedClock(t)))
	res, err := syn.Render(run, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(res.HTMLPath)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	html := string(data)

	t.Run("header shows FAIL with one-decimal percentage", func(t *testing.T) {
		if !strings.Contains(html, `<span class="fail">65.0%</span>`) {
			t.Error("expected failing overall similarity in header")
		}
		if !strings.Contains(html, `<p class="fail">FAIL</p>`) {
			t.Error("expected FAIL status metric")
		}
	})

	t.Run("page section shows FAIL", func(t *testing.T) {
		if !strings.Contains(html, `<h2>Home - <span class="fail">50.0% Similarity</span></h2>`) {
			t.Error("expected failing Home section")
		}
	})

	t.Run("high severity discrepancy is red and humanized", func(t *testing.T) {
		if !strings.Contains(html, `style="color: red;"`) {
			t.Error("expected red marker for high severity")
		}
		if !strings.Contains(html, "HIGH - Layout Shift") {
			t.Error("expected upper-cased severity and title-cased type")
		}
		if !strings.Contains(html, "Hero section moved 40px down") {
			t.Error("expected discrepancy description")
		}
	})

	t.Run("images persisted and referenced relatively", func(t *testing.T) {
		if len(res.Pages) != 1 {
			t.Fatalf("expected 1 persisted page, got %d", len(res.Pages))
		}
		page := res.Pages[0]
		if page.Passed {
			t.Error("0.5 similarity must be classified FAIL")
		}
		for _, p := range []string{page.FigmaPath, page.WebsitePath} {
			if _, err := os.Stat(p); err != nil {
				t.Errorf("image not persisted: %v", err)
			}
		}
		if !strings.Contains(html, "screenshots/figma/figma_Home.png") {
			t.Error("expected relative figma image reference")
		}
		if !strings.Contains(html, "screenshots/website/website_Home.png") {
			t.Error("expected relative website image reference")
		}
	})
}

func TestSynthesizer_Render_PassAndSeverityMarkers(t *testing.T) {
	run := domain.ComparisonRun{
		OverallScore:  0.95,
		PagesCompared: 1,
		ComparisonDetails: []domain.PageComparison{
			{
				PageName:        "Landing Page",
				SimilarityScore: 0.92,
				FigmaImage:      testPNG,
				WebsiteImage:    testPNG,
				Differences: []domain.Discrepancy{
					{Type: "font_size", Severity: "low", Description: "Footer text 1px smaller"},
				},
			},
		},
	}

	store := newTestStore(t)
	res, err := NewSynthesizer(WithClock(fixedClock(t))).Render(run, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(res.HTMLPath)
	html := string(data)

	if !strings.Contains(html, `<p class="pass">PASS</p>`) {
		t.Error("expected PASS status")
	}
	if !strings.Contains(html, `style="color: orange;"`) {
		t.Error("expected orange marker for non-high severity")
	}
	if !strings.Contains(html, "LOW - Font Size") {
		t.Error("expected humanized low-severity entry")
	}
	// Page names with spaces map to underscored filenames.
	if !strings.Contains(html, "figma_Landing_Page.png") {
		t.Error("expected underscored image filename")
	}
}

func TestSynthesizer_Render_ExactThresholdFails(t *testing.T) {
	run := domain.ComparisonRun{
		OverallScore:  0.8,
		PagesCompared: 1,
		ComparisonDetails: []domain.PageComparison{
			{PageName: "Edge", SimilarityScore: 0.8, FigmaImage: testPNG, WebsiteImage: testPNG},
		},
	}

	store := newTestStore(t)
	res, err := NewSynthesizer(WithClock(fixedClock(t))).Render(run, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := os.ReadFile(res.HTMLPath)
	html := string(data)

	if !strings.Contains(html, `<p class="fail">FAIL</p>`) {
		t.Error("overall score of exactly 0.8 must be FAIL")
	}
	if res.Pages[0].Passed {
		t.Error("page score of exactly 0.8 must be FAIL")
	}
}

func TestSynthesizer_Render_Idempotent(t *testing.T) {
	run := domain.ComparisonRun{
		OverallScore:  0.9,
		PagesCompared: 1,
		ComparisonDetails: []domain.PageComparison{
			{PageName: "Home", SimilarityScore: 0.9, FigmaImage: testPNG, WebsiteImage: testPNG},
		},
	}

	store := newTestStore(t)
	syn := NewSynthesizer(WithClock(fixedClock(t)))

	first, err := syn.Render(run, store)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	a, _ := os.ReadFile(first.HTMLPath)

	second, err := syn.Render(run, store)
	if err != nil {
		t.Fatalf("re-render failed: %v", err)
	}
	b, _ := os.ReadFile(second.HTMLPath)

	if first.HTMLPath != second.HTMLPath {
		t.Error("report path must be fixed for the run")
	}
	if string(a) != string(b) {
		t.Error("re-render with identical input and clock must be byte-identical")
	}
}

func TestSynthesizer_Render_BadImageData(t *testing.T) {
	run := domain.ComparisonRun{
		OverallScore:  0.9,
		PagesCompared: 1,
		ComparisonDetails: []domain.PageComparison{
			{PageName: "Home", SimilarityScore: 0.9, FigmaImage: "!!not-base64!!", WebsiteImage: testPNG},
		},
	}

	_, err := NewSynthesizer(WithClock(fixedClock(t))).Render(run, newTestStore(t))
	if err == nil {
		t.Fatal("expected error for undecodable image data")
	}
	if !strings.Contains(err.Error(), "Home") {
		t.Errorf("error should name the page, got %v", err)
	}
}

func TestHumanizeType(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"layout_shift", "Layout Shift"},
		{"color_mismatch", "Color Mismatch"},
		{"missing_element", "Missing Element"},
		{"spacing", "Spacing"},
	}
	for _, tt := range tests {
		if got := humanizeType(tt.in); got != tt.expected {
			t.Errorf("humanizeType(%q) = %q, expected %q", tt.in, got, tt.expected)
		}
	}
}
