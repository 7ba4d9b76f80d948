package domain

// Discrepancy severities as reported by the comparison engine.
const (
	SeverityLow    = "low"
	SeverityMedium = "medium"
	SeverityHigh   = "high"
)

// PassThreshold is the similarity score a run or page must strictly exceed
// to be classified PASS. A score of exactly 0.8 is a FAIL.
const PassThreshold = 0.8

// Passed classifies a similarity score against the fixed threshold.
func Passed(score float64) bool {
	return score > PassThreshold
}

// Discrepancy is a single detected visual difference between a reference
// design and its implementation.
type Discrepancy struct {
	Type        string `json:"type"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
}

// PageComparison holds the per-page result of a visual comparison. Images
// arrive base64-encoded from the comparison engine.
type PageComparison struct {
	PageName        string        `json:"page_name"`
	SimilarityScore float64       `json:"similarity_score"`
	FigmaImage      string        `json:"figma_image"`
	WebsiteImage    string        `json:"website_image"`
	Differences     []Discrepancy `json:"differences"`
}

// ComparisonRun is the full input of one comparison, as produced by the
// external comparison engine. PagesCompared should equal
// len(ComparisonDetails); a mismatch is reported as a warning.
type ComparisonRun struct {
	OverallScore      float64          `json:"overall_score"`
	PagesCompared     int              `json:"pages_compared"`
	IssuesFound       []Discrepancy    `json:"issues_found"`
	ComparisonDetails []PageComparison `json:"comparison_details"`
}
