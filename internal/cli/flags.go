package cli

import "qaforge/internal/config"

// Flags holds command-line flags
type Flags struct {
	DocPath      string
	CrawlPath    string
	InputPath    string
	ArtifactPath string
	Model        string
	CreateIssues bool
	OpenReview   bool
	UniqueRun    bool
	Limit        int
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		DocPath:      f.DocPath,
		CrawlPath:    f.CrawlPath,
		InputPath:    f.InputPath,
		ArtifactPath: f.ArtifactPath,
		Model:        f.Model,
		CreateIssues: f.CreateIssues,
		OpenReview:   f.OpenReview,
		UniqueRun:    f.UniqueRun,
		Limit:        f.Limit,
	}
}
