package report

import "html/template"

var reportTemplate = template.Must(template.New("comparison_report").Parse(`<!DOCTYPE html>
<html>
<head>
    <title>Design Comparison Report - {{.RunID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; }
        .header { background: #f0f0f0; padding: 20px; border-radius: 5px; margin-bottom: 20px; }
        .summary { display: flex; gap: 20px; margin-bottom: 30px; }
        .metric { background: #fff; padding: 15px; border: 1px solid #ddd; border-radius: 5px; text-align: center; }
        .page-comparison { border: 1px solid #ddd; margin-bottom: 30px; padding: 20px; border-radius: 5px; }
        .images-container { display: flex; gap: 20px; margin: 20px 0; }
        .image-section { flex: 1; text-align: center; }
        .image-section img { max-width: 100%; border: 1px solid #ccc; }
        .differences { background: #fff3cd; padding: 15px; border-radius: 5px; margin: 10px 0; }
        .pass { color: green; }
        .fail { color: red; }
        .discrepancy { background: #f8d7da; padding: 10px; margin: 5px 0; border-radius: 3px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Figma vs Website Design Comparison Report</h1>
        <p><strong>Generated:</strong> {{.Generated}}</p>
        <p><strong>Overall Similarity:</strong> <span class="{{.OverallStatusClass}}">{{.OverallPercent}}</span></p>
    </div>

    <div class="summary">
        <div class="metric">
            <h3>Pages Compared</h3>
            <p>{{.PagesCompared}}</p>
        </div>
        <div class="metric">
            <h3>Issues Found</h3>
            <p>{{.IssuesFound}}</p>
        </div>
        <div class="metric">
            <h3>Status</h3>
            <p class="{{.OverallStatusClass}}">{{.OverallStatus}}</p>
        </div>
    </div>
{{range .Pages}}
    <div class="page-comparison">
        <h2>{{.Name}} - <span class="{{.StatusClass}}">{{.Percent}} Similarity</span></h2>

        <div class="images-container">
            <div class="image-section">
                <h3>Figma Design</h3>
                <img src="{{.FigmaSrc}}" alt="Figma design for {{.Name}}">
            </div>
            <div class="image-section">
                <h3>Website Screenshot</h3>
                <img src="{{.WebsiteSrc}}" alt="Website screenshot for {{.Name}}">
            </div>
        </div>
{{if .Discrepancies}}
        <div class="differences"><h3>Discrepancies Found:</h3>
{{range .Discrepancies}}
            <div class="discrepancy">
                <strong style="color: {{.Color}};">{{.Severity}} - {{.Type}}</strong><br>
                {{.Description}}
            </div>
{{end}}
        </div>
{{end}}
    </div>
{{end}}
</body>
</html>
`))

type reportView struct {
	RunID              string
	Generated          string
	OverallPercent     string
	OverallStatus      string
	OverallStatusClass string
	PagesCompared      int
	IssuesFound        int
	Pages              []pageView
}

type pageView struct {
	Name          string
	Percent       string
	StatusClass   string
	FigmaSrc      string
	WebsiteSrc    string
	Discrepancies []discrepancyView
}

type discrepancyView struct {
	Severity    string
	Type        string
	Color       string
	Description string
}
