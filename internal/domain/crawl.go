package domain

// CrawlInput is a single form input discovered by the crawler.
type CrawlInput struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Required bool   `json:"required"`
}

// CrawlForm is a form discovered on a crawled page.
type CrawlForm struct {
	Action string       `json:"action"`
	Method string       `json:"method"`
	Inputs []CrawlInput `json:"inputs"`
}

// CrawlButton is a clickable element discovered on a crawled page.
type CrawlButton struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// CrawlLink is a navigation link discovered on a crawled page.
type CrawlLink struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// CrawlPage is the inventory of one crawled page.
type CrawlPage struct {
	URL        string        `json:"url"`
	Title      string        `json:"title"`
	Content    string        `json:"content"`
	Forms      []CrawlForm   `json:"forms"`
	Buttons    []CrawlButton `json:"buttons"`
	Navigation [][]CrawlLink `json:"navigation"`
}

// CrawlData is the full output of the external crawler, consumed as a JSON
// file by the generate command.
type CrawlData struct {
	Pages []CrawlPage `json:"pages"`
}
