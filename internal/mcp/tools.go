package mcp

// SearchInput defines the input schema for the search_site tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query; queries shorter than two characters return no results"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results, default 10, at most 20"`
}

// SearchOutput defines the output schema for the search_site tool.
type SearchOutput struct {
	Query    string         `json:"query" jsonschema:"the normalized query"`
	Searched bool           `json:"searched" jsonschema:"false when the query was too short to search"`
	Results  []ResultOutput `json:"results" jsonschema:"matching pages, best first"`
}

// ResultOutput is one matching page.
type ResultOutput struct {
	Title   string  `json:"title" jsonschema:"page title"`
	URL     string  `json:"url" jsonschema:"page link, absolute when the site origin is known"`
	Snippet string  `json:"snippet,omitempty" jsonschema:"plain-text excerpt around the first match"`
	Score   float64 `json:"score" jsonschema:"relevance score, higher is better"`
}

// IndexStatusInput defines the input schema for the index_status tool (no parameters).
type IndexStatusInput struct{}

// IndexStatusOutput defines the output schema for the index_status tool.
type IndexStatusOutput struct {
	State     string   `json:"state" jsonschema:"loading, ready or failed"`
	Status    string   `json:"status" jsonschema:"the status line shown on the search page"`
	Documents int      `json:"documents"`
	Fields    []string `json:"fields,omitempty" jsonschema:"searchable fields of the index"`
	IndexURL  string   `json:"index_url,omitempty"`
	Error     string   `json:"error,omitempty" jsonschema:"why loading failed"`
}
