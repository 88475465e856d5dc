package models

// SearchMatch represents a single ranked hit from a visual search.
type SearchMatch struct {
	Product *Product `json:"product"`
	// Confidence is the similarity mapped to [0, 1]; 0.5 means the
	// embeddings are orthogonal, 1.0 identical.
	Confidence float64 `json:"confidence"`
	Rank       int     `json:"rank"`
}

// SearchResponse is the response for a visual search request.
// TotalMatches counts every catalog item meeting the confidence
// threshold, so it can exceed len(Matches) when top-k truncates.
type SearchResponse struct {
	Matches      []*SearchMatch `json:"matches"`
	TotalMatches int            `json:"total_matches"`
	QueryTime    int64          `json:"query_time_ms"`
}

// CatalogPage is one page of the catalog listing, most recent first.
type CatalogPage struct {
	Items      []*Product `json:"items"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalItems int        `json:"total_items"`
	TotalPages int        `json:"total_pages"`
}

// Stats reports service and index state for the status endpoint.
type Stats struct {
	State          string  `json:"state"`
	ProductCount   int     `json:"product_count"`
	Dimension      int     `json:"dimension"`
	ModelID        string  `json:"model_id"`
	DiskUsageBytes int64   `json:"disk_usage_bytes"`
	DefaultTopK    int     `json:"default_top_k"`
	MaxTopK        int     `json:"max_top_k"`
	MinSimilarity  float64 `json:"min_similarity"`
}
