package models

// SearchQuery holds the tunable parameters of a visual search request.
type SearchQuery struct {
	// TopK caps the number of returned matches. Zero means the
	// configured default.
	TopK int `json:"top_k,omitempty"`
	// MinSimilarity is the confidence floor in [0, 1]; matches scoring
	// exactly the floor are included.
	MinSimilarity float64 `json:"min_similarity,omitempty"`
}

// Normalize clamps the query against configured limits: TopK defaults
// to def, is raised to at least 1, and capped at max; MinSimilarity is
// clamped to [0, 1].
func (q *SearchQuery) Normalize(def, max int) {
	if q.TopK == 0 {
		q.TopK = def
	}
	if q.TopK < 1 {
		q.TopK = 1
	}
	if q.TopK > max {
		q.TopK = max
	}
	if q.MinSimilarity < 0 {
		q.MinSimilarity = 0
	}
	if q.MinSimilarity > 1 {
		q.MinSimilarity = 1
	}
}
