package domain

// Product represents a single item from the medical supply catalog.
// Products are created on catalog load and never mutated afterwards.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// RecommendationRule maps a keyword set to the product categories that
// should be recommended when any of the keywords appear in a query.
type RecommendationRule struct {
	Keywords    []string
	Categories  []string
	Weight      float64
	Description string
}

// CategoryScore is the accumulated match score for one product category,
// with the keywords that contributed to it.
type CategoryScore struct {
	Category        string   `json:"category"`
	Score           float64  `json:"score"`
	MatchedKeywords []string `json:"matchedKeywords,omitempty"`
}

// Recommendation is the result of a recommendation request.
type Recommendation struct {
	Query      string    `json:"query"`
	Products   []Product `json:"products"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning"`
}
