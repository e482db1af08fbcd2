package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/medrec/backend/internal/domain"
)

// maxRuleWeight is the highest weight a single rule can carry; category
// scores are normalized against it when computing confidence.
const maxRuleWeight = 1.0

const (
	defaultMaxProducts = 10

	// coverageBonus is added to confidence for every selected category
	// beyond the first.
	coverageBonus = 0.05

	// emptyResultPenalty scales confidence down when the matched categories
	// held no products. The result stays above zero as long as a rule fired.
	emptyResultPenalty = 0.25

	// reasoningCategoryLimit caps how many categories the reasoning string
	// names.
	reasoningCategoryLimit = 3
)

// RecommenderConfig holds configuration for the recommendation engine.
type RecommenderConfig struct {
	EnableDebugLogging bool
}

// Recommender combines matcher output with the cached product catalog to
// produce recommendations.
type Recommender struct {
	matcher  *Matcher
	provider domain.ProductProvider
	debug    bool
}

// NewRecommender creates a recommendation engine with the given dependencies.
func NewRecommender(matcher *Matcher, provider domain.ProductProvider, config RecommenderConfig) *Recommender {
	return &Recommender{
		matcher:  matcher,
		provider: provider,
		debug:    config.EnableDebugLogging,
	}
}

// Recommend generates product recommendations for a free-text query.
//
// Categories are ranked by descending matcher score; any category with a
// positive score qualifies. Qualifying products are sorted by ascending
// price with the id as tie-break and truncated to maxProducts. When the
// selected categories hold no products the result is an empty list with a
// degraded confidence, never a fallback to the full catalog.
//
// Confidence is 0 exactly when no rule matched. Otherwise it is the best
// category score normalized against maxRuleWeight, plus coverageBonus per
// extra selected category, clamped to [0,1]; an empty product list scales
// it by emptyResultPenalty.
func (r *Recommender) Recommend(ctx context.Context, query string, maxProducts int) (*domain.Recommendation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, domain.ErrInvalidQuery
	}
	if maxProducts < 1 {
		maxProducts = defaultMaxProducts
	}

	scores := r.matcher.Match(query)
	selected := rankCategories(scores)

	if r.debug {
		log.Printf("[RECOMMEND] query=%q selected categories: %v", query, selected)
	}

	if len(selected) == 0 {
		return &domain.Recommendation{
			Query:      query,
			Products:   []domain.Product{},
			Confidence: 0,
			Reasoning:  "Nie znaleziono pasującej kategorii dla zapytania.",
		}, nil
	}

	catalog, err := r.provider.Products(ctx)
	if err != nil {
		return nil, err
	}

	products := filterByCategories(catalog, selected)
	sortProducts(products)
	if len(products) > maxProducts {
		products = products[:maxProducts]
	}

	best := scores[selected[0]]
	confidence := confidenceFor(best.Score, len(selected), len(products) > 0)
	reasoning := buildReasoning(selected, best.MatchedKeywords, len(products) > 0)

	if r.debug {
		log.Printf("[RECOMMEND] query=%q products=%d confidence=%.2f", query, len(products), confidence)
	}

	return &domain.Recommendation{
		Query:      query,
		Products:   products,
		Confidence: confidence,
		Reasoning:  reasoning,
	}, nil
}

// Products returns the current catalog snapshot.
func (r *Recommender) Products(ctx context.Context) ([]domain.Product, error) {
	return r.provider.Products(ctx)
}

// Categories groups the current catalog snapshot by category and returns the
// product count per category.
func (r *Recommender) Categories(ctx context.Context) (map[string]int, error) {
	catalog, err := r.provider.Products(ctx)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, p := range catalog {
		counts[p.Category]++
	}
	return counts, nil
}

// rankCategories returns the categories with a positive score, ordered by
// descending score with the category key as tie-break for determinism.
func rankCategories(scores map[string]domain.CategoryScore) []string {
	selected := make([]string, 0, len(scores))
	for category, cs := range scores {
		if cs.Score > 0 {
			selected = append(selected, category)
		}
	}
	sort.Slice(selected, func(i, j int) bool {
		si, sj := scores[selected[i]].Score, scores[selected[j]].Score
		if si != sj {
			return si > sj
		}
		return selected[i] < selected[j]
	})
	return selected
}

func filterByCategories(catalog []domain.Product, categories []string) []domain.Product {
	wanted := make(map[string]bool, len(categories))
	for _, c := range categories {
		wanted[c] = true
	}

	products := make([]domain.Product, 0)
	for _, p := range catalog {
		if wanted[p.Category] {
			products = append(products, p)
		}
	}
	return products
}

func sortProducts(products []domain.Product) {
	sort.Slice(products, func(i, j int) bool {
		if products[i].Price != products[j].Price {
			return products[i].Price < products[j].Price
		}
		return products[i].ID < products[j].ID
	})
}

func confidenceFor(bestScore float64, categoryCount int, hasProducts bool) float64 {
	base := bestScore / maxRuleWeight
	if base > 1 {
		base = 1
	}

	confidence := base + coverageBonus*float64(categoryCount-1)
	if confidence > 1 {
		confidence = 1
	}
	if !hasProducts {
		confidence *= emptyResultPenalty
	}
	return confidence
}

func buildReasoning(selected []string, matchedKeywords []string, hasProducts bool) string {
	named := selected
	if len(named) > reasoningCategoryLimit {
		named = named[:reasoningCategoryLimit]
	}
	categories := strings.Join(named, ", ")

	if !hasProducts {
		return fmt.Sprintf("Brak produktów w dopasowanych kategoriach: %s.", categories)
	}
	return fmt.Sprintf("Rekomendacje na podstawie kategorii: %s (dopasowane słowa: %s).",
		categories, strings.Join(matchedKeywords, ", "))
}
