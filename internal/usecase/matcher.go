package usecase

import (
	"regexp"
	"strings"

	"github.com/medrec/backend/internal/domain"
)

// Package-level compiled regex pattern for performance. Unicode classes so
// Polish keywords like "ciśnienie" survive tokenization.
var tokenBoundaryRegex = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// Matcher scores a free-text query against the recommendation rule set.
type Matcher struct {
	rules *RuleRepository
}

// NewMatcher creates a matcher over the given rule repository.
func NewMatcher(rules *RuleRepository) *Matcher {
	return &Matcher{rules: rules}
}

// Match tokenizes the query and accumulates weighted scores per category.
//
// A rule keyword counts as matched when it appears as a whole token of the
// query or as a substring of the full normalized query. The substring test
// is what lets multi-word keywords like "pierwsza pomoc" fire even though
// they never show up as a single token. Each firing rule contributes
// weight × (matched keywords / total keywords) to every category it names.
//
// An empty or non-matching query yields an empty map; Match never fails.
func (m *Matcher) Match(query string) map[string]domain.CategoryScore {
	scores := make(map[string]domain.CategoryScore)

	normalized := strings.ToLower(strings.TrimSpace(query))
	if normalized == "" {
		return scores
	}
	tokens := tokenSet(normalized)

	for _, rule := range m.rules.Rules() {
		matched := matchedKeywords(rule.Keywords, tokens, normalized)
		if len(matched) == 0 {
			continue
		}

		quality := float64(len(matched)) / float64(len(rule.Keywords))
		if quality > 1 {
			quality = 1
		}

		for _, category := range rule.Categories {
			cs := scores[category]
			cs.Category = category
			cs.Score += rule.Weight * quality
			cs.MatchedKeywords = mergeKeywords(cs.MatchedKeywords, matched)
			scores[category] = cs
		}
	}

	return scores
}

// tokenSet splits a normalized query on non-alphanumeric boundaries into a
// set of tokens, collapsing duplicates.
func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenBoundaryRegex.Split(normalized, -1) {
		if tok != "" {
			set[tok] = true
		}
	}
	return set
}

// matchedKeywords applies the token and substring tests and returns the
// keywords that hit either one, in rule order.
func matchedKeywords(keywords []string, tokens map[string]bool, normalized string) []string {
	var matched []string
	for _, keyword := range keywords {
		kw := strings.ToLower(keyword)
		if tokens[kw] || strings.Contains(normalized, kw) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// mergeKeywords unions add into existing, preserving first-seen order.
func mergeKeywords(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, kw := range existing {
		seen[kw] = true
	}
	for _, kw := range add {
		if !seen[kw] {
			existing = append(existing, kw)
			seen[kw] = true
		}
	}
	return existing
}
