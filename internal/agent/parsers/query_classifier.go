package parsers

import (
	"github.com/gadget-scout/server/internal/agent/model"
)

// Keyword vocabularies for the intent rules. All matching is word-bounded
// against normalized text.
var (
	contrastMarkers = []string{"vs", "versus", "compare", "comparison", "better", "difference", "or"}

	attributeKeywords = []string{
		"battery", "camera", "price", "cost", "display", "screen",
		"performance", "storage", "specs", "speed", "charging", "photo",
	}

	priceKeywords = []string{"price", "cost", "how much", "cheapest", "deal", "expensive"}

	reviewKeywords = []string{
		"review", "reviews", "opinion", "opinions", "users say",
		"rating", "worth it", "pros and cons",
	}

	recommendKeywords = []string{
		"best", "recommend", "suggest", "should i buy", "should i get", "which phone",
	}

	specKeywords = []string{
		"spec", "specs", "specification", "tell me about", "what is",
		"what are", "ram", "processor", "details",
	}
)

// Classify maps one normalized query onto exactly one intent type. Rules are
// evaluated in fixed priority order; the first that fires wins, so the result
// is deterministic for identical inputs. entities are the device names already
// extracted from the query, historyLen is the session's history length before
// this query is committed.
func Classify(text string, entities []string, historyLen int) model.QueryType {
	if text == "" {
		return model.QueryGeneral
	}

	switch {
	case deviceLikeCount(text, entities) >= 2 && hasAnyPhrase(text, contrastMarkers):
		return model.QueryComparison
	case historyLen > 0 && len(entities) == 0 && hasAnyPhrase(text, attributeKeywords):
		return model.QueryFollowUp
	case len(entities) <= 1 && hasAnyPhrase(text, priceKeywords):
		return model.QueryPriceCheck
	case hasAnyPhrase(text, reviewKeywords):
		return model.QueryReviewLookup
	case len(entities) == 0 && hasAnyPhrase(text, recommendKeywords):
		return model.QueryRecommendation
	case len(entities) == 1 && hasAnyPhrase(text, specKeywords):
		return model.QuerySpecificInfo
	default:
		return model.QueryGeneral
	}
}

// deviceLikeCount counts distinct device references in the text. Bare brand
// mentions count too, so "samsung vs iphone" reads as a comparison even
// though neither side resolves to a canonical device; the unresolved sides
// then surface as missing slots downstream.
func deviceLikeCount(text string, entities []string) int {
	brands := 0
	for _, rule := range brandRules {
		if containsAnyWord(text, rule.Keywords) >= 0 {
			brands++
		}
	}
	if len(entities) > brands {
		return len(entities)
	}
	return brands
}

// hasAnyPhrase matches single words at word boundaries and multi-word
// phrases by bounded substring.
func hasAnyPhrase(text string, phrases []string) bool {
	for _, p := range phrases {
		if indexWord(text, p) >= 0 {
			return true
		}
	}
	return false
}
