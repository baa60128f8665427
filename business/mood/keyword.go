package mood

import (
	"regexp"
	"sort"
	"strings"
)

// defaultLexicon is the built-in emotion keyword table. It can be replaced
// wholesale by a lexicon configuration file.
var defaultLexicon = map[string][]string{
	"happy":   {"happy", "joy", "excited", "great", "amazing", "wonderful", "fantastic", "love", "excellent"},
	"sad":     {"sad", "depressed", "down", "miserable", "awful", "terrible", "horrible", "crying", "tears"},
	"angry":   {"angry", "mad", "furious", "irritated", "annoyed", "frustrated", "hate", "rage"},
	"anxious": {"anxious", "worried", "nervous", "scared", "afraid", "panic", "stress", "overwhelmed"},
	"calm":    {"calm", "peaceful", "relaxed", "serene", "tranquil", "content", "balanced"},
	"tired":   {"tired", "exhausted", "sleepy", "drained", "weary", "fatigue"},
}

var wordPattern = regexp.MustCompile(`\w+`)

// KeywordScorer scores text against per-category trigger-word lists.
// Plain token membership only: no stemming, no negation handling.
type KeywordScorer struct {
	categories []string
	triggers   map[string]map[string]bool
}

// NewKeywordScorer builds a scorer from the given lexicon, or from the
// built-in table when lexicon is nil.
func NewKeywordScorer(lexicon map[string][]string) *KeywordScorer {
	if lexicon == nil {
		lexicon = defaultLexicon
	}

	categories := make([]string, 0, len(lexicon))
	triggers := make(map[string]map[string]bool, len(lexicon))

	for category, words := range lexicon {
		set := make(map[string]bool, len(words))
		for _, w := range words {
			set[strings.ToLower(w)] = true
		}
		categories = append(categories, category)
		triggers[category] = set
	}
	sort.Strings(categories)

	return &KeywordScorer{
		categories: categories,
		triggers:   triggers,
	}
}

// Scores returns, per category, the fraction of word tokens that match that
// category's trigger list. All scores lie in [0,1].
func (ks *KeywordScorer) Scores(text string) map[string]float64 {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)

	total := len(tokens)
	if total < 1 {
		total = 1
	}

	scores := make(map[string]float64, len(ks.categories))
	for _, category := range ks.categories {
		matches := 0
		for _, token := range tokens {
			if ks.triggers[category][token] {
				matches++
			}
		}
		scores[category] = float64(matches) / float64(total)
	}

	return scores
}

// Categories returns the category names in the scorer's fixed order.
func (ks *KeywordScorer) Categories() []string {
	return ks.categories
}
