// Package mood classifies free text into a single mood label with a bounded
// confidence, and derives observational insights from logged history.
package mood

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// An emotion category wins outright when more than 5% of tokens match it.
	emotionScoreFloor = 0.05

	positivePolarity = 0.1
	negativePolarity = -0.1

	minConfidence = 0.3
	maxConfidence = 0.95
)

var moodEmojis = map[string]string{
	"Happy":   "😊",
	"Sad":     "😢",
	"Angry":   "😠",
	"Anxious": "😰",
	"Calm":    "😌",
	"Tired":   "😴",
	"Neutral": "😐",
}

// Scorer is the external sentiment collaborator: polarity in [-1,1]
// (negative means unpleasant), subjectivity in [0,1].
type Scorer interface {
	Score(text string) (polarity float64, subjectivity float64, err error)
}

type Result struct {
	Mood          string             `json:"mood"`
	Polarity      float64            `json:"polarity"`
	Subjectivity  float64            `json:"subjectivity"`
	Emoji         string             `json:"emoji"`
	Confidence    float64            `json:"confidence"`
	EmotionScores map[string]float64 `json:"emotion_scores"`
}

type Analyzer struct {
	scorer   Scorer
	keywords *KeywordScorer
}

// NewAnalyzer wires the sentiment collaborator and an optional lexicon
// override into a text mood analyzer.
func NewAnalyzer(scorer Scorer, lexicon map[string][]string) *Analyzer {
	return &Analyzer{
		scorer:   scorer,
		keywords: NewKeywordScorer(lexicon),
	}
}

// Analyze maps text to exactly one mood label. The only failure mode is the
// sentiment collaborator rejecting its input.
func (a *Analyzer) Analyze(text string) (Result, error) {
	lowered := strings.ToLower(text)

	polarity, subjectivity, err := a.scorer.Score(lowered)
	if err != nil {
		return Result{}, fmt.Errorf("scoring sentiment: %w", err)
	}

	emotionScores := a.keywords.Scores(lowered)
	primaryMood := a.primaryMood(polarity, emotionScores)

	return Result{
		Mood:          primaryMood,
		Polarity:      polarity,
		Subjectivity:  subjectivity,
		Emoji:         Emoji(primaryMood),
		Confidence:    confidence(polarity, emotionScores, text),
		EmotionScores: emotionScores,
	}, nil
}

// primaryMood prefers a clear keyword signal, falling back to polarity
// thresholds otherwise.
func (a *Analyzer) primaryMood(polarity float64, emotionScores map[string]float64) string {
	maxCategory := ""
	maxScore := 0.0
	for _, category := range a.keywords.Categories() {
		if score := emotionScores[category]; score > maxScore {
			maxCategory = category
			maxScore = score
		}
	}

	if maxCategory != "" && maxScore > emotionScoreFloor {
		return titleCase(maxCategory)
	}

	switch {
	case polarity > positivePolarity:
		return "Happy"
	case polarity < negativePolarity:
		return "Sad"
	default:
		return "Neutral"
	}
}

// confidence blends polarity strength, keyword evidence and text length,
// clamped to [0.3, 0.95].
func confidence(polarity float64, emotionScores map[string]float64, text string) float64 {
	polarityConfidence := polarity
	if polarityConfidence < 0 {
		polarityConfidence = -polarityConfidence
	}

	maxEmotionScore := 0.0
	for _, score := range emotionScores {
		if score > maxEmotionScore {
			maxEmotionScore = score
		}
	}
	keywordConfidence := maxEmotionScore * 5
	if keywordConfidence > 1 {
		keywordConfidence = 1
	}

	lengthFactor := float64(len(strings.Fields(text))) / 50
	if lengthFactor > 1 {
		lengthFactor = 1
	}

	c := polarityConfidence*0.4 + keywordConfidence*0.4 + lengthFactor*0.2

	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}

// Emoji returns the display emoji for a mood label.
func Emoji(mood string) string {
	if emoji, ok := moodEmojis[mood]; ok {
		return emoji
	}
	return "🤔"
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
