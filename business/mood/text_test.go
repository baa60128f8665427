package mood_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/mindcareapp/goMindcare/business/mood"
)

// fixedScorer is a stand-in sentiment collaborator with canned output.
type fixedScorer struct {
	polarity     float64
	subjectivity float64
	err          error
}

func (f fixedScorer) Score(string) (float64, float64, error) {
	return f.polarity, f.subjectivity, f.err
}

var knownMoods = map[string]bool{
	"Happy": true, "Sad": true, "Angry": true, "Anxious": true,
	"Calm": true, "Tired": true, "Neutral": true,
}

func TestAnalyzeKeywordSignalWins(t *testing.T) {
	a := mood.NewAnalyzer(fixedScorer{polarity: 0.9}, nil)

	result, err := a.Analyze("I am so happy and excited today, everything is wonderful!")
	if err != nil {
		t.Fatal(err)
	}

	if result.Mood != "Happy" {
		t.Fatalf("expected Happy, got %s", result.Mood)
	}
	if result.EmotionScores["happy"] <= 0.05 {
		t.Fatalf("expected a clear happy keyword score, got %f", result.EmotionScores["happy"])
	}
	if result.Emoji != "😊" {
		t.Fatalf("unexpected emoji %q", result.Emoji)
	}
}

func TestAnalyzeEmptyText(t *testing.T) {
	a := mood.NewAnalyzer(fixedScorer{}, nil)

	result, err := a.Analyze("")
	if err != nil {
		t.Fatal(err)
	}
	if result.Mood != "Neutral" {
		t.Fatalf("expected Neutral for empty text, got %s", result.Mood)
	}
	if result.Confidence != 0.3 {
		t.Fatalf("expected the confidence floor, got %f", result.Confidence)
	}
}

func TestAnalyzePolarityFallback(t *testing.T) {
	tests := []struct {
		name     string
		polarity float64
		want     string
	}{
		{"positive polarity", 0.5, "Happy"},
		{"negative polarity", -0.5, "Sad"},
		{"zero polarity", 0, "Neutral"},
		{"just inside neutral band", 0.1, "Neutral"},
		{"just below neutral band", -0.1, "Neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mood.NewAnalyzer(fixedScorer{polarity: tt.polarity}, nil)

			// No emotion keywords in this text.
			result, err := a.Analyze("the meeting was at three o'clock")
			if err != nil {
				t.Fatal(err)
			}
			if result.Mood != tt.want {
				t.Fatalf("polarity %f: expected %s, got %s", tt.polarity, tt.want, result.Mood)
			}
		})
	}
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	texts := []string{
		"",
		"fine",
		"I am so happy and excited today, everything is wonderful!",
		strings.Repeat("absolutely thrilled and amazed beyond words ", 30),
		"sad awful terrible miserable crying",
	}
	polarities := []float64{-1, -0.5, 0, 0.5, 1}

	for _, text := range texts {
		for _, p := range polarities {
			a := mood.NewAnalyzer(fixedScorer{polarity: p}, nil)
			result, err := a.Analyze(text)
			if err != nil {
				t.Fatal(err)
			}
			if result.Confidence < 0.3 || result.Confidence > 0.95 {
				t.Fatalf("confidence out of [0.3,0.95]: %f (text %q, polarity %f)", result.Confidence, text, p)
			}
			if !knownMoods[result.Mood] {
				t.Fatalf("unknown mood label %q", result.Mood)
			}
		}
	}
}

func TestAnalyzeConfidenceGrowsWithEvidence(t *testing.T) {
	a := mood.NewAnalyzer(fixedScorer{polarity: 0.8}, nil)

	weak, err := a.Analyze("ok")
	if err != nil {
		t.Fatal(err)
	}
	strong, err := a.Analyze("happy happy joy joy excited wonderful amazing fantastic great excellent love")
	if err != nil {
		t.Fatal(err)
	}

	if strong.Confidence <= weak.Confidence {
		t.Fatalf("expected keyword-dense text to score higher confidence: weak=%f strong=%f", weak.Confidence, strong.Confidence)
	}
}

func TestAnalyzePropagatesScorerFailure(t *testing.T) {
	scoreErr := errors.New("malformed input")
	a := mood.NewAnalyzer(fixedScorer{err: scoreErr}, nil)

	if _, err := a.Analyze("anything"); !errors.Is(err, scoreErr) {
		t.Fatalf("expected wrapped scorer error, got %v", err)
	}
}

func TestEmoji(t *testing.T) {
	if mood.Emoji("Neutral") != "😐" {
		t.Fatal("unexpected neutral emoji")
	}
	if mood.Emoji("Perplexed") != "🤔" {
		t.Fatal("unknown moods should map to the fallback emoji")
	}
}
