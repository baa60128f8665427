// Package sentiment scores free text for valence using the VADER lexicon.
// It is the default sentiment collaborator of the text mood analyzer.
package sentiment

import (
	"strings"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"
)

type Vader struct{}

func NewVader() *Vader {
	return &Vader{}
}

// Score returns polarity in [-1,1] and subjectivity in [0,1]. Polarity is
// VADER's compound score; subjectivity is the share of the text carrying
// any sentiment at all, positive or negative. Empty text scores zero on
// both axes, so it classifies as Neutral downstream.
func (v *Vader) Score(text string) (polarity float64, subjectivity float64, err error) {
	if strings.TrimSpace(text) == "" {
		return 0, 0, nil
	}

	parsed := sentitext.Parse(text, lexicon.DefaultLexicon)
	score := sentitext.PolarityScore(parsed)

	subjectivity = score.Positive + score.Negative
	if subjectivity > 1 {
		subjectivity = 1
	}

	return score.Compound, subjectivity, nil
}
