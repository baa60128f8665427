package voice

import "math/rand"

// Labels is the closed set of moods the audio classifier can produce.
var Labels = []string{"Happy", "Sad", "Anxious", "Calm", "Energetic", "Tired"}

type Classification struct {
	Mood       string  `json:"mood"`
	Confidence float64 `json:"confidence"`

	// Scores is cosmetic display data: random supporting values with the
	// winning label boosted. Not a probability distribution.
	Scores map[string]float64 `json:"scores"`

	VoiceFeatures Features `json:"voice_features"`
}

type Classifier struct {
	extractor Extractor
}

func NewClassifier(extractor Extractor) *Classifier {
	return &Classifier{extractor: extractor}
}

// ClassifySamples extracts features and applies the rule set. Extraction
// failure degrades to a zero vector, which the rules classify as Sad.
func (c *Classifier) ClassifySamples(samples []float64, sampleRate int) Classification {
	features := ExtractFeatures(c.extractor, samples, sampleRate)
	return ClassifyFeatures(features)
}

// ClassifyFeatures applies fixed thresholds over normalized descriptors.
// The rules are evaluated in priority order; the first match wins.
func ClassifyFeatures(features []float64) Classification {
	pitch := features[idxPitch]
	energy := features[idxEnergy]
	spectralCentroid := features[idxCentroid]
	tempo := features[idxTempo]

	pitchNorm := 0.0
	if pitch > 0 {
		pitchNorm = clampUnit(pitch / 200)
	}
	energyNorm := clampUnit(energy * 100)
	tempoNorm := 0.0
	if tempo > 0 {
		tempoNorm = clampUnit(tempo / 180)
	}

	var label string
	var confidence float64

	switch {
	case energyNorm > 0.7 && tempoNorm > 0.6:
		label, confidence = "Energetic", 0.8
	case pitchNorm < 0.3 && energyNorm < 0.4:
		label, confidence = "Sad", 0.7
	case energyNorm > 0.6 && pitchNorm > 0.5:
		label, confidence = "Happy", 0.75
	case energyNorm < 0.3:
		label, confidence = "Tired", 0.6
	case spectralCentroid > 2000:
		label, confidence = "Anxious", 0.65
	default:
		label, confidence = "Calm", 0.6
	}

	return Classification{
		Mood:       label,
		Confidence: confidence,
		Scores:     moodScores(label),
		VoiceFeatures: Features{
			PitchVariation: pitchNorm,
			SpeechRate:     tempo,
			EnergyLevel:    energyNorm,
		},
	}
}

// Fallback picks a uniformly random label. Used when the audio could not be
// decoded at all; "I don't know" is not a representable outcome.
func (c *Classifier) Fallback() Classification {
	label := Labels[rand.Intn(len(Labels))]

	return Classification{
		Mood:          label,
		Confidence:    0.5 + rand.Float64()*0.3,
		Scores:        moodScores(label),
		VoiceFeatures: randomFeatures(),
	}
}

func moodScores(winner string) map[string]float64 {
	scores := make(map[string]float64, len(Labels))
	for _, label := range Labels {
		scores[label] = rand.Float64() * 0.3
	}
	scores[winner] = 0.6 + rand.Float64()*0.4

	return scores
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	return v
}
