package voice

import (
	"fmt"
	"math/rand"
)

var simulatedMoods = []string{"Happy", "Sad", "Anxious", "Calm", "Excited", "Neutral"}

// Features summarizes the voice patterns behind an analysis, for display.
type Features struct {
	PitchVariation float64 `json:"pitch_variation"`
	SpeechRate     float64 `json:"speech_rate"`
	EnergyLevel    float64 `json:"energy_level"`
}

// Analysis is a voice mood detection result. Confidence is a fraction in
// [0,1]; it is rendered as a percentage only for display. An Analysis is
// transient: it is held until saved into a mood entry or discarded.
type Analysis struct {
	DetectedMood  string   `json:"detected_mood"`
	Confidence    float64  `json:"confidence"`
	VoiceFeatures Features `json:"voice_features"`
}

// Simulate produces a plausible voice analysis without any audio, for the
// demo recording flow.
func Simulate() Analysis {
	return Analysis{
		DetectedMood:  simulatedMoods[rand.Intn(len(simulatedMoods))],
		Confidence:    0.75 + rand.Float64()*0.2,
		VoiceFeatures: randomFeatures(),
	}
}

func randomFeatures() Features {
	return Features{
		PitchVariation: 0.3 + rand.Float64()*0.5,
		SpeechRate:     100 + rand.Float64()*100,
		EnergyLevel:    0.2 + rand.Float64()*0.7,
	}
}

// ProvenanceTag is the free-text tag recorded on mood entries saved from a
// voice analysis.
func (a Analysis) ProvenanceTag() string {
	return fmt.Sprintf("Voice analysis - %.1f%% confidence", a.Confidence*100)
}
