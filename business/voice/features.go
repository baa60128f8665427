// Package voice classifies recorded audio into a mood label via fixed
// thresholds over extracted signal descriptors.
package voice

// FeatureCount is the length of an extracted descriptor vector: 13 cepstral
// coefficient means followed by mean pitch, mean RMS energy, mean spectral
// centroid and estimated tempo.
const FeatureCount = 17

// Indexes of the named descriptors within a feature vector.
const (
	idxPitch    = 13
	idxEnergy   = 14
	idxCentroid = 15
	idxTempo    = 16
)

// Extractor is the external signal-processing collaborator. Implementations
// may fail; callers inside this package never let that failure escape.
type Extractor interface {
	Extract(samples []float64, sampleRate int) ([]float64, error)
}

// ExtractFeatures runs the extractor and degrades any failure, including a
// wrong-sized result, to the all-zero vector. It never returns an error.
func ExtractFeatures(ex Extractor, samples []float64, sampleRate int) []float64 {
	features, err := ex.Extract(samples, sampleRate)
	if err != nil || len(features) != FeatureCount {
		return make([]float64, FeatureCount)
	}
	return features
}
