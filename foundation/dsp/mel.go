package dsp

import "math"

// melFilterbank maps a power spectrum onto perceptual mel bands and takes
// the discrete cosine transform of the log band energies.
type melFilterbank struct {
	binEdges []int
}

func newMelFilterbank(sampleRate int) *melFilterbank {
	low := hzToMel(0)
	high := hzToMel(float64(sampleRate) / 2)

	edges := make([]int, numMelFilters+2)
	for i := range edges {
		mel := low + (high-low)*float64(i)/float64(numMelFilters+1)
		edges[i] = int(math.Floor((frameSize + 1) * melToHz(mel) / float64(sampleRate)))
	}

	return &melFilterbank{binEdges: edges}
}

func (fb *melFilterbank) cepstrum(power []float64) [numCoefficients]float64 {
	var logEnergies [numMelFilters]float64

	for m := 0; m < numMelFilters; m++ {
		left, center, right := fb.binEdges[m], fb.binEdges[m+1], fb.binEdges[m+2]

		var energy float64
		for k := left; k < center && k < len(power); k++ {
			if center > left {
				energy += power[k] * float64(k-left) / float64(center-left)
			}
		}
		for k := center; k <= right && k < len(power); k++ {
			if right > center {
				energy += power[k] * float64(right-k) / float64(right-center)
			}
		}

		// Floor keeps the log finite on silent bands.
		logEnergies[m] = math.Log(energy + 1e-10)
	}

	var coeffs [numCoefficients]float64
	for i := 0; i < numCoefficients; i++ {
		var sum float64
		for j := 0; j < numMelFilters; j++ {
			sum += logEnergies[j] * math.Cos(math.Pi*float64(i)*(float64(j)+0.5)/numMelFilters)
		}
		coeffs[i] = sum
	}

	return coeffs
}

func hzToMel(hz float64) float64 {
	return 2595 * math.Log10(1+hz/700)
}

func melToHz(mel float64) float64 {
	return 700 * (math.Pow(10, mel/2595) - 1)
}
