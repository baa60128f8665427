// Package dsp computes the numeric descriptors the voice mood classifier
// consumes: cepstral coefficient means, mean voiced pitch, mean RMS energy,
// mean spectral centroid and an estimated tempo.
package dsp

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

const (
	frameSize = 2048
	hopSize   = 512

	numCoefficients = 13
	numMelFilters   = 26

	// FeatureCount is the length of the extracted vector: numCoefficients
	// cepstral means followed by pitch, energy, spectral centroid, tempo.
	FeatureCount = numCoefficients + 4

	// Frames below this RMS are treated as silence for pitch tracking.
	voicingRMSFloor = 0.01
	// Minimum normalized autocorrelation peak for a frame to count as voiced.
	voicingThreshold = 0.3

	minPitchHz = 50
	maxPitchHz = 400

	minTempoBPM = 60
	maxTempoBPM = 180
)

type Analyzer struct {
	fft *fourier.FFT
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{
		fft: fourier.NewFFT(frameSize),
	}
}

// Extract analyzes mono samples in [-1,1] and returns the FeatureCount-long
// descriptor vector. Callers own the degraded path: any error here must be
// turned into a zero vector at the classifier boundary.
func (a *Analyzer) Extract(samples []float64, sampleRate int) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, errors.New("sample rate must be positive")
	}
	if len(samples) < frameSize {
		return nil, errors.New("audio too short to analyze")
	}

	filterbank := newMelFilterbank(sampleRate)
	window := hammingWindow(frameSize)

	var (
		frames        int
		voicedFrames  int
		mfccSums      [numCoefficients]float64
		pitchSum      float64
		rmsSum        float64
		centroidSum   float64
		fluxEnvelope  []float64
		prevMagnitude []float64
	)

	windowed := make([]float64, frameSize)
	magnitude := make([]float64, frameSize/2+1)
	power := make([]float64, frameSize/2+1)

	for start := 0; start+frameSize <= len(samples); start += hopSize {
		frame := samples[start : start+frameSize]

		for n := range frame {
			windowed[n] = frame[n] * window[n]
		}

		spectrum := a.fft.Coefficients(nil, windowed)
		for k, c := range spectrum {
			magnitude[k] = math.Hypot(real(c), imag(c))
			power[k] = magnitude[k] * magnitude[k]
		}

		rms := rootMeanSquare(frame)
		rmsSum += rms

		centroidSum += spectralCentroid(magnitude, sampleRate)

		coeffs := filterbank.cepstrum(power)
		for i := range coeffs {
			mfccSums[i] += coeffs[i]
		}

		if pitch, voiced := framePitch(frame, rms, sampleRate); voiced {
			pitchSum += pitch
			voicedFrames++
		}

		fluxEnvelope = append(fluxEnvelope, spectralFlux(magnitude, prevMagnitude))
		if prevMagnitude == nil {
			prevMagnitude = make([]float64, len(magnitude))
		}
		copy(prevMagnitude, magnitude)

		frames++
	}

	features := make([]float64, 0, FeatureCount)
	for i := range mfccSums {
		features = append(features, mfccSums[i]/float64(frames))
	}

	// Pitch is averaged over voiced frames only; 0 when none were detected.
	var pitch float64
	if voicedFrames > 0 {
		pitch = pitchSum / float64(voicedFrames)
	}

	features = append(features,
		pitch,
		rmsSum/float64(frames),
		centroidSum/float64(frames),
		estimateTempo(fluxEnvelope, sampleRate),
	)

	return features, nil
}

// =====================================================================================================================

func hammingWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.54 - 0.46*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}

func rootMeanSquare(frame []float64) float64 {
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	return math.Sqrt(sum / float64(len(frame)))
}

func spectralCentroid(magnitude []float64, sampleRate int) float64 {
	var weighted, total float64
	for k, m := range magnitude {
		freq := float64(k) * float64(sampleRate) / frameSize
		weighted += freq * m
		total += m
	}
	if total == 0 {
		return 0
	}
	return weighted / total
}

func spectralFlux(magnitude, previous []float64) float64 {
	if previous == nil {
		return 0
	}
	var flux float64
	for k := range magnitude {
		if d := magnitude[k] - previous[k]; d > 0 {
			flux += d
		}
	}
	return flux
}

// framePitch estimates the fundamental frequency of one frame by
// autocorrelation over the speech pitch range.
func framePitch(frame []float64, rms float64, sampleRate int) (float64, bool) {
	if rms < voicingRMSFloor {
		return 0, false
	}

	minLag := sampleRate / maxPitchHz
	maxLag := sampleRate / minPitchHz
	if maxLag >= len(frame) {
		maxLag = len(frame) - 1
	}
	if minLag < 1 || minLag >= maxLag {
		return 0, false
	}

	var energy float64
	for _, s := range frame {
		energy += s * s
	}
	if energy == 0 {
		return 0, false
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for n := 0; n+lag < len(frame); n++ {
			corr += frame[n] * frame[n+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 || bestCorr/energy < voicingThreshold {
		return 0, false
	}

	return float64(sampleRate) / float64(bestLag), true
}

// estimateTempo autocorrelates the onset-strength envelope and picks the
// strongest periodicity in the 60-180 BPM range. Returns 0 when the signal
// shows no usable periodicity.
func estimateTempo(envelope []float64, sampleRate int) float64 {
	frameRate := float64(sampleRate) / hopSize

	minLag := int(frameRate * 60 / maxTempoBPM)
	maxLag := int(frameRate * 60 / minTempoBPM)
	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(envelope) {
		maxLag = len(envelope) - 1
	}
	if maxLag <= minLag {
		return 0
	}

	var mean float64
	for _, v := range envelope {
		mean += v
	}
	mean /= float64(len(envelope))

	centered := make([]float64, len(envelope))
	for i, v := range envelope {
		centered[i] = v - mean
	}

	bestLag := 0
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		var corr float64
		for t := 0; t+lag < len(centered); t++ {
			corr += centered[t] * centered[t+lag]
		}
		if corr > bestCorr {
			bestCorr = corr
			bestLag = lag
		}
	}

	if bestLag == 0 || bestCorr <= 0 {
		return 0
	}

	return 60 * frameRate / float64(bestLag)
}
