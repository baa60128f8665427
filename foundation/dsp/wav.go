package dsp

import (
	"bytes"
	"errors"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// DecodeWAV decodes WAV bytes into mono samples in [-1,1] plus the sample
// rate. Multi-channel audio is averaged down to one channel.
func DecodeWAV(data []byte) ([]float64, int, error) {
	decoder := wav.NewDecoder(bytes.NewReader(data))
	if !decoder.IsValidFile() {
		return nil, 0, errors.New("not a valid wav file")
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	if buf == nil || len(buf.Data) == 0 {
		return nil, 0, errors.New("wav file holds no samples")
	}

	samples := monoFloats(buf, int(decoder.BitDepth))
	return samples, buf.Format.SampleRate, nil
}

func monoFloats(buf *audio.IntBuffer, bitDepth int) []float64 {
	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	if bitDepth <= 0 {
		bitDepth = 16
	}

	scale := math.Pow(2, float64(bitDepth-1))
	frames := len(buf.Data) / channels

	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c])
		}
		samples[i] = sum / float64(channels) / scale
	}

	return samples
}
