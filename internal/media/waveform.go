package media

import (
	"bytes"
	"fmt"
	"math"
	"os"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/OpenSpeaks/openspeaks-subtitler/internal/ffmpeg"
)

const peaksSampleRate = 8000

// Peaks decodes the audio track to mono PCM and reduces it to bucketCount
// amplitude values in [0,1], one per equal slice of the file. Used to draw
// the waveform strip under the track.
func Peaks(inputPath string, bucketCount int) ([]float64, error) {
	if bucketCount <= 0 {
		return nil, fmt.Errorf("bucket count must be positive, got %d", bucketCount)
	}
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("file not found: %s", inputPath)
	}

	ffmpegPath, err := ffmpegbin.FFmpegPath()
	if err != nil {
		return nil, err
	}

	var pcm bytes.Buffer
	err = ffmpeg.Input(inputPath).
		Output("pipe:", ffmpeg.KwArgs{
			"f":   "s16le",
			"ar":  peaksSampleRate,
			"ac":  1,
			"vn":  "",
			"map": "0:a:0",
		}).
		WithOutput(&pcm).
		SetFfmpegPath(ffmpegPath).
		Silent(true).
		Run()
	if err != nil {
		return nil, fmt.Errorf("waveform decode failed: %w", err)
	}

	return reducePCM(pcm.Bytes(), bucketCount), nil
}

// reducePCM folds little-endian s16 samples into per-bucket peak amplitudes.
func reducePCM(raw []byte, bucketCount int) []float64 {
	sampleCount := len(raw) / 2
	peaks := make([]float64, bucketCount)
	if sampleCount == 0 {
		return peaks
	}

	perBucket := sampleCount / bucketCount
	if perBucket == 0 {
		perBucket = 1
	}

	for i := 0; i < sampleCount; i++ {
		sample := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		amp := math.Abs(float64(sample)) / 32768.0

		bucket := i / perBucket
		if bucket >= bucketCount {
			bucket = bucketCount - 1
		}
		if amp > peaks[bucket] {
			peaks[bucket] = amp
		}
	}
	return peaks
}
