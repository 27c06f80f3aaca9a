package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func writeTemp(t *testing.T, name string, content string) string {
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAudio(t *testing.T) {
	path := writeTemp(t, "audio.json", `{
		"frames": [{"time": 0.1, "frequency": 110.0, "confidence": 0.9}],
		"onsets": [0.1],
		"context": {"onset_strength": 5.0}
	}`)

	detections := LoadAudioOrPanic(path)

	assert := assert.New(t)
	assert.Len(detections.Frames, 1)
	assert.InDelta(110.0, detections.Frames[0].Frequency, 0.001)
	assert.Equal([]float64{0.1}, detections.Onsets)
	assert.NotNil(detections.Context.OnsetStrength)
	assert.Equal(5.0, *detections.Context.OnsetStrength)
	assert.Nil(detections.Context.FrequencyVariance)
}

func TestLoadVideo(t *testing.T) {
	path := writeTemp(t, "video.json", `{
		"notes": [
			{"time": 0.1, "string": 1, "fret": 0, "played": true, "confidence": 0.8},
			{"time": 0.2, "string": null, "fret": null, "played": false, "confidence": 0.2}
		],
		"context": {"picking_detected": true, "calibration_quality": 0.9}
	}`)

	detections := LoadVideoOrPanic(path)

	assert := assert.New(t)
	assert.Len(detections.Notes, 2)
	assert.Equal(1, *detections.Notes[0].String)
	assert.True(detections.Notes[0].Played)
	assert.Nil(detections.Notes[1].String)
	assert.NotNil(detections.Context.PickingDetected)
	assert.True(*detections.Context.PickingDetected)
}

func TestLoadAudioPanicsOnMissingFile(t *testing.T) {
	assert.Panics(t, func() {
		LoadAudioOrPanic("/nonexistent/audio.json")
	})
}
