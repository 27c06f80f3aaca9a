// Package detect parses the output contracts of the external audio
// and video detectors. The detectors themselves (pitch tracking, hand
// landmark projection) live outside this repo; only their emitted
// JSON files are consumed here.
package detect

import (
	"encoding/json"
	"os"

	"github.com/tabfuse/tabfuse/model"
)

type AudioDetections struct {
	Frames  []model.PitchFrame `json:"frames"`
	Onsets  []float64          `json:"onsets"`
	Context model.AudioContext `json:"context"`
}

type VideoDetections struct {
	Notes   []model.VideoNote  `json:"notes"`
	Context model.VideoContext `json:"context"`
}

func LoadAudioOrPanic(path string) AudioDetections {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read audio detections: " + err.Error())
	}
	var detections AudioDetections
	if err := json.Unmarshal(data, &detections); err != nil {
		panic("Could not parse audio detections: " + err.Error())
	}
	return detections
}

func LoadVideoOrPanic(path string) VideoDetections {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read video detections: " + err.Error())
	}
	var detections VideoDetections
	if err := json.Unmarshal(data, &detections); err != nil {
		panic("Could not parse video detections: " + err.Error())
	}
	return detections
}
