package confidence

import (
	"github.com/tabfuse/tabfuse/fretboard"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

// sub-signal weights, each set sums to 1.0
const (
	audioPitchWeight     = 0.4
	audioOnsetWeight     = 0.3
	audioStabilityWeight = 0.3

	videoDetectionWeight   = 0.3
	videoPositionWeight    = 0.3
	videoPickingWeight     = 0.2
	videoCalibrationWeight = 0.2
)

// defaults when a note carries no confidence of its own
const (
	defaultAudioConfidence = 0.5
	defaultVideoConfidence = 0.6
)

// sentinel cents difference when one side has no usable frequency
const NoComparison = 999.0

// Comparison is the structured agreement between one audio and one
// video observation of (presumably) the same note.
type Comparison struct {
	StringMatch        bool
	FretMatch          bool
	FrequencyDiffCents float64
	Agreement          float64
	AudioFreq          float64
	VideoFreq          float64
}

// Scorer normalizes observation confidence and compares audio
// against video. It needs the fretboard table to derive the frequency
// a video position implies.
type Scorer struct {
	Table *fretboard.Table
}

func NewScorer(table *fretboard.Table) *Scorer {
	return &Scorer{Table: table}
}

// ScoreAudio produces a [0,1] confidence for an audio note. Context
// sub-signals that are absent are omitted from the weighted sum, and
// with no context at all the note's own confidence is returned
// unweighted.
func (s *Scorer) ScoreAudio(note model.AudioNote, ctx model.AudioContext) float64 {
	if ctx.OnsetStrength == nil && ctx.FrequencyVariance == nil {
		if note.Confidence > 0 {
			return util.Clamp01(note.Confidence)
		}
		return defaultAudioConfidence
	}

	score := note.Confidence * audioPitchWeight

	if ctx.OnsetStrength != nil {
		clarity := util.Min(1.0, *ctx.OnsetStrength/10.0)
		score += clarity * audioOnsetWeight
	}

	if ctx.FrequencyVariance != nil {
		// lower variance means a steadier, more trustworthy pitch
		stability := 1.0 / (1.0 + *ctx.FrequencyVariance/10.0)
		score += stability * audioStabilityWeight
	}

	return util.Clamp01(score)
}

// ScoreVideo produces a [0,1] confidence for a video note, same
// omission rules as ScoreAudio.
func (s *Scorer) ScoreVideo(note model.VideoNote, ctx model.VideoContext) float64 {
	if ctx.PositionClarity == nil && ctx.PickingDetected == nil && ctx.CalibrationQuality == nil {
		if note.Confidence > 0 {
			return util.Clamp01(note.Confidence)
		}
		return defaultVideoConfidence
	}

	score := note.Confidence * videoDetectionWeight

	if ctx.PositionClarity != nil {
		score += *ctx.PositionClarity * videoPositionWeight
	}

	if ctx.PickingDetected != nil {
		pickingConf := 0.3
		if *ctx.PickingDetected {
			pickingConf = 1.0
		}
		score += pickingConf * videoPickingWeight
	}

	if ctx.CalibrationQuality != nil {
		score += *ctx.CalibrationQuality * videoCalibrationWeight
	}

	return util.Clamp01(score)
}

// Compare checks how well an audio note and a video note agree.
// Agreement is 1.0 for an exact position match, 0.5 when only the
// string matches, 0.7 when positions differ but the pitches are
// within one semitone, else 0.0.
func (s *Scorer) Compare(audio model.AudioNote, video model.VideoNote) Comparison {
	var c Comparison

	c.StringMatch = video.String != nil && *video.String == audio.String
	c.FretMatch = video.Fret != nil && *video.Fret == audio.Fret

	videoString, videoFret := 0, 0
	if video.String != nil {
		videoString = *video.String
	}
	if video.Fret != nil {
		videoFret = *video.Fret
	}
	c.VideoFreq = s.Table.Frequency(videoString, videoFret)
	c.AudioFreq = audio.Frequency

	if c.AudioFreq > 0 && c.VideoFreq > 0 {
		c.FrequencyDiffCents = fretboard.CentsDiff(c.AudioFreq, c.VideoFreq)
	} else {
		c.FrequencyDiffCents = NoComparison
	}

	switch {
	case c.StringMatch && c.FretMatch:
		c.Agreement = 1.0
	case c.StringMatch:
		c.Agreement = 0.5
	case c.FrequencyDiffCents < 100:
		c.Agreement = 0.7
	default:
		c.Agreement = 0.0
	}

	return c
}
