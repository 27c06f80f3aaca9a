package fusion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tabfuse/tabfuse/confidence"
	"github.com/tabfuse/tabfuse/fretboard"
	"github.com/tabfuse/tabfuse/model"
)

func newTestEngine(t *testing.T) *Engine {
	table, err := fretboard.NewTable(model.StandardTuning)
	if err != nil {
		t.Fatal(err)
	}
	return NewEngine(confidence.NewScorer(table))
}

func TestFuseExactAgreement(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 1.00, Duration: 0.5, Frequency: 110.0, Confidence: 0.9, String: 1, Fret: 0},
	}
	video := []model.VideoNote{
		{Time: 1.05, String: intPtr(1), Fret: intPtr(0), Played: true, Confidence: 0.8},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourceFused, note.Source)
	assert.Greater(note.Confidence, 0.5)
	assert.Equal(1, *note.String)
	assert.Equal(0, *note.Fret)
	assert.InDelta(110.0, note.Frequency, 0.01)
	assert.InDelta(0.5, note.Duration, 0.001)
	assert.Equal(1.0, note.Agreement)
}

func TestFuseOctaveError(t *testing.T) {
	e := newTestEngine(t)

	// audio heard 220 Hz, video saw the open A string (110 Hz)
	audio := []model.AudioNote{
		{Time: 2.00, Duration: 0.4, Frequency: 220.0, Confidence: 0.9, String: 3, Fret: 2},
	}
	video := []model.VideoNote{
		{Time: 2.02, String: intPtr(1), Fret: intPtr(0), Played: true, Confidence: 0.8},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourceOctaveCorrected, note.Source)
	assert.Equal(1, *note.String)
	assert.Equal(0, *note.Fret)
	assert.InDelta(220.0, note.RawAudioFrequency, 0.01)
	assert.True(note.Corrected)
	assert.InDelta(2.00, note.Time, 0.001)
	assert.LessOrEqual(note.Confidence, 1.0)
}

func TestFusePositionConflict(t *testing.T) {
	e := newTestEngine(t)

	// same pitch, alternate fingering: 110 Hz on string 0 fret 5 vs
	// the open A string
	audio := []model.AudioNote{
		{Time: 3.00, Duration: 0.3, Frequency: 110.0, Confidence: 0.9, String: 0, Fret: 5},
	}
	video := []model.VideoNote{
		{Time: 3.01, String: intPtr(1), Fret: intPtr(0), Played: true, Confidence: 0.8},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourcePositionCorrected, note.Source)
	assert.Equal(1, *note.String)
	assert.Equal(0, *note.Fret)
	assert.InDelta(110.0, note.Frequency, 0.01)
	assert.True(note.Corrected)
}

func TestFuseAudioPriorityKeepsAlternate(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 4.00, Duration: 0.3, Frequency: 98.0, Confidence: 0.9, String: 0, Fret: 3},
	}
	video := []model.VideoNote{
		{Time: 4.05, String: intPtr(4), Fret: intPtr(2), Played: true, Confidence: 0.5},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourceAudioPriority, note.Source)
	assert.Equal(0, *note.String)
	assert.Equal(3, *note.Fret)
	assert.NotNil(note.AltPosition)
	assert.Equal(4, note.AltPosition.String)
	assert.Equal(2, note.AltPosition.Fret)
	assert.True(note.ConflictResolved)
}

func TestFuseVideoPriority(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 4.00, Duration: 0.3, Frequency: 98.0, Confidence: 0.4, String: 0, Fret: 3},
	}
	video := []model.VideoNote{
		{Time: 4.05, String: intPtr(4), Fret: intPtr(2), Played: true, Confidence: 0.9},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourceVideoPriority, note.Source)
	assert.Equal(4, *note.String)
	assert.Equal(2, *note.Fret)
}

func TestFuseWeightedDisagreement(t *testing.T) {
	e := newTestEngine(t)

	// neither side dominates; audio keeps the video cell as an
	// annotated alternative and the result takes the penalty
	audio := []model.AudioNote{
		{Time: 4.00, Duration: 0.3, Frequency: 98.0, Confidence: 0.6, String: 0, Fret: 3},
	}
	video := []model.VideoNote{
		{Time: 4.05, String: intPtr(4), Fret: intPtr(2), Played: true, Confidence: 0.6},
	}

	fused := e.Fuse(audio, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	note := fused[0]
	assert.Equal(model.SourceAudioWeighted, note.Source)
	assert.NotNil(note.AltPosition)
	assert.InDelta(0.48, note.Confidence, 0.001)
	assert.True(note.ConflictResolved)
}

func TestFuseUnmatchedAudio(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 1.0, Duration: 0.5, Frequency: 110.0, Confidence: 0.9, String: 1, Fret: 0},
		{Time: 5.0, Duration: 0.5, Frequency: 110.0, Confidence: 0.3, String: 1, Fret: 0},
	}

	fused := e.Fuse(audio, nil, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	// the low-confidence note misses the audio-only floor
	assert.Len(fused, 1)
	assert.Equal(model.SourceAudioOnly, fused[0].Source)
	assert.InDelta(0.9*0.4, fused[0].Confidence, 0.001)
}

func TestFuseUnplayedVideoNeverEmits(t *testing.T) {
	e := newTestEngine(t)

	video := []model.VideoNote{
		{Time: 1.0, String: intPtr(1), Fret: intPtr(0), Played: false, Confidence: 1.0},
	}

	fused := e.Fuse(nil, video, model.AudioContext{}, model.VideoContext{})
	assert.Empty(t, fused)
}

func TestFuseUnmatchedVideoRequiresConfidence(t *testing.T) {
	e := newTestEngine(t)

	video := []model.VideoNote{
		{Time: 1.0, String: intPtr(1), Fret: intPtr(0), Played: true, Confidence: 0.9},
		{Time: 2.0, String: intPtr(1), Fret: intPtr(0), Played: true, Confidence: 0.3},
	}

	fused := e.Fuse(nil, video, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 1)
	assert.Equal(model.SourceVideoOnly, fused[0].Source)
	assert.InDelta(0.9*0.6, fused[0].Confidence, 0.001)
}

func TestFuseOutputSortedByTime(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 5.0, Duration: 0.2, Frequency: 110.0, Confidence: 0.9, String: 1, Fret: 0},
		{Time: 1.0, Duration: 0.2, Frequency: 146.83, Confidence: 0.9, String: 2, Fret: 0},
	}

	fused := e.Fuse(audio, nil, model.AudioContext{}, model.VideoContext{})

	assert := assert.New(t)
	assert.Len(fused, 2)
	assert.Less(fused[0].Time, fused[1].Time)
}

func TestMatchingInvariantUnderAudioReorder(t *testing.T) {
	e := newTestEngine(t)

	audio := []model.AudioNote{
		{Time: 1.0, Frequency: 110.0, Confidence: 0.9, String: 1, Fret: 0},
		{Time: 2.0, Frequency: 146.83, Confidence: 0.9, String: 2, Fret: 0},
		{Time: 3.0, Frequency: 196.0, Confidence: 0.9, String: 3, Fret: 0},
	}
	shuffled := []model.AudioNote{audio[2], audio[0], audio[1]}
	video := []model.VideoNote{
		{Time: 2.05, String: intPtr(2), Fret: intPtr(0), Played: true, Confidence: 0.8},
		{Time: 3.10, String: intPtr(3), Fret: intPtr(0), Played: true, Confidence: 0.8},
	}

	pairs1, _, _ := e.matchByTime(audio, video)
	pairs2, _, _ := e.matchByTime(shuffled, video)

	assert := assert.New(t)
	assert.Len(pairs1, len(pairs2))
	matched1 := make(map[float64]float64)
	for _, p := range pairs1 {
		matched1[p.video.Time] = p.audio.Time
	}
	for _, p := range pairs2 {
		assert.Equal(matched1[p.video.Time], p.audio.Time)
	}
}

func TestStats(t *testing.T) {
	notes := []model.FusedNote{
		{Source: model.SourceFused, Confidence: 0.8},
		{Source: model.SourceFused, Confidence: 0.6},
		{Source: model.SourceOctaveCorrected, Confidence: 0.7, Corrected: true},
		{Source: model.SourceAudioWeighted, Confidence: 0.5, ConflictResolved: true},
	}

	stats := Stats(notes)

	assert := assert.New(t)
	assert.Equal(4, stats.TotalNotes)
	assert.Equal(2, stats.Sources[model.SourceFused])
	assert.Equal(1, stats.Sources[model.SourceOctaveCorrected])
	assert.Equal(1, stats.Corrections)
	assert.Equal(1, stats.ConflictsResolved)
	assert.InDelta(0.65, stats.AverageConfidence, 0.001)
}

func TestStatsEmpty(t *testing.T) {
	stats := Stats(nil)

	assert := assert.New(t)
	assert.Equal(0, stats.TotalNotes)
	assert.Empty(stats.Sources)
}
