package fretboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tabfuse/tabfuse/model"
)

func TestMapToNotesGroupsByOnsets(t *testing.T) {
	r := newTestResolver(t)

	frames := []model.PitchFrame{
		{Time: 0.00, Frequency: 110.0, Confidence: 0.6},
		{Time: 0.05, Frequency: 110.0, Confidence: 0.9},
		{Time: 0.10, Frequency: 110.5, Confidence: 0.7},
		{Time: 0.55, Frequency: 146.83, Confidence: 0.8},
		{Time: 0.60, Frequency: 146.83, Confidence: 0.5},
	}
	onsets := []float64{0.0, 0.5}

	notes := MapToNotes(r, frames, onsets)

	assert := assert.New(t)
	assert.Len(notes, 2)

	// first window uses its most confident frame
	assert.InDelta(0.0, notes[0].Time, 0.001)
	assert.InDelta(0.5, notes[0].Duration, 0.001)
	assert.InDelta(110.0, notes[0].Frequency, 0.01)
	assert.InDelta(0.9, notes[0].Confidence, 0.001)
	assert.Equal(1, notes[0].String)
	assert.Equal(0, notes[0].Fret)

	// last window closes at the final frame time
	assert.InDelta(0.5, notes[1].Time, 0.001)
	assert.InDelta(0.1, notes[1].Duration, 0.001)
}

func TestMapToNotesSkipsEmptyWindows(t *testing.T) {
	r := newTestResolver(t)

	frames := []model.PitchFrame{
		{Time: 0.95, Frequency: 110.0, Confidence: 0.9},
		{Time: 1.0, Frequency: 110.0, Confidence: 0.9},
	}
	onsets := []float64{0.0, 0.9}

	notes := MapToNotes(r, frames, onsets)
	assert.Len(t, notes, 1)
	assert.InDelta(t, 0.9, notes[0].Time, 0.001)
}

func TestMapToNotesDropsUnresolvable(t *testing.T) {
	r := newTestResolver(t)

	frames := []model.PitchFrame{
		{Time: 0.0, Frequency: 3000.0, Confidence: 0.9},
	}
	onsets := []float64{0.0}

	notes := MapToNotes(r, frames, onsets)
	assert.Empty(t, notes)
}
