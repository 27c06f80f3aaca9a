package fretboard

import "github.com/tabfuse/tabfuse/model"

// MapToNotes turns a raw pitch-frame stream plus detected onsets into
// position-resolved audio notes. Frames are grouped into
// [onset, next onset) windows and the most confident frame of each
// window is resolved. Frames whose pitch resolves to no cell are
// dropped. The resolver's continuity memory is reset first, one call
// equals one note sequence.
func MapToNotes(r *Resolver, frames []model.PitchFrame, onsets []float64) []model.AudioNote {
	var notes []model.AudioNote
	r.Reset()

	for i, onsetTime := range onsets {
		var nextOnset float64
		if i < len(onsets)-1 {
			nextOnset = onsets[i+1]
		} else if len(frames) > 0 {
			nextOnset = frames[len(frames)-1].Time
		} else {
			nextOnset = onsetTime + 1.0
		}

		// most confident frame inside the window
		bestIdx := -1
		for j, frame := range frames {
			if frame.Time < onsetTime || frame.Time >= nextOnset {
				continue
			}
			if bestIdx == -1 || frame.Confidence > frames[bestIdx].Confidence {
				bestIdx = j
			}
		}
		if bestIdx == -1 {
			continue
		}

		frame := frames[bestIdx]
		position, ok := r.Resolve(frame.Frequency)
		if !ok {
			continue
		}

		notes = append(notes, model.AudioNote{
			Time:       onsetTime,
			Duration:   nextOnset - onsetTime,
			String:     position.String,
			Fret:       position.Fret,
			Frequency:  frame.Frequency,
			Confidence: frame.Confidence,
		})
	}

	return notes
}
