package fretboard

import (
	"math"

	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

// Resolver maps detected frequencies onto fretboard cells. It keeps
// the last resolved cell so consecutive notes of one sequence favor
// small hand movements; Reset clears that memory between sequences.
// Not safe for concurrent use, hand each goroutine its own instance.
type Resolver struct {
	table     *Table
	Tolerance float64
	last      *model.Position
}

func NewResolver(table *Table) *Resolver {
	return &Resolver{
		table:     table,
		Tolerance: constants.PitchToleranceCents,
	}
}

// Reset clears the last-position memory. Call it before resolving an
// unrelated note sequence.
func (r *Resolver) Reset() {
	r.last = nil
}

// Resolve finds the best (string, fret) cell for a frequency. It
// tries the frequency itself plus one octave down and one octave up,
// since pitch detectors commonly report octave errors. Returns false
// when no cell is within tolerance for any candidate.
func (r *Resolver) Resolve(frequency float64) (model.ResolvedPosition, bool) {
	bestScore := math.Inf(1)
	var best model.ResolvedPosition
	found := false

	// fixed candidate order keeps ties deterministic
	candidates := []float64{frequency, frequency / 2, frequency * 2}

	for _, testFreq := range candidates {
		if testFreq < constants.MinGuitarFreq || testFreq > constants.MaxGuitarFreq {
			continue
		}

		for stringIdx := 0; stringIdx < r.table.NumStrings(); stringIdx++ {
			for fret := 0; fret <= constants.NumFrets; fret++ {
				score := r.scorePosition(stringIdx, fret, testFreq)
				if score < bestScore {
					bestScore = score
					best = model.ResolvedPosition{
						String:            stringIdx,
						Fret:              fret,
						Frequency:         testFreq,
						DetectedFrequency: frequency,
					}
					found = true
				}
			}
		}
	}

	if found {
		r.last = &model.Position{String: best.String, Fret: best.Fret}
	}
	return best, found
}

// scorePosition scores one cell for one frequency candidate, lower is
// better. Inf means disqualified.
func (r *Resolver) scorePosition(stringIdx int, fret int, frequency float64) float64 {
	cellFreq := r.table.Frequency(stringIdx, fret)
	if cellFreq <= 0 {
		return math.Inf(1)
	}

	centsDiff := CentsDiff(frequency, cellFreq)
	if centsDiff > r.Tolerance {
		return math.Inf(1)
	}

	score := centsDiff

	score += float64(fret) * constants.FretPenaltyWeight

	// register preference: high notes sit more naturally on
	// higher-pitched strings, low notes on lower ones
	if frequency > constants.RegisterSplitFreq {
		score += float64(r.table.NumStrings()-1-stringIdx) * constants.StringPreferenceWeight
	} else {
		score += float64(stringIdx) * constants.StringPreferenceWeight
	}

	if r.last != nil {
		stringDistance := util.Abs(stringIdx - r.last.String)
		fretDistance := util.Abs(fret - r.last.Fret)
		score += float64(stringDistance)*constants.ContinuityStringPenalty +
			float64(fretDistance)*constants.ContinuityFretPenalty
	}

	return score
}
