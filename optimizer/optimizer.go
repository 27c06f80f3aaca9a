package optimizer

import (
	"sort"

	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

// Optimizer re-evaluates ambiguous fused notes for hand playability
// and groups simultaneous notes into chord events.
type Optimizer struct {
	MaxFretStretch int
	MaxStringJump  int
	ChordWindow    float64
}

func New() *Optimizer {
	return &Optimizer{
		MaxFretStretch: constants.MaxFretStretch,
		MaxStringJump:  constants.MaxStringJump,
		ChordWindow:    constants.ChordWindowSec,
	}
}

// Optimize walks the notes in order, tracking the previously emitted
// position. Notes with video confirmation and high confidence are
// left untouched; the rest may switch to their annotated alternate
// position when that transition is clearly more playable.
func (o *Optimizer) Optimize(notes []model.FusedNote) []model.FusedNote {
	if len(notes) == 0 {
		return notes
	}

	optimized := make([]model.FusedNote, 0, len(notes))
	var last *model.Position

	for _, note := range notes {
		trusted := (note.Source == model.SourceFused || note.Source == model.SourceVideoOnly) &&
			note.Confidence > 0.8
		if !trusted {
			note = o.optimizeSingle(note, last)
		}
		optimized = append(optimized, note)
		if note.HasPosition() {
			last = &model.Position{String: *note.String, Fret: *note.Fret}
		}
	}

	return optimized
}

func (o *Optimizer) optimizeSingle(note model.FusedNote, last *model.Position) model.FusedNote {
	if note.AltPosition == nil || last == nil || !note.HasPosition() {
		return note
	}

	currentScore := o.playabilityScore(*note.String, *note.Fret, last.String, last.Fret)
	altScore := o.playabilityScore(note.AltPosition.String, note.AltPosition.Fret, last.String, last.Fret)

	// switch only on a clear win, more than 20% better
	if altScore > currentScore*1.2 {
		alt := *note.AltPosition
		note.String = &alt.String
		note.Fret = &alt.Fret
		note.Optimized = true
	}

	return note
}

// playabilityScore estimates how comfortable the hand transition from
// (string2, fret2) to (string1, fret1) is. Higher is better.
func (o *Optimizer) playabilityScore(string1 int, fret1 int, string2 int, fret2 int) float64 {
	score := 100.0

	fretJump := util.Abs(fret1 - fret2)
	if fretJump > o.MaxFretStretch {
		score -= float64(fretJump-o.MaxFretStretch) * 10
	}

	stringJump := util.Abs(string1 - string2)
	if stringJump > o.MaxStringJump {
		score -= float64(stringJump-o.MaxStringJump) * 5
	}

	// staying in the same position area
	if fretJump <= 2 && stringJump <= 1 {
		score += 20
	}

	if score < 0 {
		return 0
	}
	return score
}

// GroupIntoChords gathers notes whose times fall within the chord
// window of the group's first (anchor) note. The window is anchored,
// not rolling, so a slow smear of notes does not chain into one giant
// chord.
func (o *Optimizer) GroupIntoChords(notes []model.FusedNote) []model.NoteEvent {
	if len(notes) == 0 {
		return nil
	}

	sorted := make([]model.FusedNote, len(notes))
	copy(sorted, notes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time < sorted[j].Time
	})

	var events []model.NoteEvent
	group := []model.FusedNote{sorted[0]}
	anchorTime := sorted[0].Time

	for _, note := range sorted[1:] {
		if util.Abs(note.Time-anchorTime) < o.ChordWindow {
			group = append(group, note)
			continue
		}
		events = append(events, model.NoteEvent{Time: anchorTime, Notes: group})
		group = []model.FusedNote{note}
		anchorTime = note.Time
	}
	events = append(events, model.NoteEvent{Time: anchorTime, Notes: group})

	return events
}
