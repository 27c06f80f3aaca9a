package fretboard

import (
	"errors"
	"math"

	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"
)

// semitone offsets relative to A within the same octave
var noteOffsets = map[string]int{
	"C": -9, "C#": -8, "D": -7, "D#": -6,
	"E": -5, "F": -4, "F#": -3, "G": -2,
	"G#": -1, "A": 0, "A#": 1, "B": 2,
}

const a4Freq = 440.0

// NoteFrequency converts a note name and octave to an equal
// temperament frequency. Panics on an unknown note name since tunings
// are configuration and must fail fast.
func NoteFrequency(name string, octave int) float64 {
	offset, ok := noteOffsets[name]
	if !ok {
		panic("Unknown note name in tuning: " + name)
	}
	semitonesFromA4 := offset + (octave-4)*12
	return a4Freq * math.Pow(2, float64(semitonesFromA4)/12)
}

// MidiNote converts a note name and octave to its MIDI key number
// (A4 = 69, C4 = 60).
func MidiNote(name string, octave int) int {
	offset, ok := noteOffsets[name]
	if !ok {
		panic("Unknown note name in tuning: " + name)
	}
	// offset is relative to A; A sits 9 semitones above C
	return 12*(octave+1) + offset + 9
}

type Cell struct {
	String    int
	Fret      int
	Frequency float64
}

// Table holds the computed frequency of every (string, fret) cell for
// one tuning. Immutable once built.
type Table struct {
	Tuning model.Tuning
	cells  [][]Cell
}

func NewTable(tuning model.Tuning) (*Table, error) {
	if len(tuning) == 0 {
		return nil, errors.New("tuning must have at least one string")
	}

	cells := make([][]Cell, len(tuning))
	for stringIdx, open := range tuning {
		baseFreq := NoteFrequency(open.Name, open.Octave)
		stringCells := make([]Cell, constants.NumFrets+1)
		for fret := 0; fret <= constants.NumFrets; fret++ {
			stringCells[fret] = Cell{
				String:    stringIdx,
				Fret:      fret,
				Frequency: baseFreq * math.Pow(2, float64(fret)/12),
			}
		}
		cells[stringIdx] = stringCells
	}

	return &Table{Tuning: tuning, cells: cells}, nil
}

func (t *Table) NumStrings() int {
	return len(t.cells)
}

// Frequency returns the cell frequency, or 0 when the position is off
// the fretboard.
func (t *Table) Frequency(stringIdx int, fret int) float64 {
	if stringIdx < 0 || stringIdx >= len(t.cells) {
		return 0
	}
	if fret < 0 || fret > constants.NumFrets {
		return 0
	}
	return t.cells[stringIdx][fret].Frequency
}

// CentsDiff is the logarithmic pitch distance between two
// frequencies. 100 cents = one semitone.
func CentsDiff(f1 float64, f2 float64) float64 {
	return math.Abs(1200 * math.Log2(f1/f2))
}
