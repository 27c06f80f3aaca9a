package tab

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

const fillChar = '-'

// Generator lays fused notes onto a per-string character timeline.
type Generator struct {
	CharsPerSecond int
	Tuning         model.Tuning
}

func NewGenerator(tuning model.Tuning) *Generator {
	return &Generator{
		CharsPerSecond: constants.CharsPerSecond,
		Tuning:         tuning,
	}
}

// stringNames returns display names, highest-pitched string first.
// The highest string is lowercased so standard tuning reads
// e B G D A E.
func (g *Generator) stringNames() []string {
	names := make([]string, len(g.Tuning))
	for i := range g.Tuning {
		name := g.Tuning[len(g.Tuning)-1-i].Name[:1]
		if i == 0 {
			name = strings.ToLower(name)
		}
		names[i] = name
	}
	return names
}

// Render serializes notes into a fixed-width text tab. Notes without
// a resolved position or with an out-of-range string are discarded
// (counted, never fatal); with nothing left a fixed message is
// returned instead of an empty grid.
func (g *Generator) Render(notes []model.FusedNote) string {
	numStrings := len(g.Tuning)

	var valid []model.FusedNote
	for _, note := range notes {
		if !note.HasPosition() {
			continue
		}
		if *note.String < 0 || *note.String >= numStrings {
			continue
		}
		valid = append(valid, note)
	}

	if len(valid) == 0 {
		return "No notes detected."
	}

	var maxTime float64
	for _, note := range valid {
		end := note.Time + note.Duration
		if end > maxTime {
			maxTime = end
		}
	}
	tabLength := int(maxTime*float64(g.CharsPerSecond)) + constants.TabMarginChars

	lines := make([][]byte, numStrings)
	for i := range lines {
		lines[i] = []byte(strings.Repeat(string(fillChar), tabLength))
	}

	placed := 0
	for _, note := range valid {
		column := int(math.Round(note.Time * float64(g.CharsPerSecond)))
		fretStr := strconv.Itoa(*note.Fret)
		row := numStrings - 1 - *note.String // highest string on top

		// shift right once rather than overwrite a neighbor
		if occupied(lines[row], column, len(fretStr)) {
			column++
		}
		if column+len(fretStr) > tabLength {
			continue
		}
		copy(lines[row][column:], fretStr)
		placed++
	}

	divider := strings.Repeat("=", 60)
	names := g.stringNames()

	var out []string
	out = append(out, divider)
	out = append(out, "GUITAR TAB")
	out = append(out, divider)
	out = append(out, "")
	for i, line := range lines {
		out = append(out, names[i]+"|"+string(line))
	}
	out = append(out, "")
	out = append(out, fmt.Sprintf("Total notes: %v", len(valid)))
	out = append(out, fmt.Sprintf("Notes placed: %v", placed))
	out = append(out, fmt.Sprintf("Duration: %.2f seconds", maxTime))
	out = append(out, confidenceLine(valid)...)
	out = append(out, sourcesLine(valid)...)
	out = append(out, divider)

	return strings.Join(out, "\n")
}

func occupied(line []byte, column int, width int) bool {
	for i := 0; i < width; i++ {
		if column+i >= len(line) {
			return false
		}
		if line[column+i] != fillChar {
			return true
		}
	}
	return false
}

func confidenceLine(notes []model.FusedNote) []string {
	var confidences []float64
	for _, note := range notes {
		if note.Confidence > 0 {
			confidences = append(confidences, note.Confidence)
		}
	}
	if len(confidences) == 0 {
		return nil
	}
	return []string{fmt.Sprintf("Average confidence: %.2f", util.Mean(confidences))}
}

func sourcesLine(notes []model.FusedNote) []string {
	counts := make(map[model.Source]int)
	for _, note := range notes {
		if note.Source != "" {
			counts[note.Source]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	keys := util.GetKeys(counts)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	var parts []string
	for _, key := range keys {
		parts = append(parts, fmt.Sprintf("%v=%v", key, counts[key]))
	}
	return []string{"Sources: " + strings.Join(parts, " ")}
}
