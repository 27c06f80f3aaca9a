package fusion

import (
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
)

// Stats summarizes a fused note list for diagnostics.
func Stats(notes []model.FusedNote) model.FusionStats {
	var stats model.FusionStats
	stats.Sources = make(map[model.Source]int)
	if len(notes) == 0 {
		return stats
	}

	var confidences []float64
	for _, note := range notes {
		stats.Sources[note.Source]++
		confidences = append(confidences, note.Confidence)
		if note.Corrected {
			stats.Corrections++
		}
		if note.ConflictResolved {
			stats.ConflictsResolved++
		}
	}

	stats.TotalNotes = len(notes)
	stats.AverageConfidence = util.Mean(confidences)
	return stats
}
