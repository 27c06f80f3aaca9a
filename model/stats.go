package model

// FusionStats summarizes one fusion run. Diagnostics only, nothing
// downstream depends on it.
type FusionStats struct {
	TotalNotes        int            `json:"total_notes"`
	Sources           map[Source]int `json:"source_distribution"`
	AverageConfidence float64        `json:"average_confidence"`
	Corrections       int            `json:"corrections_made"`
	ConflictsResolved int            `json:"conflicts_resolved"`
}

// RunSummary is the record persisted per transcription run.
type RunSummary struct {
	RunId             string
	Input             string
	TotalNotes        int
	AverageConfidence float64
	Corrections       int
}
