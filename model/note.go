package model

// Source records which fusion rule produced a note.
type Source string

const (
	SourceFused             Source = "fused"
	SourceAudioOnly         Source = "audio_only"
	SourceVideoOnly         Source = "video_only"
	SourceOctaveCorrected   Source = "octave_corrected"
	SourcePositionCorrected Source = "position_corrected"
	SourceAudioPriority     Source = "audio_priority"
	SourceVideoPriority     Source = "video_priority"
	SourceAudioWeighted     Source = "audio_weighted"
	SourceVideoWeighted     Source = "video_weighted"
)

// PitchFrame is one element of the raw pitch stream from the audio
// detector. Times are seconds, non-decreasing within one stream.
type PitchFrame struct {
	Time       float64 `json:"time"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
}

// AudioNote is an onset-windowed note with its fretboard position
// already resolved.
type AudioNote struct {
	Time       float64 `json:"time"`
	Duration   float64 `json:"duration"`
	Frequency  float64 `json:"frequency"`
	Confidence float64 `json:"confidence"`
	String     int     `json:"string"`
	Fret       int     `json:"fret"`
}

// VideoNote is one note event from the video detector. String and
// Fret are nil when the detector saw a hand but could not project it
// onto the fretboard. Played must only be true when picking or
// strumming motion was independently confirmed.
type VideoNote struct {
	Time       float64 `json:"time"`
	String     *int    `json:"string"`
	Fret       *int    `json:"fret"`
	Played     bool    `json:"played"`
	Strumming  bool    `json:"strumming"`
	Confidence float64 `json:"confidence"`
	Finger     string  `json:"finger,omitempty"`
}

// Position is a concrete fretboard cell.
type Position struct {
	String int `json:"string"`
	Fret   int `json:"fret"`
}

// ResolvedPosition is the resolver's answer for one frequency.
// Frequency is the (possibly octave-corrected) candidate that matched
// the table; DetectedFrequency is what the pitch detector reported.
type ResolvedPosition struct {
	String            int
	Fret              int
	Frequency         float64
	DetectedFrequency float64
}

// FusedNote is the unit handed to the optimizer and renderer. String
// and Fret must both be set before a note is accepted for rendering.
type FusedNote struct {
	Time       float64 `json:"time"`
	Duration   float64 `json:"duration,omitempty"`
	String     *int    `json:"string"`
	Fret       *int    `json:"fret"`
	Frequency  float64 `json:"frequency,omitempty"`
	Confidence float64 `json:"confidence"`
	Source     Source  `json:"source"`

	AudioConfidence float64 `json:"audio_confidence,omitempty"`
	VideoConfidence float64 `json:"video_confidence,omitempty"`
	Agreement       float64 `json:"agreement,omitempty"`

	// AltPosition carries the video-implied cell when fusion kept the
	// audio side of a disagreement.
	AltPosition       *Position `json:"video_position,omitempty"`
	RawAudioFrequency float64   `json:"audio_frequency_raw,omitempty"`
	Corrected         bool      `json:"corrected,omitempty"`
	ConflictResolved  bool      `json:"conflict_resolved,omitempty"`
	Optimized         bool      `json:"position_optimized,omitempty"`

	Finger    string `json:"finger,omitempty"`
	Strumming bool   `json:"strumming,omitempty"`
}

// HasPosition reports whether both string and fret are set.
func (n *FusedNote) HasPosition() bool {
	return n.String != nil && n.Fret != nil
}

// NoteEvent is a single note or a chord, depending on how many notes
// share the anchor time.
type NoteEvent struct {
	Time  float64     `json:"time"`
	Notes []FusedNote `json:"notes"`
}

// IsChord reports whether the event groups more than one note.
func (e *NoteEvent) IsChord() bool {
	return len(e.Notes) > 1
}
