package model

type TranscribeRequestBody struct {
	AudioFrames  []PitchFrame  `json:"audio_frames"`
	Onsets       []float64     `json:"onsets"`
	VideoNotes   []VideoNote   `json:"video_notes"`
	AudioContext *AudioContext `json:"audio_context,omitempty"`
	VideoContext *VideoContext `json:"video_context,omitempty"`
}

type TranscribeResponse struct {
	RunId  string      `json:"run_id"`
	Tab    string      `json:"tab"`
	Notes  []FusedNote `json:"notes"`
	Events []NoteEvent `json:"events"`
	Stats  FusionStats `json:"stats"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
