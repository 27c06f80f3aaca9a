package model

// AudioContext carries optional scalar sub-signals for audio
// confidence scoring. Nil fields are treated as absent, not zero.
type AudioContext struct {
	OnsetStrength     *float64 `json:"onset_strength,omitempty"`
	FrequencyVariance *float64 `json:"frequency_variance,omitempty"`
}

// VideoContext carries optional scalar sub-signals for video
// confidence scoring.
type VideoContext struct {
	PositionClarity    *float64 `json:"position_clarity,omitempty"`
	PickingDetected    *bool    `json:"picking_detected,omitempty"`
	CalibrationQuality *float64 `json:"calibration_quality,omitempty"`
}
