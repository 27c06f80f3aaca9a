package constants

import "os"

func GetOutDir() string {
	path := os.Getenv("OUT_PATH")
	if path != "" {
		return path
	}
	return "./out"
}

func GetPort() string {
	port := os.Getenv("PORT")
	if port != "" {
		return port
	}
	return "8080"
}

// GetDynamoEndpoint returns "" when run persistence is disabled.
func GetDynamoEndpoint() string {
	return os.Getenv("DYNAMO_ENDPOINT")
}

const NumFrets = 22

// Absolute guitar range in Hz; octave candidates outside it are
// discarded by the resolver.
const (
	MinGuitarFreq = 80.0
	MaxGuitarFreq = 1200.0
)

// PitchToleranceCents disqualifies a fretboard cell when the detected
// pitch is further away than this. 50 cents = half a semitone.
const PitchToleranceCents = 50.0

// Resolver scoring weights.
const (
	FretPenaltyWeight      = 0.5
	StringPreferenceWeight = 2.0
	// Above this frequency prefer higher-pitched strings.
	RegisterSplitFreq       = 300.0
	ContinuityStringPenalty = 3.0
	ContinuityFretPenalty   = 0.5
)

// Fusion defaults.
const (
	AudioWeight         = 0.4
	VideoWeight         = 0.6
	TimeToleranceSec    = 0.15
	AudioOnlyThreshold  = 0.5
	VideoOnlyThreshold  = 0.4
	OctaveBoost         = 1.2
	DisagreePenalty     = 0.8
	DominanceRatio      = 1.5
	VideoShareThreshold = 0.6
)

// Optimizer defaults.
const (
	MaxFretStretch = 4
	MaxStringJump  = 3
	ChordWindowSec = 0.05
)

// Tab rendering.
const (
	CharsPerSecond = 8
	TabMarginChars = 10
)
