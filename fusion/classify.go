package fusion

import "github.com/tabfuse/tabfuse/confidence"

// ruling names which resolution rule fires for a matched pair. The
// classification is pure so each rule's merge can be tested on its own.
type ruling int

const (
	rulingExact ruling = iota
	rulingOctave
	rulingPosition
	rulingDisagree
	rulingDefault
)

// classify picks the ruling for a comparison, in fixed priority order:
// exact position agreement, octave error (pitch roughly 1200 cents
// off), same pitch under a different fingering, outright disagreement,
// else the default agreement-weighted merge.
func classify(cmp confidence.Comparison) ruling {
	switch {
	case cmp.StringMatch && cmp.FretMatch:
		return rulingExact
	case cmp.FrequencyDiffCents > 1100 && cmp.FrequencyDiffCents < 1300:
		return rulingOctave
	case cmp.FrequencyDiffCents < 50:
		return rulingPosition
	case cmp.Agreement < 0.5:
		return rulingDisagree
	default:
		return rulingDefault
	}
}
