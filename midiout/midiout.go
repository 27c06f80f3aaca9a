package midiout

import (
	"sort"

	"github.com/tabfuse/tabfuse/fretboard"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/util"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	ticksPerQuarter = 960
	// 120 bpm fixed, so one quarter is half a second
	ticksPerSecond = ticksPerQuarter * 2
	// sustain floor for notes whose duration was not derived
	minDurationSec = 0.125
)

type timedMessage struct {
	tick uint64
	msg  smf.Message
}

// Write exports fused notes as a single-track standard MIDI file.
// Notes without a resolved position are skipped. Velocity tracks the
// fused confidence.
func Write(notes []model.FusedNote, tuning model.Tuning, path string) error {
	var timed []timedMessage

	for _, note := range notes {
		if !note.HasPosition() {
			continue
		}
		if *note.String < 0 || *note.String >= len(tuning) {
			continue
		}

		open := tuning[*note.String]
		key := uint8(fretboard.MidiNote(open.Name, open.Octave) + *note.Fret)
		velocity := uint8(30 + util.Clamp01(note.Confidence)*97)

		duration := note.Duration
		if duration < minDurationSec {
			duration = minDurationSec
		}

		onTick := uint64(note.Time * ticksPerSecond)
		offTick := uint64((note.Time + duration) * ticksPerSecond)

		timed = append(timed, timedMessage{tick: onTick, msg: smf.Message(midi.NoteOn(0, key, velocity))})
		timed = append(timed, timedMessage{tick: offTick, msg: smf.Message(midi.NoteOff(0, key))})
	}

	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].tick < timed[j].tick
	})

	var track smf.Track
	track = append(track, smf.Event{Delta: 0, Message: smf.MetaTempo(120)})

	var lastTick uint64
	for _, tm := range timed {
		delta := uint32(tm.tick - lastTick)
		track = append(track, smf.Event{Delta: delta, Message: tm.msg})
		lastTick = tm.tick
	}
	track.Close(0)

	var out smf.SMF
	out.TimeFormat = smf.MetricTicks(ticksPerQuarter)
	out.Tracks = append(out.Tracks, track)

	return out.WriteFile(path)
}
