package cmd

import (
	"os"
	"sort"

	"github.com/tabfuse/tabfuse/confidence"
	"github.com/tabfuse/tabfuse/detect"
	"github.com/tabfuse/tabfuse/fretboard"
	"github.com/tabfuse/tabfuse/fusion"
	"github.com/tabfuse/tabfuse/model"
	"github.com/tabfuse/tabfuse/optimizer"
	"github.com/tabfuse/tabfuse/tab"
	"github.com/tabfuse/tabfuse/util"
	"gopkg.in/yaml.v3"
)

type runResult struct {
	AudioNotes []model.AudioNote
	Notes      []model.FusedNote
	Events     []model.NoteEvent
	Stats      model.FusionStats
	Tab        string
}

// runPipeline is the full core path: resolve audio positions, fuse
// the two streams, optimize for playability, group chords, render.
func runPipeline(audio detect.AudioDetections, video detect.VideoDetections, tuning model.Tuning) runResult {
	table, err := fretboard.NewTable(tuning)
	if err != nil {
		panic("Invalid tuning: " + err.Error())
	}

	resolver := fretboard.NewResolver(table)
	audioNotes := fretboard.MapToNotes(resolver, audio.Frames, audio.Onsets)

	scorer := confidence.NewScorer(table)
	engine := fusion.NewEngine(scorer)
	fused := engine.Fuse(audioNotes, video.Notes, audio.Context, video.Context)

	opt := optimizer.New()
	optimized := opt.Optimize(fused)
	events := opt.GroupIntoChords(optimized)

	return runResult{
		AudioNotes: audioNotes,
		Notes:      optimized,
		Events:     events,
		Stats:      fusion.Stats(optimized),
		Tab:        tab.NewGenerator(tuning).Render(optimized),
	}
}

func sortedSources(sources map[model.Source]int) []model.Source {
	keys := util.GetKeys(sources)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func loadTuningOrPanic(path string) model.Tuning {
	data, err := os.ReadFile(path)
	if err != nil {
		panic("Could not read tuning file: " + err.Error())
	}
	var tuning model.Tuning
	if err := yaml.Unmarshal(data, &tuning); err != nil {
		panic("Could not parse tuning file: " + err.Error())
	}
	return tuning
}
