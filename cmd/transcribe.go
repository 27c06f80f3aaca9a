package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/db"
	"github.com/tabfuse/tabfuse/detect"
	"github.com/tabfuse/tabfuse/midiout"
	"github.com/tabfuse/tabfuse/model"
)

var (
	transcribeOutput  string
	transcribeMidi    string
	transcribeTuning  string
	transcribeDropped bool
)

func init() {
	transcribeCmd.Flags().StringVarP(&transcribeOutput, "output", "o", "", "output tab file")
	transcribeCmd.Flags().StringVar(&transcribeMidi, "midi", "", "also export a MIDI file")
	transcribeCmd.Flags().StringVar(&transcribeTuning, "tuning", "", "YAML tuning file")
	transcribeCmd.Flags().BoolVar(&transcribeDropped, "one-step-down", false, "use one-step-down tuning")
	rootCmd.AddCommand(transcribeCmd)
}

var transcribeCmd = &cobra.Command{
	Use:   "transcribe <audio.json> <video.json>",
	Short: "Fuses detections into a tab",
	Long:  `Fuses audio and video detection files into a rendered guitar tab`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need audio and video detection files...")
		}
		Transcribe(args[0], args[1])
	},
}

func pickTuning() model.Tuning {
	if transcribeTuning != "" {
		return loadTuningOrPanic(transcribeTuning)
	}
	if transcribeDropped {
		return model.OneStepDownTuning
	}
	return model.StandardTuning
}

func Transcribe(audioPath string, videoPath string) {
	audio := detect.LoadAudioOrPanic(audioPath)
	video := detect.LoadVideoOrPanic(videoPath)
	tuning := pickTuning()

	fmt.Printf("Step 1/4: Loaded %v pitch frames, %v onsets, %v video notes\n",
		len(audio.Frames), len(audio.Onsets), len(video.Notes))

	result := runPipeline(audio, video, tuning)

	fmt.Printf("Step 2/4: Mapped %v audio notes, fused %v notes\n",
		len(result.AudioNotes), result.Stats.TotalNotes)
	fmt.Printf("Step 3/4: Grouped %v events\n", len(result.Events))

	printStats(result.Stats)

	outputPath := transcribeOutput
	if outputPath == "" {
		os.MkdirAll(constants.GetOutDir(), 0777)
		stem := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
		outputPath = filepath.Join(constants.GetOutDir(), stem+"_tab.txt")
	}
	if err := os.WriteFile(outputPath, []byte(result.Tab), 0666); err != nil {
		panic("Could not write tab file: " + err.Error())
	}
	fmt.Printf("Step 4/4: Tab saved to %v\n", outputPath)

	if transcribeMidi != "" {
		if err := midiout.Write(result.Notes, tuning, transcribeMidi); err != nil {
			panic("Could not write MIDI file: " + err.Error())
		}
		fmt.Printf("MIDI saved to %v\n", transcribeMidi)
	}

	if constants.GetDynamoEndpoint() != "" {
		db.PutRunSummary(model.RunSummary{
			RunId:             uuid.New().String(),
			Input:             audioPath,
			TotalNotes:        result.Stats.TotalNotes,
			AverageConfidence: result.Stats.AverageConfidence,
			Corrections:       result.Stats.Corrections,
		})
	}
}

func printStats(stats model.FusionStats) {
	fmt.Printf("Total notes: %v\n", stats.TotalNotes)
	fmt.Printf("Average confidence: %.2f\n", stats.AverageConfidence)
	fmt.Printf("Corrections made: %v\n", stats.Corrections)
	fmt.Printf("Conflicts resolved: %v\n", stats.ConflictsResolved)
	for _, source := range sortedSources(stats.Sources) {
		fmt.Printf("  %v: %v\n", source, stats.Sources[source])
	}
}
