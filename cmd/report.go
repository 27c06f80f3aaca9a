package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tabfuse/tabfuse/detect"
	"github.com/tabfuse/tabfuse/model"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report <audio.json> <video.json>",
	Short: "Creates a fusion report",
	Long:  `Creates a fusion report without writing a tab`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 2 {
			panic("Need audio and video detection files...")
		}
		report(args[0], args[1])
	},
}

func report(audioPath string, videoPath string) {
	audio := detect.LoadAudioOrPanic(audioPath)
	video := detect.LoadVideoOrPanic(videoPath)

	result := runPipeline(audio, video, model.StandardTuning)

	fmt.Printf("audio notes: %v\n", len(result.AudioNotes))
	fmt.Printf("video notes: %v\n", len(video.Notes))
	fmt.Printf("fused notes: %v\n", result.Stats.TotalNotes)
	fmt.Printf("events: %v\n", len(result.Events))

	chords := 0
	for _, event := range result.Events {
		if event.IsChord() {
			chords++
		}
	}
	fmt.Printf("chord events: %v\n", chords)

	printStats(result.Stats)
}
