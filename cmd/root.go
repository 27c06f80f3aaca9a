package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tabfuse",
	Short: "Multimodal guitar tab transcriber",
	Long:  `Fuses audio pitch detections and video hand detections into playable guitar tablature.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
