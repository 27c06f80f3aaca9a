package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tabfuse/tabfuse/constants"
	"github.com/tabfuse/tabfuse/fretboard"
	"github.com/tabfuse/tabfuse/model"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <frequency>",
	Short: "Inspects a frequency",
	Long:  `Shows every fretboard cell within tolerance of a frequency and the resolver's pick`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		frequency, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			panic("Could not parse frequency: " + err.Error())
		}
		inspect(frequency)
	},
}

func inspect(frequency float64) {
	table, err := fretboard.NewTable(model.StandardTuning)
	if err != nil {
		panic("Invalid tuning: " + err.Error())
	}

	candidates := []float64{frequency, frequency / 2, frequency * 2}
	for _, testFreq := range candidates {
		if testFreq < constants.MinGuitarFreq || testFreq > constants.MaxGuitarFreq {
			continue
		}
		for stringIdx := 0; stringIdx < table.NumStrings(); stringIdx++ {
			for fret := 0; fret <= constants.NumFrets; fret++ {
				cellFreq := table.Frequency(stringIdx, fret)
				cents := fretboard.CentsDiff(testFreq, cellFreq)
				if cents <= constants.PitchToleranceCents {
					fmt.Printf("candidate %.2f Hz: string %v fret %v (%.2f Hz, %.1f cents)\n",
						testFreq, stringIdx, fret, cellFreq, cents)
				}
			}
		}
	}

	resolver := fretboard.NewResolver(table)
	position, ok := resolver.Resolve(frequency)
	if !ok {
		fmt.Println("resolver: no cell within tolerance")
		return
	}
	fmt.Printf("resolver pick: string %v fret %v (corrected %.2f Hz)\n",
		position.String, position.Fret, position.Frequency)
}
