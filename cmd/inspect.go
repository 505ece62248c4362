package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jsphweid/maestro/chord"
	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/event"
	"github.com/jsphweid/maestro/midi"
	"github.com/jsphweid/maestro/model"
	"github.com/spf13/cobra"
)

var flagVelocity uint8

func init() {
	inspectCmd.Flags().StringVar(&flagDir, "dir", constants.GetMidiDir(), "Directory searched for .mid/.midi files")
	inspectCmd.Flags().Float64Var(&flagSensitivity, "sensitivity", constants.GetSensitivity(), "Largest gap in seconds between notes of one chord")
	inspectCmd.Flags().Uint8Var(&flagVelocity, "velocity", 0, "Show velocities remapped to this trigger velocity (0: as recorded)")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file or piece>",
	Short: "Prints the chords a piece is split into",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		piece, err := loadForInspect(args[0])
		if err != nil {
			return err
		}
		groups := chord.Segment(event.Filter(piece.Events), flagSensitivity)
		fmt.Printf("%s: %d chords\n", piece.Name, len(groups))
		writeChords(os.Stdout, groups, flagVelocity)
		return nil
	},
}

func loadForInspect(arg string) (model.Piece, error) {
	if _, err := os.Stat(arg); err == nil {
		return midi.LoadFile(arg)
	}
	lib, err := midi.NewLibrary(flagDir)
	if err != nil {
		return model.Piece{}, err
	}
	return lib.Load(arg)
}

func writeChords(w io.Writer, groups []model.ChordGroup, velocity uint8) {
	for i, group := range groups {
		if velocity > 0 {
			group = chord.Remap(group, velocity)
		}
		parts := make([]string, 0, len(group))
		for _, evt := range group {
			switch evt.Kind {
			case model.NoteOn:
				parts = append(parts, fmt.Sprintf("+%d/%d", evt.Note, evt.Velocity))
			case model.NoteOff:
				parts = append(parts, fmt.Sprintf("-%d", evt.Note))
			}
		}
		fmt.Fprintf(w, "%4d  %s\n", i+1, strings.Join(parts, " "))
	}
}
