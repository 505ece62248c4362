package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var flagVerbose bool

var rootCmd = &cobra.Command{
	Use:   "maestro",
	Short: "Play a MIDI file one chord per key press",
	Long: `maestro steps through a MIDI file chord by chord. Every key pressed on the
input keyboard sends the next chord to a virtual output port, scaled to how
hard the key was hit.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "maestro",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
