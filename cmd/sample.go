package cmd

import (
	"os"
	"path/filepath"

	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/sample"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	sampleCmd.Flags().StringVar(&flagDir, "dir", constants.GetMidiDir(), "Directory the demo piece is written to")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Writes a short demo piece into the library",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := os.MkdirAll(flagDir, 0755); err != nil {
			return errors.Wrap(err, "creating library directory")
		}
		path := filepath.Join(flagDir, "Maestro Demo.mid")
		if err := sample.WriteFile(path); err != nil {
			return err
		}
		newLogger().Info("wrote demo piece", "path", path)
		return nil
	},
}
