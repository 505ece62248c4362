package cmd

import (
	"fmt"

	"github.com/jsphweid/maestro/constants"
	"github.com/jsphweid/maestro/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

func init() {
	rootCmd.AddCommand(portsCmd)
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "Lists MIDI input ports",
	RunE: func(cmd *cobra.Command, args []string) error {
		drv, err := rtmididrv.New()
		if err != nil {
			return errors.Wrap(err, "opening midi driver")
		}
		driver := midi.NewDriver(drv, newLogger())
		defer driver.Close()

		names, err := driver.InputNames(constants.GetVirtualPortName())
		if err != nil {
			return err
		}
		if len(names) == 0 {
			return midi.ErrNoInputDevice
		}
		for i, name := range names {
			fmt.Printf("[%d] %s\n", i+1, name)
		}
		return nil
	},
}
