// Command ov5647-host boots the bus, the config service and the HAL against
// the simulated OV5647 and drives the camera over the bus.
//
//	ov5647-host demo              power, format, stream and control walk-through
//	ov5647-host modes             print the mode catalog
//	ov5647-host controls          print control ranges
package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

const (
	BoardOptionName   = "board"
	TimeoutOptionName = "timeout"
)

func NewRootCommand(out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ov5647-host",
		Short:         "Host harness for the OV5647 camera HAL",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetOut(out)
	cmd.AddCommand(NewDemoCommand())
	cmd.AddCommand(NewModesCommand())
	cmd.AddCommand(NewControlsCommand())
	return cmd
}

func main() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
