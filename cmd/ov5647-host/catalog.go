package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sensorcode-go/drivers/ov5647"
)

func NewModesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List the sensor mode catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for i, m := range ov5647.Modes() {
				fmt.Fprintf(out, "%d  %-10s %-13s pixel_rate=%d regs=%d\n",
					i, m.Name(), m.Format, m.PixelRate, len(m.Sequence))
			}
			fi := ov5647.FrameInterval()
			fmt.Fprintf(out, "frame interval %d/%d s, native %dx%d\n",
				fi.Numerator, fi.Denominator, ov5647.NativeWidth, ov5647.NativeHeight)
			return nil
		},
	}
}

func NewControlsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "controls",
		Short: "List imaging controls and their ranges",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range ov5647.ControlDescs() {
				ro := ""
				if d.ReadOnly {
					ro = " (read-only)"
				}
				fmt.Fprintf(out, "%-20s min=%d max=%d step=%d default=%d%s\n",
					d.Name, d.Min, d.Max, d.Step, d.Default, ro)
			}
			return nil
		},
	}
}
