package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"sensorcode-go/bus"
	"sensorcode-go/services/config"
	"sensorcode-go/services/hal"
	"sensorcode-go/types"
)

func NewDemoCommand() *cobra.Command {
	var board string
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run a power/format/stream/control cycle on camera 0",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			return runDemo(ctx, cmd.OutOrStdout(), board, timeout)
		},
	}
	cmd.Flags().StringVar(&board, BoardOptionName, "host", "Embedded board config")
	cmd.Flags().DurationVar(&timeout, TimeoutOptionName, time.Second, "Per-request timeout")
	return cmd
}

type step struct {
	verb    string
	payload any
}

func runDemo(ctx context.Context, out io.Writer, board string, timeout time.Duration) error {
	b := bus.NewBus(64)
	conn := b.NewConnection("demo")

	stateSub := conn.Subscribe(bus.T("hal", "state"))
	defer conn.Unsubscribe(stateSub)
	events := conn.Subscribe(bus.T("hal", "capability", "camera", bus.WildSingle, "event"))
	defer conn.Unsubscribe(events)

	go hal.Run(ctx, conn)
	config.NewConfigService().Start(context.WithValue(ctx, config.CtxDeviceKey, board), conn)

	if err := waitReady(stateSub, 5*timeout); err != nil {
		return err
	}
	fmt.Fprintln(out, "hal ready")

	steps := []step{
		{"get_format", nil},
		{"set_control", types.CameraControl{Name: "exposure", Value: 800}},
		{"power", types.CameraPower{On: true}},
		{"set_format", types.CameraFormat{Width: 1920, Height: 1080, Format: "SBGGR10_1X10"}},
		{"stream", types.CameraStream{On: true}},
		{"get_control", types.CameraControl{Name: "exposure"}},
		{"set_control", types.CameraControl{Name: "gain", Value: 2000}},
		{"stream", types.CameraStream{On: false}},
		{"read_register", types.CameraRegister{Addr: 0x300A}},
		{"power", types.CameraPower{On: false}},
		{"power", types.CameraPower{On: false}},
	}
	for _, s := range steps {
		rctx, cancel := context.WithTimeout(ctx, timeout)
		reply, err := conn.RequestWait(rctx, conn.NewMessage(
			bus.T("hal", "capability", "camera", 0, "control", s.verb), s.payload, false))
		cancel()
		if err != nil {
			return fmt.Errorf("%s: %w", s.verb, err)
		}
		fmt.Fprintf(out, "%-14s -> %+v\n", s.verb, reply.Payload)
		drainEvents(out, events)
	}
	return nil
}

func waitReady(sub *bus.Subscription, d time.Duration) error {
	deadline := time.After(d)
	for {
		select {
		case m := <-sub.Channel():
			st, ok := m.Payload.(types.HALState)
			if !ok {
				continue
			}
			switch st.Level {
			case "ready":
				return nil
			case "error":
				return errors.New("hal: " + st.Status + ": " + st.Error)
			}
		case <-deadline:
			return errors.New("hal did not become ready")
		}
	}
}

func drainEvents(out io.Writer, sub *bus.Subscription) {
	for {
		select {
		case m := <-sub.Channel():
			if ev, ok := m.Payload.(types.CameraEvent); ok {
				w := ""
				if ev.Warning {
					w = " WARNING"
				}
				fmt.Fprintf(out, "    event %s%s mode=%d count=%d %s\n", ev.Kind, w, ev.Mode, ev.Count, ev.Error)
			}
		case <-time.After(20 * time.Millisecond):
			return
		}
	}
}
