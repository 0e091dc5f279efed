// Package hal runs the hardware abstraction service on the host board: a
// simulated OV5647 on i2c0 clocked from xclk0.
package hal

import (
	"context"

	"sensorcode-go/bus"
	"sensorcode-go/services/hal/internal/platform"
	"sensorcode-go/services/hal/internal/service"

	// Register device adaptors.
	_ "sensorcode-go/services/hal/internal/devices/ov5647adpt"
)

// Run blocks until ctx is cancelled. Devices arrive on config/hal.
func Run(ctx context.Context, conn *bus.Connection) {
	b := platform.NewHostBoard()
	service.New(conn, b.Buses, b.Pins, b.Clocks).Run(ctx)
}
