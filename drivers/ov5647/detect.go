package ov5647

// Detect soft-resets the sensor and checks the chip identifier. The sensor
// must be clocked and out of reset.
func (d *Device) Detect() error {
	if err := d.regs.Write(regSWReset, 0x01); err != nil {
		return err
	}
	for _, id := range [...]struct {
		reg  uint16
		want byte
	}{{regChipIDHigh, chipIDHigh}, {regChipIDLow, chipIDLow}} {
		got, err := d.regs.Read(id.reg)
		if err != nil {
			return err
		}
		if got != id.want {
			return &IDError{Reg: id.reg, Got: got, Want: id.want}
		}
	}
	if err := d.regs.Write(regSWReset, 0x00); err != nil {
		return err
	}
	d.emit(Event{Kind: EventDetected})
	return nil
}

// Attach validates the injected clock, powers the sensor just long enough to
// identify it and powers it down again. No mode is configured. Any error is
// fatal for this attach attempt. A sensor that is already powered was
// identified when it came up; Attach leaves it untouched, since a soft reset
// would wipe the applied mode.
func (d *Device) Attach() error {
	if d.clk == nil {
		return ErrMissingResource
	}
	if d.clk.Rate() != ClockRateHz {
		return ErrUnsupportedClock
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.power.RefCount > 0 {
		return nil
	}
	if err := d.powerUpLocked(); err != nil {
		return err
	}
	err := d.Detect()
	d.powerDownLocked()
	return err
}

// Detach drops every outstanding reference and parks the sensor.
func (d *Device) Detach() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.power.RefCount == 0 {
		return
	}
	d.power.RefCount = 0
	d.parkLocked()
}
