package ov5647

// Clock is the sensor XCLK capability.
type Clock interface {
	Enable() error
	Disable()
	Rate() uint32
}

// ResetLine drives the sensor's reset input. Implementations are best-effort.
type ResetLine interface {
	Assert()
	Deassert()
}

// OutputPin is the minimal GPIO surface used by ResetFromPin.
type OutputPin interface {
	Set(level bool)
}

type pinReset struct {
	pin       OutputPin
	activeLow bool
}

func (r pinReset) Assert()   { r.pin.Set(!r.activeLow) }
func (r pinReset) Deassert() { r.pin.Set(r.activeLow) }

// ResetFromPin adapts an output pin. activeLow is the usual wiring (PWDN/XSHUTDOWN).
func ResetFromPin(pin OutputPin, activeLow bool) ResetLine {
	if pin == nil {
		return nil
	}
	return pinReset{pin: pin, activeLow: activeLow}
}

// PowerState is a snapshot of the power/reset state machine.
type PowerState struct {
	RefCount      int32
	ClockEnabled  bool
	ResetAsserted bool
}

// Acquire takes a power reference. The first reference clocks the sensor,
// releases reset, enables its outputs and applies the selected mode, leaving
// it idle. On failure the sensor is parked again and the count stays at 0.
func (d *Device) Acquire() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.power.RefCount > 0 {
		d.power.RefCount++
		return nil
	}
	if err := d.powerUpLocked(); err != nil {
		return err
	}
	if err := d.regs.Apply(oeEnableSeq); err != nil {
		d.powerDownLocked()
		return err
	}
	if err := d.applyModeLocked(); err != nil {
		d.powerDownLocked()
		return err
	}
	d.power.RefCount = 1
	d.powered.Store(true)
	d.emit(Event{Kind: EventPowerOn, Mode: d.mode, Count: 1})
	return nil
}

// Release drops a power reference. The last one disables the outputs, puts
// the sensor in software standby, stops the clock and asserts reset. Write
// failures on that path are reported as events, never returned.
func (d *Device) Release() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.power.RefCount == 0 {
		d.emit(Event{Kind: EventPowerUnderflow})
		return
	}
	d.power.RefCount--
	if d.power.RefCount > 0 {
		return
	}
	d.parkLocked()
}

// Powered reports whether at least one reference is held. Advisory only.
func (d *Device) Powered() bool { return d.powered.Load() }

// State returns a copy of the power state.
func (d *Device) State() PowerState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.power
}

// parkLocked runs the best-effort power-off sequence.
func (d *Device) parkLocked() {
	d.powered.Store(false)
	if err := d.regs.Apply(oeDisableSeq); err != nil {
		d.emit(Event{Kind: EventCleanupFailed, Reg: regOutputEnable0, Err: err})
	}
	if err := d.regs.Update(regSWStandby, standbyStreaming, 0); err != nil {
		d.emit(Event{Kind: EventCleanupFailed, Reg: regSWStandby, Err: err})
	}
	d.powerDownLocked()
	d.emit(Event{Kind: EventPowerOff})
}

func (d *Device) powerUpLocked() error {
	if d.clk == nil {
		return ErrMissingResource
	}
	if err := d.clk.Enable(); err != nil {
		return err
	}
	d.power.ClockEnabled = true
	d.sleep(d.settle)
	if d.reset != nil {
		d.reset.Deassert()
	}
	d.power.ResetAsserted = false
	d.sleep(d.settle)
	return nil
}

func (d *Device) powerDownLocked() {
	if d.clk != nil && d.power.ClockEnabled {
		d.clk.Disable()
	}
	if d.reset != nil {
		d.reset.Assert()
	}
	d.power = PowerState{ResetAsserted: true}
	d.powered.Store(false)
	d.streaming.Store(false)
}
