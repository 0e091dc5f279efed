package ov5647

// Bus state goes first; the pads are gated or un-gated last.
var (
	streamOnSeq = []RegisterOp{
		{regMIPICtrl00, mipiLineSyncEnable | mipiBusIdle},
		{regFrameOffNum, 0x00},
		{regPadOut, 0x00},
	}
	streamOffSeq = []RegisterOp{
		{regMIPICtrl00, mipiClockLaneGate | mipiBusIdle | mipiClockLaneDisable},
		{regFrameOffNum, frameOffStop},
		{regPadOut, padDisable},
	}
)

// SetStreaming starts or stops the pixel pipeline. Stopping parks the clock
// lane in LP-11. It does not take the device lock; an unpowered sensor
// yields ErrNotPowered without bus traffic.
func (d *Device) SetStreaming(enable bool) error {
	if !d.powered.Load() {
		return ErrNotPowered
	}
	seq, kind := streamOffSeq, EventStreamOff
	if enable {
		seq, kind = streamOnSeq, EventStreamOn
	}
	if err := d.regs.Apply(seq); err != nil {
		return err
	}
	d.streaming.Store(enable)
	d.emit(Event{Kind: kind})
	return nil
}

// Streaming reports the last successfully applied stream state.
func (d *Device) Streaming() bool { return d.streaming.Load() }
