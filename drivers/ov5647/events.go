package ov5647

// EventKind classifies driver events.
type EventKind uint8

const (
	EventPowerOn EventKind = iota + 1
	EventPowerOff
	EventPowerUnderflow // Release with no matching Acquire
	EventModeApplied
	EventStandbyForced
	EventStreamOn
	EventStreamOff
	EventDetected
	EventCleanupFailed // best-effort power-down write failed
)

func (k EventKind) String() string {
	switch k {
	case EventPowerOn:
		return "power_on"
	case EventPowerOff:
		return "power_off"
	case EventPowerUnderflow:
		return "power_underflow"
	case EventModeApplied:
		return "mode_applied"
	case EventStandbyForced:
		return "standby_forced"
	case EventStreamOn:
		return "stream_on"
	case EventStreamOff:
		return "stream_off"
	case EventDetected:
		return "detected"
	case EventCleanupFailed:
		return "cleanup_failed"
	default:
		return "unknown"
	}
}

// Warning reports whether the event indicates a caller bug or a swallowed error.
func (k EventKind) Warning() bool {
	return k == EventPowerUnderflow || k == EventCleanupFailed
}

// Event is passed to Config.OnEvent. Fields not relevant to Kind are zero.
type Event struct {
	Kind  EventKind
	Mode  int    // catalog index (mode events)
	Reg   uint16 // register involved, if any
	Count int32  // reference count after the transition
	Err   error
}
