package consts

// Topic tokens
const (
	TokConfig     = "config"
	TokHAL        = "hal"
	TokCapability = "capability"
	TokInfo       = "info"
	TokState      = "state"
	TokValue      = "value"
	TokControl    = "control"
	TokEvent      = "event"
)

// Service-level control verbs (handled before the adaptor).
const (
	CtrlReadNow = "read_now"
	CtrlSetRate = "set_rate"
)

// Camera control verbs.
const (
	CtrlPower         = "power"
	CtrlStream        = "stream"
	CtrlSetFormat     = "set_format"
	CtrlGetFormat     = "get_format"
	CtrlEnumFormats   = "enum_formats"
	CtrlGetSelection  = "get_selection"
	CtrlBusConfig     = "bus_config"
	CtrlSetControl    = "set_control"
	CtrlGetControl    = "get_control"
	CtrlListControls  = "list_controls"
	CtrlReadRegister  = "read_register"
	CtrlWriteRegister = "write_register"
)

// Capability kinds
const (
	KindCamera = "camera"
)

// HAL lifecycle levels on hal/state.
const (
	LevelIdle    = "idle"
	LevelReady   = "ready"
	LevelError   = "error"
	LevelStopped = "stopped"
)
