package types

// Payloads for the "camera" capability. Controls arrive on
// hal/capability/camera/<id>/control/<verb>; readings are published on
// .../value and driver events on .../event.

type CameraPower struct {
	On bool `json:"on"` // true = acquire a reference, false = release one
}

type CameraStream struct {
	On bool `json:"on"`
}

// CameraFormat is used both as the set_format request and as the reply
// describing the selected mode.
type CameraFormat struct {
	Width     uint32 `json:"width"`
	Height    uint32 `json:"height"`
	Format    string `json:"format"` // "SBGGR8_1X8", "SBGGR10_1X10" (short forms accepted)
	Code      uint32 `json:"code,omitempty"`
	PixelRate uint32 `json:"pixel_rate,omitempty"`
	Mode      int    `json:"mode"`
	Try       bool   `json:"try,omitempty"` // request only: do not change the selection
}

type CameraFrameSize struct {
	Format string `json:"format"`
	Code   uint32 `json:"code"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type CameraFormats struct {
	Sizes    []CameraFrameSize `json:"sizes"`
	Interval [2]uint32         `json:"interval"` // numerator, denominator
}

type CameraSelectionReq struct {
	Target string `json:"target"` // "crop", "crop_default", "crop_bounds", "native_size"
}

type CameraRect struct {
	Left   int32  `json:"left"`
	Top    int32  `json:"top"`
	Width  uint32 `json:"width"`
	Height uint32 `json:"height"`
}

type CameraBusConfig struct {
	Lanes           uint8  `json:"lanes"`
	VirtualChannel  uint8  `json:"virtual_channel"`
	ContinuousClock bool   `json:"continuous_clock"`
	LinkFreqHz      uint32 `json:"link_freq_hz"`
}

type CameraControl struct {
	Name  string `json:"name"`
	Value int32  `json:"value"`
}

type CameraControlDesc struct {
	Name     string `json:"name"`
	Min      int64  `json:"min"`
	Max      int64  `json:"max"`
	Step     int64  `json:"step"`
	Default  int64  `json:"default"`
	Boolean  bool   `json:"boolean,omitempty"`
	ReadOnly bool   `json:"read_only,omitempty"`
}

type CameraRegister struct {
	Addr  uint16 `json:"addr"`
	Value uint8  `json:"value"`
}

type CameraPowerAck struct {
	OK       bool  `json:"ok"`
	RefCount int32 `json:"ref_count"`
}

// CameraStatus is the periodic reading.
type CameraStatus struct {
	RefCount  int32  `json:"ref_count"`
	Streaming bool   `json:"streaming"`
	Mode      int    `json:"mode"`
	Width     uint32 `json:"width"`
	Height    uint32 `json:"height"`
	Format    string `json:"format"`
	Exposure  uint16 `json:"exposure,omitempty"` // read back when powered
	Gain      uint16 `json:"gain,omitempty"`
	TsMs      int64  `json:"ts_ms"`
}

// CameraEvent mirrors one driver event.
type CameraEvent struct {
	Kind    string `json:"kind"`
	Warning bool   `json:"warning,omitempty"`
	Mode    int    `json:"mode,omitempty"`
	Reg     uint16 `json:"reg,omitempty"`
	Count   int32  `json:"count,omitempty"`
	Error   string `json:"error,omitempty"`
	TsMs    int64  `json:"ts_ms"`
}

// CameraInfo is retained on .../info.
type CameraInfo struct {
	Driver        string `json:"driver"`
	Bus           string `json:"bus"`
	Addr          uint16 `json:"addr"`
	ChipID        uint16 `json:"chip_id"`
	Modes         int    `json:"modes"`
	NativeWidth   uint32 `json:"native_width"`
	NativeHeight  uint32 `json:"native_height"`
	Lanes         uint8  `json:"lanes"`
	ClockHz       uint32 `json:"clock_hz"`
	SchemaVersion int    `json:"schema_version"`
}
