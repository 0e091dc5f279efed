package ov5647

import "sensorcode-go/x/conv"

// RegisterOp is one register write. Sequences are applied strictly in order.
type RegisterOp struct {
	Addr uint16
	Val  uint8
}

// PixelFormat is the media-bus pixel code of a mode.
type PixelFormat uint8

const (
	FormatUnknown PixelFormat = iota
	FormatBayer8              // SBGGR8_1X8
	FormatBayer10             // SBGGR10_1X10
)

func (f PixelFormat) String() string {
	switch f {
	case FormatBayer8:
		return "SBGGR8_1X8"
	case FormatBayer10:
		return "SBGGR10_1X10"
	default:
		return "unknown"
	}
}

// MediaBusCode returns the V4L2 MEDIA_BUS_FMT_* value.
func (f PixelFormat) MediaBusCode() uint32 {
	switch f {
	case FormatBayer8:
		return 0x3001
	case FormatBayer10:
		return 0x3007
	default:
		return 0
	}
}

// BitsPerPixel returns 8 or 10 (0 for unknown).
func (f PixelFormat) BitsPerPixel() uint8 {
	switch f {
	case FormatBayer8:
		return 8
	case FormatBayer10:
		return 10
	default:
		return 0
	}
}

// ParsePixelFormat accepts the short and media-bus spellings.
func ParsePixelFormat(s string) PixelFormat {
	switch s {
	case "bggr8", "BGGR8", "SBGGR8_1X8", "bayer8":
		return FormatBayer8
	case "bggr10", "BGGR10", "SBGGR10_1X10", "bayer10":
		return FormatBayer10
	default:
		return FormatUnknown
	}
}

// Mode is one catalog entry.
type Mode struct {
	Width, Height uint32
	Format        PixelFormat
	PixelRate     uint32
	Sequence      []RegisterOp
}

// Name returns "WxH".
func (m Mode) Name() string {
	var a, b [10]byte
	return string(conv.Utoa(a[:], uint64(m.Width))) + "x" + string(conv.Utoa(b[:], uint64(m.Height)))
}

// Ordered from most to least commonly requested; index 0 is the default.
// Both 640x480 variants are kept: the 4x subsample table is the known-good
// one, the bin+skip table matches upstream timing.
var modes = [...]Mode{
	{Width: 640, Height: 480, Format: FormatBayer8, PixelRate: 55_000_000, Sequence: seq640x480Sub4},
	{Width: 640, Height: 480, Format: FormatBayer8, PixelRate: 55_000_000, Sequence: seq640x480BinSkip},
	{Width: 1296, Height: 972, Format: FormatBayer8, PixelRate: 81_666_700, Sequence: seq1296x972},
	{Width: 1280, Height: 960, Format: FormatBayer8, PixelRate: 55_969_920, Sequence: seq1280x960},
	{Width: 1920, Height: 1080, Format: FormatBayer10, PixelRate: 81_666_700, Sequence: seq1920x1080},
	{Width: 2592, Height: 1944, Format: FormatBayer8, PixelRate: 87_500_000, Sequence: seq2592x1944},
}

// Modes returns a copy of the catalog. Sequences are cloned so callers
// cannot alter the tables.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	for i, m := range modes {
		m.Sequence = append([]RegisterOp(nil), m.Sequence...)
		out[i] = m
	}
	return out
}

// NumModes returns the catalog length.
func NumModes() int { return len(modes) }

// ModeAt returns catalog entry i (with a cloned sequence).
func ModeAt(i int) (Mode, bool) {
	if i < 0 || i >= len(modes) {
		return Mode{}, false
	}
	m := modes[i]
	m.Sequence = append([]RegisterOp(nil), m.Sequence...)
	return m, true
}

// Fixed sensor metadata.
const (
	NativeWidth  = 2624
	NativeHeight = 1956

	PixelArrayLeft   = 16
	PixelArrayTop    = 16
	PixelArrayWidth  = 2592
	PixelArrayHeight = 1944

	// Default try-format crop.
	DefaultCropLeft = 16
	DefaultCropTop  = 54

	// (HTS * VTS * fps) = 1896 * 984 * 30
	NominalPixelRate = 55_969_920
	// pixel_rate * 8 bpp / (2 * lanes)
	LinkFreqHz = 111_939_840

	DataLanes = 2
)

// Rect is a selection rectangle in sensor pixels.
type Rect struct {
	Left, Top     int32
	Width, Height uint32
}

// SelectionTarget mirrors the V4L2 selection targets the sensor answers.
type SelectionTarget uint8

const (
	TargetCrop SelectionTarget = iota
	TargetCropDefault
	TargetCropBounds
	TargetNativeSize
)

// Fraction is a frame interval.
type Fraction struct {
	Numerator, Denominator uint32
}

// FrameInterval is fixed at 1/30 s for every mode.
func FrameInterval() Fraction { return Fraction{Numerator: 1, Denominator: 30} }

// BusConfig describes the CSI-2 link.
type BusConfig struct {
	Lanes           uint8
	VirtualChannel  uint8
	ContinuousClock bool
	LinkFreqHz      uint32
}

// FrameSize is one enumerable (format, width, height) tuple.
type FrameSize struct {
	Format        PixelFormat
	Width, Height uint32
}

// PixelFormats lists the media-bus codes the sensor can emit.
func PixelFormats() []PixelFormat { return []PixelFormat{FormatBayer8, FormatBayer10} }

// FrameSizes lists the distinct catalog sizes for f in table order.
func FrameSizes(f PixelFormat) []FrameSize {
	var out []FrameSize
	for _, m := range modes {
		if m.Format != f {
			continue
		}
		dup := false
		for _, s := range out {
			if s.Width == m.Width && s.Height == m.Height {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, FrameSize{Format: f, Width: m.Width, Height: m.Height})
		}
	}
	return out
}

// TryFormat is the default try-format handed to a freshly opened node.
type TryFormat struct {
	Size FrameSize
	Crop Rect
}

// DefaultTryFormat returns full-array BAYER8 with the default crop.
func DefaultTryFormat() TryFormat {
	return TryFormat{
		Size: FrameSize{Format: FormatBayer8, Width: PixelArrayWidth, Height: PixelArrayHeight},
		Crop: Rect{Left: DefaultCropLeft, Top: DefaultCropTop, Width: PixelArrayWidth, Height: PixelArrayHeight},
	}
}
