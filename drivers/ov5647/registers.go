package ov5647

// Register map (subset used by the driver).
const (
	regSWStandby     = 0x0100 // bit0: 1 = streaming, 0 = software standby
	regSWReset       = 0x0103
	regOutputEnable0 = 0x3000
	regOutputEnable1 = 0x3001
	regOutputEnable2 = 0x3002
	regChipIDHigh    = 0x300A
	regChipIDLow     = 0x300B
	regPadOut        = 0x300D // bit0: 1 = pads disabled
	regAECAGC        = 0x3503
	regExposureHi    = 0x3500 // exposure [19:16] in bits 3:0
	regExposureMid   = 0x3501 // exposure [15:8]
	regExposureLo    = 0x3502 // exposure [7:0], driver uses bits 7:4
	regGainHi        = 0x350A // gain [9:8] in bits 1:0
	regGainLo        = 0x350B // gain [7:0]
	regFrameOffNum   = 0x4202
	regMIPICtrl00    = 0x4800
	regMIPICtrl14    = 0x4814 // bits 7:6 virtual channel
	regISPCtrl01     = 0x5001 // bit0: AWB enable
)

// MIPI_CTRL00 bits.
const (
	mipiClockLaneGate    = 1 << 5
	mipiLineSyncEnable   = 1 << 4
	mipiBusIdle          = 1 << 2
	mipiClockLaneDisable = 1 << 0
)

// AEC/AGC manual bits (0 = automatic, 1 = manual).
const (
	aecManual = 1 << 0
	agcManual = 1 << 1
)

const (
	chipIDHigh = 0x56
	chipIDLow  = 0x47

	standbyStreaming = 0x01
	vcShift          = 6
	vcMask           = 0x03 << vcShift

	frameOffStop = 0x0f
	padDisable   = 0x01
)
