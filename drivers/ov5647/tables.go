package ov5647

// Vendor register tables. Values and order are load-bearing: they encode
// analog tuning and timing that is not derivable from the register map.

// Sensor output drivers (pads) on/off.
var oeEnableSeq = []RegisterOp{
	{0x3000, 0x0F},
	{0x3001, 0xFF},
	{0x3002, 0xE4},
}

var oeDisableSeq = []RegisterOp{
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
}

var seq640x480Sub4 = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x08}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x46}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x07},
	{0x3820, 0x41},
	{0x3827, 0xEC},
	{0x370C, 0x0F},
	{0x3612, 0x59},
	{0x3618, 0x00},
	{0x5000, 0x06},
	{0x5001, 0x01},
	{0x5002, 0x41},
	{0x5003, 0x00},
	{0x503D, 0x00},
	{0x5A00, 0x08},
	{0x3503, 0x00}, // AEC/AGC auto
	{0x3500, 0x00},
	{0x3501, 0x40},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x40},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x07}, // HTS
	{0x380D, 0x68},
	{0x380E, 0x03}, // VTS
	{0x380F, 0xD8},
	{0x3814, 0x71}, // x inc
	{0x3815, 0x71}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x52},
	{0x3808, 0x02}, // x output size
	{0x3809, 0x80},
	{0x380A, 0x01}, // y output size
	{0x380B, 0xE0},
	{0x3800, 0x00}, // x addr start
	{0x3801, 0x00},
	{0x3802, 0x00}, // y addr start
	{0x3803, 0x00},
	{0x3804, 0x0A}, // x addr end
	{0x3805, 0x3F},
	{0x3806, 0x07}, // y addr end
	{0x3807, 0xA1},
	{0x3811, 0x08},
	{0x3813, 0x02},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x27},
	{0x3A0A, 0x00},
	{0x3A0B, 0xF6},
	{0x3A0D, 0x04},
	{0x3A0E, 0x03},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x02},
	{0x4000, 0x09},
	{0x4837, 0x24}, // PCLK period
	{0x4050, 0x6E},
	{0x4051, 0x8F},
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x0100, 0x01}, // leave standby
}

var seq640x480BinSkip = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x08}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x46}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x07},
	{0x3820, 0x41},
	{0x3827, 0xEC},
	{0x370C, 0x0F},
	{0x3612, 0x59},
	{0x3618, 0x00},
	{0x5000, 0x06},
	{0x5001, 0x01},
	{0x5002, 0x41},
	{0x5003, 0x00},
	{0x503D, 0x00},
	{0x5A00, 0x08},
	{0x3503, 0x00}, // AEC/AGC auto
	{0x3500, 0x00},
	{0x3501, 0x40},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x40},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x07}, // HTS
	{0x380D, 0x3C},
	{0x380E, 0x01}, // VTS
	{0x380F, 0xF8},
	{0x3814, 0x35}, // x inc
	{0x3815, 0x35}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x52},
	{0x3808, 0x02}, // x output size
	{0x3809, 0x80},
	{0x380A, 0x01}, // y output size
	{0x380B, 0xE0},
	{0x3800, 0x00}, // x addr start
	{0x3801, 0x10},
	{0x3802, 0x00}, // y addr start
	{0x3803, 0x00},
	{0x3804, 0x0A}, // x addr end
	{0x3805, 0x2F},
	{0x3806, 0x07}, // y addr end
	{0x3807, 0x9F},
	{0x3810, 0x00},
	{0x3811, 0x10},
	{0x3812, 0x00},
	{0x3813, 0x04},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x28},
	{0x3A0A, 0x00},
	{0x3A0B, 0xF6},
	{0x3A0D, 0x08},
	{0x3A0E, 0x06},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x02},
	{0x4000, 0x09},
	{0x4837, 0x24}, // PCLK period
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x0100, 0x01}, // leave standby
}

var seq1296x972 = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x08}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x46}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x07},
	{0x3820, 0x41},
	{0x3827, 0xEC},
	{0x370C, 0x0F},
	{0x3612, 0x59},
	{0x3618, 0x00},
	{0x5000, 0x06},
	{0x5001, 0x01},
	{0x5002, 0x41},
	{0x5003, 0x00},
	{0x503D, 0x00},
	{0x5A00, 0x08},
	{0x3503, 0x00}, // AEC/AGC auto
	{0x3500, 0x00},
	{0x3501, 0x40},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x40},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x07}, // HTS
	{0x380D, 0x68},
	{0x380E, 0x05}, // VTS
	{0x380F, 0x9B},
	{0x3814, 0x31}, // x inc
	{0x3815, 0x31}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x52},
	{0x3808, 0x05}, // x output size
	{0x3809, 0x10},
	{0x380A, 0x03}, // y output size
	{0x380B, 0xCC},
	{0x3800, 0x00}, // x addr start
	{0x3801, 0x00},
	{0x3802, 0x00}, // y addr start
	{0x3803, 0x00},
	{0x3804, 0x0A}, // x addr end
	{0x3805, 0x3F},
	{0x3806, 0x07}, // y addr end
	{0x3807, 0xA3},
	{0x3810, 0x00},
	{0x3811, 0x08},
	{0x3812, 0x00},
	{0x3813, 0x02},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x28},
	{0x3A0A, 0x00},
	{0x3A0B, 0xF6},
	{0x3A0D, 0x08},
	{0x3A0E, 0x06},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x04},
	{0x4000, 0x09},
	{0x4837, 0x16}, // PCLK period
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x0100, 0x01}, // leave standby
}

var seq1280x960 = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x08}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x46}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x06},
	{0x3820, 0x00},
	{0x3827, 0xEC},
	{0x370C, 0x0F},
	{0x3612, 0x59},
	{0x3618, 0x00},
	{0x5000, 0x06},
	{0x5001, 0x01},
	{0x5002, 0x41},
	{0x5003, 0x00},
	{0x503D, 0x00},
	{0x5A00, 0x08},
	{0x3503, 0x00}, // AEC/AGC auto
	{0x3500, 0x00},
	{0x3501, 0x40},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x40},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x07}, // HTS
	{0x380D, 0x68},
	{0x380E, 0x03}, // VTS
	{0x380F, 0xD8},
	{0x3814, 0x31}, // x inc
	{0x3815, 0x31}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x52},
	{0x3808, 0x05}, // x output size
	{0x3809, 0x00},
	{0x380A, 0x03}, // y output size
	{0x380B, 0xC0},
	{0x3800, 0x00}, // x addr start
	{0x3801, 0x08},
	{0x3802, 0x00}, // y addr start
	{0x3803, 0x02},
	{0x3804, 0x0A}, // x addr end
	{0x3805, 0x37},
	{0x3806, 0x07}, // y addr end
	{0x3807, 0x9F},
	{0x3811, 0x04},
	{0x3813, 0x02},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x28},
	{0x3A0A, 0x00},
	{0x3A0B, 0xF6},
	{0x3A0D, 0x08},
	{0x3A0E, 0x06},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x04},
	{0x4000, 0x09},
	{0x4837, 0x16}, // PCLK period
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x0100, 0x01}, // leave standby
}

var seq1920x1080 = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x1A}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x62}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x06},
	{0x3820, 0x00},
	{0x3827, 0xEC},
	{0x370C, 0x03},
	{0x3612, 0x5B},
	{0x3618, 0x04},
	{0x5000, 0x06},
	{0x5002, 0x41},
	{0x5003, 0x08},
	{0x5A00, 0x08},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x09}, // HTS
	{0x380D, 0x70},
	{0x380E, 0x04}, // VTS
	{0x380F, 0x50},
	{0x3814, 0x11}, // x inc
	{0x3815, 0x11}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x12},
	{0x3808, 0x07}, // x output size
	{0x3809, 0x80},
	{0x380A, 0x04}, // y output size
	{0x380B, 0x38},
	{0x3800, 0x01}, // x addr start
	{0x3801, 0x5C},
	{0x3802, 0x01}, // y addr start
	{0x3803, 0xB2},
	{0x3804, 0x08}, // x addr end
	{0x3805, 0xE3},
	{0x3806, 0x05}, // y addr end
	{0x3807, 0xF1},
	{0x3811, 0x04},
	{0x3813, 0x02},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x4B},
	{0x3A0A, 0x01},
	{0x3A0B, 0x13},
	{0x3A0D, 0x04},
	{0x3A0E, 0x03},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x04},
	{0x4000, 0x09},
	{0x4837, 0x19}, // PCLK period
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x3503, 0x00}, // AEC/AGC auto
	{0x0100, 0x01}, // leave standby
}

var seq2592x1944 = []RegisterOp{
	{0x0100, 0x00}, // standby
	{0x0103, 0x01}, // soft reset
	{0x3034, 0x08}, // MIPI bit mode
	{0x3035, 0x21},
	{0x3036, 0x69}, // PLL multiplier
	{0x303C, 0x11},
	{0x3106, 0xF5},
	{0x3821, 0x06},
	{0x3820, 0x00},
	{0x3827, 0xEC},
	{0x370C, 0x03},
	{0x3612, 0x5B},
	{0x3618, 0x04},
	{0x5000, 0x06},
	{0x5001, 0x01},
	{0x5002, 0x41},
	{0x5003, 0x00},
	{0x503D, 0x00},
	{0x5A00, 0x08},
	{0x3503, 0x00}, // AEC/AGC auto
	{0x3500, 0x00},
	{0x3501, 0x40},
	{0x3502, 0x00},
	{0x350A, 0x00},
	{0x350B, 0x40},
	{0x3000, 0x00},
	{0x3001, 0x00},
	{0x3002, 0x00},
	{0x3016, 0x08},
	{0x3017, 0xE0},
	{0x3018, 0x44}, // 2 lanes
	{0x301C, 0xF8},
	{0x301D, 0xF0},
	{0x3A18, 0x00},
	{0x3A19, 0xF8},
	{0x3C01, 0x80},
	{0x3B07, 0x0C},
	{0x380C, 0x0B}, // HTS
	{0x380D, 0x1C},
	{0x380E, 0x07}, // VTS
	{0x380F, 0xB0},
	{0x3814, 0x11}, // x inc
	{0x3815, 0x11}, // y inc
	{0x3708, 0x64},
	{0x3709, 0x12},
	{0x3808, 0x0A}, // x output size
	{0x3809, 0x20},
	{0x380A, 0x07}, // y output size
	{0x380B, 0x98},
	{0x3800, 0x00}, // x addr start
	{0x3801, 0x00},
	{0x3802, 0x00}, // y addr start
	{0x3803, 0x00},
	{0x3804, 0x0A}, // x addr end
	{0x3805, 0x3F},
	{0x3806, 0x07}, // y addr end
	{0x3807, 0xA3},
	{0x3810, 0x00},
	{0x3811, 0x10},
	{0x3812, 0x00},
	{0x3813, 0x06},
	{0x3630, 0x2E},
	{0x3632, 0xE2},
	{0x3633, 0x23},
	{0x3634, 0x44},
	{0x3636, 0x06},
	{0x3620, 0x64},
	{0x3621, 0xE0},
	{0x3600, 0x37},
	{0x3704, 0xA0},
	{0x3703, 0x5A},
	{0x3715, 0x78},
	{0x3717, 0x01},
	{0x3731, 0x02},
	{0x370B, 0x60},
	{0x3705, 0x1A},
	{0x3F05, 0x02},
	{0x3F06, 0x10},
	{0x3F01, 0x0A},
	{0x3A08, 0x01},
	{0x3A09, 0x28},
	{0x3A0A, 0x00},
	{0x3A0B, 0xF6},
	{0x3A0D, 0x08},
	{0x3A0E, 0x06},
	{0x3A0F, 0x58},
	{0x3A10, 0x50},
	{0x3A1B, 0x58},
	{0x3A1E, 0x50},
	{0x3A11, 0x60},
	{0x3A1F, 0x28},
	{0x4001, 0x02},
	{0x4004, 0x04},
	{0x4000, 0x09},
	{0x4837, 0x19}, // PCLK period
	{0x4800, 0x34}, // clock lane gated, line sync, bus idle
	{0x0100, 0x01}, // leave standby
}
