package config

// Embedded configuration, keyed by board id (the value placed in ctx under
// CtxDeviceKey).

const cfgHost = `
hal:
  devices:
    - id: cam0
      type: ov5647
      bus_ref: {type: i2c, id: i2c0}
      params:
        addr: 0x36
        clock: xclk0
        reset_pin: 6
        reset_active_low: true
        virtual_channel: 0
        width: 1296
        height: 972
        format: SBGGR8_1X8
        sample_ms: 1000
`

var embeddedConfigs = map[string][]byte{
	"host": []byte(cfgHost),
}
