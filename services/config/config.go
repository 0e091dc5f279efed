// Package config publishes the embedded board configuration. Each top-level
// key of the document is retained on config/<key>; the "hal" key is decoded
// into types.HALConfig so the HAL receives a typed value.
package config

import (
	"context"
	"encoding/json"
	"errors"

	"sensorcode-go/bus"
	"sensorcode-go/types"

	"sigs.k8s.io/yaml"
)

const (
	serviceName  = "config"
	configPrefix = "config"
	halKey       = "hal"
)

type ctxKey string

// CtxDeviceKey is the context key carrying the board id.
const CtxDeviceKey ctxKey = "device"

// EmbeddedConfigLookup allows overriding how configs are resolved.
var EmbeddedConfigLookup = func(device string) ([]byte, bool) {
	b, ok := embeddedConfigs[device]
	return b, ok
}

type ConfigService struct {
	Name string
}

func NewConfigService() *ConfigService {
	return &ConfigService{Name: serviceName}
}

// Decode parses a YAML (or JSON) board document into per-key payloads.
func Decode(raw []byte) (map[string]any, error) {
	js, err := yaml.YAMLToJSON(raw)
	if err != nil {
		return nil, err
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(js, &doc); err != nil {
		return nil, errors.New("config is not an object: " + err.Error())
	}
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == halKey {
			var hc types.HALConfig
			if err := json.Unmarshal(v, &hc); err != nil {
				return nil, errors.New("config: hal: " + err.Error())
			}
			out[k] = hc
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return nil, err
		}
		out[k] = val
	}
	return out, nil
}

// publishConfig reads the device config from embedded data and publishes it as retained messages.
func (s *ConfigService) publishConfig(ctx context.Context, conn *bus.Connection) error {
	device, _ := ctx.Value(CtxDeviceKey).(string)
	if device == "" {
		return errors.New("missing device ID in context")
	}

	raw, ok := EmbeddedConfigLookup(device)
	if !ok || len(raw) == 0 {
		return errors.New("no embedded config for device: " + device)
	}

	m, err := Decode(raw)
	if err != nil {
		return err
	}
	for k, v := range m {
		conn.Publish(conn.NewMessage(bus.T(configPrefix, k), v, true))
	}
	return nil
}

// Start launches the config publisher. Failures are published retained on
// config/_error.
func (s *ConfigService) Start(ctx context.Context, conn *bus.Connection) {
	go func() {
		if err := s.publishConfig(ctx, conn); err != nil {
			conn.Publish(conn.NewMessage(bus.T(configPrefix, "_error"), err.Error(), true))
		}
	}()
}
