package util

import (
	"encoding/json"
	"fmt"
	"time"

	"sensorcode-go/x/mathx"
)

func ResetTimer(t *time.Timer, d time.Duration) {
	if d < 0 {
		d = 0
	}
	if !t.Stop() {
		DrainTimer(t)
	}
	t.Reset(d)
}

func DrainTimer(t *time.Timer) {
	select {
	case <-t.C:
	default:
	}
}

// DecodeJSON accepts raw JSON ([]byte or string) or an already-decoded
// value (map, struct) and decodes it into dst.
func DecodeJSON[T any](src any, dst *T) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	case json.RawMessage:
		return json.Unmarshal(v, dst)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return json.Unmarshal(b, dst)
	}
}

// DecodePayload accepts either a typed T (in-process publishers) or anything
// DecodeJSON understands (bridged or hand-written payloads).
func DecodePayload[T any](src any) (T, error) {
	if v, ok := src.(T); ok {
		return v, nil
	}
	if p, ok := src.(*T); ok && p != nil {
		return *p, nil
	}
	var out T
	err := DecodeJSON(src, &out)
	return out, err
}

func Errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// ClampDuration limits d to [lo, hi].
func ClampDuration(d, lo, hi time.Duration) time.Duration {
	return mathx.Clamp(d, lo, hi)
}
