package engine

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math"
)

// ErrConsumablesDecode wraps any failure decoding a consumables payload.
var ErrConsumablesDecode = errors.New("decode consumables")

// DecodeConsumables extracts consumable.duration from a base64 encoded
// literal payload. ok is false with a nil error when the keys are absent.
func DecodeConsumables(payload string) (duration any, ok bool, err error) {
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, false, fmt.Errorf("%w: base64: %w", ErrConsumablesDecode, err)
	}
	for _, b := range raw {
		if b > 0x7f {
			return nil, false, fmt.Errorf("%w: payload is not ascii", ErrConsumablesDecode)
		}
	}
	parsed, err := parseLiteral(string(raw))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrConsumablesDecode, err)
	}
	root, isDict := parsed.(map[string]any)
	if !isDict {
		return nil, false, nil
	}
	consumable, isDict := root["consumable"].(map[string]any)
	if !isDict {
		return nil, false, nil
	}
	value, found := consumable["duration"]
	if !found {
		return nil, false, nil
	}
	return normalizeValue(value), true, nil
}

// ConsumableDuration scans codes in order and returns the first duration that
// decodes. Decode failures are collected so the caller can report them.
func ConsumableDuration(snapshot map[string]any, codes []string) (any, bool, []error) {
	var errs []error
	for _, code := range codes {
		payload, isString := snapshot[code].(string)
		if !isString {
			continue
		}
		duration, ok, err := DecodeConsumables(payload)
		if err != nil {
			errs = append(errs, fmt.Errorf("dp %s: %w", code, err))
			continue
		}
		if ok {
			return duration, true, errs
		}
	}
	return nil, false, errs
}

// normalizeValue converts parsed integers to int throughout nested values.
func normalizeValue(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, item := range n {
			out[k] = normalizeValue(item)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, item := range n {
			out[i] = normalizeValue(item)
		}
		return out
	case int64:
		if n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		return n
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) && math.Abs(n) < 1<<53 {
			return int(n)
		}
		return n
	default:
		return v
	}
}
