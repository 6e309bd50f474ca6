// Package numeric converts loosely typed upstream values into finite numbers.
//
// Upstream payloads decode into interface values whose dynamic type is not
// under our control (float64 from JSON, numeric strings, nil for missing
// fields, occasionally NaN). Callers choose per field whether a failed
// conversion becomes a default number (CoerceFinite) or an unknown value
// (RoundOrNull).
package numeric

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultPlaces is the number of decimal places used for display values.
const DefaultPlaces = 2

// ToFloat attempts to convert v to a finite float64.
// The second return value is false when v is nil, not numeric, NaN or ±Inf.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		p, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = p
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = p
	case decimal.Decimal:
		f = x.InexactFloat64()
	case *float64:
		if x == nil {
			return 0, false
		}
		f = *x
	case *string:
		if x == nil {
			return 0, false
		}
		return ToFloat(*x)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceFinite returns v as a finite float64, or def when v cannot be converted.
// It is used for fields that are safe to zero-fill (ratios, counts).
func CoerceFinite(v any, def float64) float64 {
	f, ok := ToFloat(v)
	if !ok {
		return def
	}
	return f
}

// RoundOrNull returns v rounded to places, or nil when v cannot be converted.
// It is used for fields that must show as unknown rather than zero (prices, margins).
func RoundOrNull(v any, places int) *float64 {
	f, ok := ToFloat(v)
	if !ok {
		return nil
	}
	r := Round(f, places)
	return &r
}

// Round rounds f half away from zero using its shortest decimal representation,
// so 12.345 rounds to 12.35 even though its binary value is slightly below.
func Round(f float64, places int) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return f
	}
	r, _ := decimal.NewFromFloat(f).Round(int32(places)).Float64()
	return r
}

// IntOrNull truncates v toward zero, or returns nil when v cannot be converted.
func IntOrNull(v any) *int {
	f, ok := ToFloat(v)
	if !ok {
		return nil
	}
	n := int(f)
	return &n
}
