package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ToInt64 converts various types to int64 using explicit type switching.
// ok is false when the value cannot be represented exactly as an integer.
func ToInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if v != math.Trunc(v) || v > math.MaxInt64 || v < math.MinInt64 {
			return 0, false
		}
		return int64(v), true
	case float32:
		return ToInt64(float64(v))
	case decimal.Decimal:
		if !v.IsInteger() {
			return 0, false
		}
		return v.IntPart(), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	case []byte:
		return ToInt64(string(v))
	default:
		return 0, false
	}
}

// ToIntRange converts to an int64 and checks it fits in [lo, hi].
func ToIntRange(val any, lo, hi int64) (int64, bool) {
	i, ok := ToInt64(val)
	if !ok || i < lo || i > hi {
		return 0, false
	}
	return i, true
}

// ToFloat64 converts numeric values and numeric strings to float64.
func ToFloat64(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case decimal.Decimal:
		f, _ := v.Float64()
		return f, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	case []byte:
		return ToFloat64(string(v))
	case bool:
		return 0, false
	default:
		if i, ok := ToInt64(v); ok {
			return float64(i), true
		}
		return 0, false
	}
}

// ToDecimal converts numeric values and numeric strings to a decimal.
func ToDecimal(val any) (decimal.Decimal, bool) {
	switch v := val.(type) {
	case decimal.Decimal:
		return v, true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, false
		}
		return decimal.NewFromFloat(v), true
	case float32:
		return ToDecimal(float64(v))
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return d, err == nil
	case []byte:
		return ToDecimal(string(v))
	case bool:
		return decimal.Zero, false
	default:
		if i, ok := ToInt64(v); ok {
			return decimal.NewFromInt(i), true
		}
		return decimal.Zero, false
	}
}

// ToBool converts various types to bool.
// It handles bool, integers (0/1) and the strings "0", "1", "true", "false".
func ToBool(val any) (bool, bool) {
	switch v := val.(type) {
	case bool:
		return v, true
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true":
			return true, true
		case "0", "false":
			return false, true
		}
		return false, false
	case []byte:
		return ToBool(string(v))
	default:
		i, ok := ToInt64(v)
		if !ok || (i != 0 && i != 1) {
			return false, false
		}
		return i == 1, true
	}
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ToTime converts time values and ISO-8601 style strings to time.Time.
// Strings without a zone are interpreted as UTC.
func ToTime(val any) (time.Time, bool) {
	switch v := val.(type) {
	case time.Time:
		return v, true
	case string:
		s := strings.TrimSpace(v)
		for _, layout := range timeLayouts {
			if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	case []byte:
		return ToTime(string(v))
	default:
		return time.Time{}, false
	}
}

// ToUUID converts 16-byte slices and textual GUIDs to uuid.UUID.
func ToUUID(val any) (uuid.UUID, bool) {
	switch v := val.(type) {
	case uuid.UUID:
		return v, true
	case [16]byte:
		return uuid.UUID(v), true
	case []byte:
		if len(v) == 16 {
			u, err := uuid.FromBytes(v)
			return u, err == nil
		}
		return ToUUID(string(v))
	case string:
		u, err := uuid.Parse(strings.TrimSpace(v))
		return u, err == nil
	default:
		return uuid.Nil, false
	}
}

// ToBytes converts byte slices and strings to a byte slice.
func ToBytes(val any) ([]byte, bool) {
	switch v := val.(type) {
	case []byte:
		return v, true
	case string:
		return []byte(v), true
	case uuid.UUID:
		return v[:], true
	default:
		return nil, false
	}
}

// ToString renders a value with invariant formatting. nil renders as "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case decimal.Decimal:
		return v.String()
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case time.Duration:
		return v.String()
	case uuid.UUID:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		if i, ok := ToInt64(v); ok {
			return strconv.FormatInt(i, 10)
		}
		if u, ok := v.(uint64); ok {
			return strconv.FormatUint(u, 10)
		}
		return fmt.Sprintf("%v", v)
	}
}
