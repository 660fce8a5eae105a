package utils

import (
	"math"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToInt64(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int64
		ok   bool
	}{
		{"int", 42, 42, true},
		{"uint8", uint8(7), 7, true},
		{"whole float", 3.0, 3, true},
		{"fractional float", 3.5, 0, false},
		{"integer decimal", decimal.RequireFromString("12.00"), 12, true},
		{"fractional decimal", decimal.RequireFromString("12.01"), 0, false},
		{"string", " 99 ", 99, true},
		{"bytes", []byte("-5"), -5, true},
		{"overflowing uint64", uint64(math.MaxUint64), 0, false},
		{"bool", true, 0, false},
		{"nil", nil, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ToInt64(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestToIntRange(t *testing.T) {
	_, ok := ToIntRange(300, 0, 255)
	assert.False(t, ok)
	v, ok := ToIntRange("255", 0, 255)
	assert.True(t, ok)
	assert.Equal(t, int64(255), v)
}

func TestToFloatAndDecimal(t *testing.T) {
	f, ok := ToFloat64(decimal.RequireFromString("1.25"))
	assert.True(t, ok)
	assert.Equal(t, 1.25, f)

	_, ok = ToFloat64(true)
	assert.False(t, ok)

	d, ok := ToDecimal(0.1)
	assert.True(t, ok)
	assert.Equal(t, "0.1", d.String())

	d, ok = ToDecimal([]byte("12.50"))
	assert.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("12.5")))

	_, ok = ToDecimal(math.NaN())
	assert.False(t, ok)
}

func TestToBool(t *testing.T) {
	for _, in := range []any{true, 1, int64(1), "TRUE", "1", []byte("true")} {
		v, ok := ToBool(in)
		assert.True(t, ok, "%v", in)
		assert.True(t, v, "%v", in)
	}
	for _, in := range []any{2, "yes", 1.5} {
		_, ok := ToBool(in)
		assert.False(t, ok, "%v", in)
	}
}

func TestToTime(t *testing.T) {
	want := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	for _, in := range []any{"2024-03-01T10:30:00Z", "2024-03-01T10:30:00", "2024-03-01 10:30:00", []byte("2024-03-01T10:30:00")} {
		got, ok := ToTime(in)
		assert.True(t, ok, "%v", in)
		assert.True(t, want.Equal(got), "%v", in)
	}

	day, ok := ToTime("2024-03-01")
	assert.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), day)

	_, ok = ToTime("yesterday")
	assert.False(t, ok)
}

func TestToUUID(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

	got, ok := ToUUID(id.String())
	assert.True(t, ok)
	assert.Equal(t, id, got)

	got, ok = ToUUID(id[:])
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ToUUID("not-a-uuid")
	assert.False(t, ok)
}

func TestToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{[]byte("y"), "y"},
		{true, "true"},
		{1.5, "1.5"},
		{int32(-4), "-4"},
		{decimal.RequireFromString("2.50"), "2.5"},
		{time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), "2024-03-01T10:30:00Z"},
		{90 * time.Second, "1m30s"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToString(tt.in))
	}
}
