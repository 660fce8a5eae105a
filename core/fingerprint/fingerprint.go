package fingerprint

import (
	"encoding/binary"
	"math"
	"math/big"
	"strconv"
	"sync/atomic"
	"time"

	"tablediff/core/dataset"
	"tablediff/core/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	offset64 uint64 = 14695981039346656037
	prime64  uint64 = 1099511628211

	columnSeparator byte = 0x1e
	nullSentinel    byte = 0xff
)

// epochTicks is the number of 100ns ticks between 0001-01-01 and 1970-01-01 UTC.
const epochTicks int64 = 621355968000000000

var canonicalNaN = math.Float64bits(math.NaN())

var fallbacks atomic.Int64

// Fallbacks returns how many values were hashed through their string rendering because
// they could not be converted to their declared kind.
func Fallbacks() int64 {
	return fallbacks.Load()
}

type hasher uint64

func (h *hasher) writeByte(b byte) {
	*h = (*h ^ hasher(b)) * hasher(prime64)
}

func (h *hasher) write(p []byte) {
	for _, b := range p {
		h.writeByte(b)
	}
}

func (h *hasher) writeString(s string) {
	for i := 0; i < len(s); i++ {
		h.writeByte(s[i])
	}
}

func (h *hasher) put16(v uint16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	h.write(buf[:])
}

func (h *hasher) put32(v uint32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	h.write(buf[:])
}

func (h *hasher) put64(v uint64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	h.write(buf[:])
}

// Row fingerprints row over the given column positions. kinds[i] is the declared kind
// of positions[i]. A negative position stands for a column absent from the row and
// hashes as NULL.
func Row(row []any, positions []int, kinds []dataset.Kind) uint64 {
	h := hasher(offset64)
	for i, pos := range positions {
		var v any
		if pos >= 0 && pos < len(row) {
			v = row[pos]
		}
		h.writeByte(columnSeparator)
		h.value(kinds[i], v)
	}
	return uint64(h)
}

// Compute fingerprints row i of ds over the given columns. Columns missing from ds
// hash as NULL, matching the diff engine's treatment of schema drift.
func Compute(ds *dataset.Dataset, i int, columns []dataset.Column) uint64 {
	h := hasher(offset64)
	for _, col := range columns {
		var v any
		if pos, ok := ds.Lookup(col.Name); ok && !ds.IsHidden(pos) {
			v = ds.Value(i, pos)
		}
		h.writeByte(columnSeparator)
		h.value(col.Kind, v)
	}
	return uint64(h)
}

func (h *hasher) value(kind dataset.Kind, v any) {
	h.writeByte(byte(kind))

	if kind == dataset.KindString {
		h.writeString(utils.ToString(v))
		return
	}
	if v == nil {
		h.writeByte(nullSentinel)
		return
	}

	c, ok := kind.Coerce(v)
	if !ok {
		fallbacks.Add(1)
		h.writeString(utils.ToString(v))
		return
	}

	switch x := c.(type) {
	case int32:
		h.put32(uint32(x))
	case int64:
		h.put64(uint64(x))
	case int16:
		h.put16(uint16(x))
	case uint8:
		h.writeByte(x)
	case bool:
		if x {
			h.writeByte(1)
		} else {
			h.writeByte(0)
		}
	case float64:
		h.put64(float64Bits(x))
	case float32:
		h.put32(float32Bits(x))
	case decimal.Decimal:
		h.decimal(x)
	case time.Time:
		h.put64(uint64(Ticks(x)))
	case uuid.UUID:
		h.write(x[:])
	case []byte:
		h.put32(uint32(len(x)))
		h.write(x)
	default:
		fallbacks.Add(1)
		h.writeString(utils.ToString(v))
	}
}

func float64Bits(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return canonicalNaN
	case f == 0:
		return 0
	}
	return math.Float64bits(f)
}

func float32Bits(f float32) uint32 {
	switch {
	case f != f:
		return math.Float32bits(float32(math.NaN()))
	case f == 0:
		return 0
	}
	return math.Float32bits(f)
}

// Ticks returns the number of 100ns intervals since 0001-01-01 UTC.
func Ticks(t time.Time) int64 {
	t = t.UTC()
	return t.Unix()*10_000_000 + int64(t.Nanosecond()/100) + epochTicks
}

var (
	ten         = big.NewInt(10)
	maxMantissa = new(big.Int).Lsh(big.NewInt(1), 96)
)

const maxFoldedExponent = 28

// decimal hashes the value as four 32-bit words: flags (sign and scale) followed by the
// low, mid and high words of the 96-bit coefficient. Trailing zeros are stripped first
// so that 1.0 and 1.00 hash alike. Values needing more than 96 bits fall back to the
// canonical string of the normalized value.
func (h *hasher) decimal(d decimal.Decimal) {
	coef := new(big.Int).Set(d.Coefficient())
	exp := d.Exponent()

	if coef.Sign() == 0 {
		exp = 0
	} else {
		q, r := new(big.Int), new(big.Int)
		for {
			q.QuoRem(coef, ten, r)
			if r.Sign() != 0 {
				break
			}
			coef.Set(q)
			exp++
		}
	}

	// Positive exponents are folded into the coefficient so the scale is never negative.
	// 10^29 already exceeds 96 bits, so larger exponents go straight to the fallback.
	if exp > maxFoldedExponent {
		h.decimalText(coef, exp)
		return
	}
	if exp > 0 {
		coef.Mul(coef, new(big.Int).Exp(ten, big.NewInt(int64(exp)), nil))
		exp = 0
	}

	neg := coef.Sign() < 0
	abs := new(big.Int).Abs(coef)
	scale := -exp
	if abs.Cmp(maxMantissa) >= 0 || scale > 255 {
		h.decimalText(coef, exp)
		return
	}

	flags := uint32(scale) << 16
	if neg {
		flags |= 1 << 31
	}
	h.put32(flags)

	var buf [12]byte
	abs.FillBytes(buf[:])
	h.put32(binary.BigEndian.Uint32(buf[8:12]))
	h.put32(binary.BigEndian.Uint32(buf[4:8]))
	h.put32(binary.BigEndian.Uint32(buf[0:4]))
}

// decimalText hashes a normalized coefficient and exponent as "<coef>e<exp>". It never
// expands the exponent, so it stays cheap for values like 1e2000000000.
func (h *hasher) decimalText(coef *big.Int, exp int32) {
	h.writeString(coef.String())
	h.writeByte('e')
	h.writeString(strconv.FormatInt(int64(exp), 10))
}
