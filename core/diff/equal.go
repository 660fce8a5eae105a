package diff

import (
	"bytes"
	"math"
	"time"

	"tablediff/core/dataset"
	"tablediff/core/utils"

	"github.com/shopspring/decimal"
)

// Equal compares two values under the declared kind.
func Equal(kind dataset.Kind, a, b any) bool {
	if kind == dataset.KindString {
		return utils.ToString(a) == utils.ToString(b)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	ca, okA := kind.Coerce(a)
	cb, okB := kind.Coerce(b)
	if okA != okB {
		return false
	}
	if !okA {
		return utils.ToString(a) == utils.ToString(b)
	}

	switch x := ca.(type) {
	case float64:
		y := cb.(float64)
		return x == y || (math.IsNaN(x) && math.IsNaN(y))
	case float32:
		y := cb.(float32)
		return x == y || (x != x && y != y)
	case decimal.Decimal:
		return x.Equal(cb.(decimal.Decimal))
	case time.Time:
		return x.Equal(cb.(time.Time))
	case []byte:
		return bytes.Equal(x, cb.([]byte))
	default:
		return ca == cb
	}
}

// RowsEqual compares row i of source with row j of target over the source's declared
// columns. A column absent from the target reads as NULL there.
func RowsEqual(source *dataset.Dataset, i int, target *dataset.Dataset, j int) bool {
	for pos, col := range source.Columns() {
		var tv any
		if tpos, ok := target.Lookup(col.Name); ok && !target.IsHidden(tpos) {
			tv = target.Value(j, tpos)
		}
		if !Equal(col.Kind, source.Value(i, pos), tv) {
			return false
		}
	}
	return true
}
