package dataset

import (
	"math"
	"strings"

	"tablediff/core/utils"
)

// Kind is the declared value type of a column.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindString
	KindInt32
	KindInt64
	KindInt16
	KindByte
	KindBool
	KindDouble
	KindFloat32
	KindDecimal
	KindDateTime
	KindGUID
	KindBytes
)

var kindNames = [...]string{
	KindUnknown:  "unknown",
	KindString:   "string",
	KindInt32:    "int32",
	KindInt64:    "int64",
	KindInt16:    "int16",
	KindByte:     "byte",
	KindBool:     "bool",
	KindDouble:   "double",
	KindFloat32:  "float32",
	KindDecimal:  "decimal",
	KindDateTime: "datetime",
	KindGUID:     "guid",
	KindBytes:    "bytes",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// MarshalText renders the kind by name in JSON reports.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// KindFromDatabaseType maps a database or inferred type name to a Kind.
// Unrecognized names map to KindUnknown.
func KindFromDatabaseType(typeName string) Kind {
	t := strings.ToLower(strings.TrimSpace(typeName))
	if i := strings.IndexByte(t, '('); i >= 0 {
		size := t[i:]
		t = strings.TrimSpace(t[:i])
		if t == "tinyint" && strings.HasPrefix(size, "(1)") {
			return KindBool
		}
	}
	t = strings.TrimSpace(strings.TrimSuffix(t, "unsigned"))

	switch t {
	case "":
		return KindUnknown
	case "bool", "boolean", "bit":
		return KindBool
	case "tinyint":
		return KindByte
	case "smallint", "int2", "year":
		return KindInt16
	case "mediumint", "int", "int4":
		return KindInt32
	case "integer", "bigint", "int8", "serial", "bigserial":
		return KindInt64
	case "double", "double precision", "real", "float8":
		return KindDouble
	case "float", "float4":
		return KindFloat32
	case "decimal", "numeric", "money", "number":
		return KindDecimal
	case "date", "datetime", "timestamp", "timestamptz", "timestamp with time zone", "timestamp without time zone":
		return KindDateTime
	case "uuid", "uniqueidentifier", "guid":
		return KindGUID
	}

	switch {
	case strings.Contains(t, "char"), strings.Contains(t, "text"), strings.Contains(t, "string"),
		strings.Contains(t, "clob"), t == "enum", t == "set", t == "json", t == "jsonb", t == "time":
		return KindString
	case strings.Contains(t, "blob"), strings.Contains(t, "binary"), t == "bytea", t == "bytes":
		return KindBytes
	}
	return KindUnknown
}

// Coerce converts v to the canonical Go type of the kind:
// string, int32, int64, int16, uint8, bool, float64, float32, decimal.Decimal,
// time.Time, uuid.UUID or []byte. nil is returned unchanged.
// ok is false when v is not convertible or the kind is KindUnknown.
func (k Kind) Coerce(v any) (any, bool) {
	if v == nil {
		return nil, true
	}
	switch k {
	case KindString:
		return utils.ToString(v), true
	case KindInt32:
		i, ok := utils.ToIntRange(v, math.MinInt32, math.MaxInt32)
		return int32(i), ok
	case KindInt64:
		return utils.ToInt64(v)
	case KindInt16:
		i, ok := utils.ToIntRange(v, math.MinInt16, math.MaxInt16)
		return int16(i), ok
	case KindByte:
		i, ok := utils.ToIntRange(v, 0, math.MaxUint8)
		return uint8(i), ok
	case KindBool:
		return utils.ToBool(v)
	case KindDouble:
		return utils.ToFloat64(v)
	case KindFloat32:
		f, ok := utils.ToFloat64(v)
		return float32(f), ok
	case KindDecimal:
		return utils.ToDecimal(v)
	case KindDateTime:
		return utils.ToTime(v)
	case KindGUID:
		return utils.ToUUID(v)
	case KindBytes:
		return utils.ToBytes(v)
	default:
		return v, false
	}
}
