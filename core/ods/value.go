package ods

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"

	"tablediff/core/utils"
)

// cellValue decodes a cell by its value type. Unparsable typed values fall back to the
// cell's text.
func cellValue(el xml.StartElement, text string) any {
	stringValue, hasString := lookupAttr(el, nsOffice, "office", "string-value")

	switch attr(el, nsOffice, "office", "value-type") {
	case "":
		if hasString {
			return stringValue
		}
		return text
	case "string":
		if hasString {
			return stringValue
		}
		return text
	case "float", "percentage", "currency":
		if f, err := strconv.ParseFloat(strings.TrimSpace(attr(el, nsOffice, "office", "value")), 64); err == nil {
			return f
		}
		return text
	case "boolean":
		switch strings.ToLower(strings.TrimSpace(attr(el, nsOffice, "office", "boolean-value"))) {
		case "true":
			return true
		case "false":
			return false
		}
		return text
	case "date":
		if t, ok := utils.ToTime(attr(el, nsOffice, "office", "date-value")); ok {
			return t
		}
		return text
	case "time":
		if d, ok := ParseDuration(attr(el, nsOffice, "office", "time-value")); ok {
			return d
		}
		return text
	case "void":
		return nil
	default:
		return text
	}
}

// ParseDuration parses an ISO-8601 duration such as "PT01H30M00S" or "-P1DT2H".
// Years and months are not accepted since they have no fixed length.
func ParseDuration(s string) (time.Duration, bool) {
	s = strings.TrimSpace(s)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") || len(s) < 2 {
		return 0, false
	}
	s = s[1:]

	var total float64
	inTime := false
	num := ""
	seen := false
	for _, r := range s {
		switch {
		case r == 'T':
			if inTime || num != "" {
				return 0, false
			}
			inTime = true
		case (r >= '0' && r <= '9') || r == '.' || r == ',':
			if r == ',' {
				r = '.'
			}
			num += string(r)
		default:
			if num == "" {
				return 0, false
			}
			v, err := strconv.ParseFloat(num, 64)
			if err != nil {
				return 0, false
			}
			var unit time.Duration
			switch {
			case !inTime && r == 'D':
				unit = 24 * time.Hour
			case !inTime && r == 'W':
				unit = 7 * 24 * time.Hour
			case inTime && r == 'H':
				unit = time.Hour
			case inTime && r == 'M':
				unit = time.Minute
			case inTime && r == 'S':
				unit = time.Second
			default:
				return 0, false
			}
			total += v * float64(unit)
			num = ""
			seen = true
		}
	}
	if num != "" || !seen {
		return 0, false
	}

	d := time.Duration(total)
	if neg {
		d = -d
	}
	return d, true
}
