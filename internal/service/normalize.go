package service

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"butce/internal/metrics"

	"github.com/shopspring/decimal"
)

// Normalize turns a raw worksheet or form value into a finite float64. It
// never fails: anything it cannot read becomes 0.
//
// Text is reduced to digits, dots and commas. When both separators occur,
// the one that appears last is the decimal mark. A lone comma is always
// decimal ("10,5"). A lone dot is a Turkish thousands separator only when
// it groups exactly three digits after a non-zero integer part of up to
// three digits ("1.500" is 1500, "10.5" and "0.500" stay decimal). Repeated
// occurrences of a single separator kind are thousands separators. Signs
// are dropped along with every other non-numeric character.
func Normalize(raw any) float64 {
	switch v := raw.(type) {
	case nil:
		return 0
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v)
	case int8:
		return float64(v)
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case uint:
		return float64(v)
	case uint8:
		return float64(v)
	case uint16:
		return float64(v)
	case uint32:
		return float64(v)
	case uint64:
		return float64(v)
	case decimal.Decimal:
		f, _ := v.Float64()
		return finite(f)
	case *decimal.Decimal:
		if v == nil {
			return 0
		}
		f, _ := v.Float64()
		return finite(f)
	case json.Number:
		if f, err := strconv.ParseFloat(string(v), 64); err == nil {
			return finite(f)
		}
		return normalizeText(string(v))
	case string:
		return normalizeText(v)
	case []byte:
		return normalizeText(string(v))
	case fmt.Stringer:
		if isNilPointer(v) {
			return 0
		}
		return normalizeText(v.String())
	}
	if isNilPointer(raw) {
		return 0
	}
	if rv := reflect.ValueOf(raw); rv.Kind() == reflect.Pointer {
		return Normalize(rv.Elem().Interface())
	}
	return normalizeText(fmt.Sprint(raw))
}

func normalizeText(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	cleaned := canonicalNumber(s)
	if cleaned == "" {
		metrics.NormalizeFallbacks.Inc()
		return 0
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		metrics.NormalizeFallbacks.Inc()
		return 0
	}
	return f
}

// canonicalNumber rewrites s into the form strconv.ParseFloat expects, or
// returns "" when no digit survives.
func canonicalNumber(s string) string {
	var b strings.Builder
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return ""
	}
	kept := b.String()

	dot := strings.LastIndexByte(kept, '.')
	comma := strings.LastIndexByte(kept, ',')
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			return keepLastAsDecimal(strings.ReplaceAll(kept, ".", ""), ',')
		}
		return keepLastAsDecimal(strings.ReplaceAll(kept, ",", ""), '.')
	case comma >= 0:
		if strings.Count(kept, ",") > 1 {
			return strings.ReplaceAll(kept, ",", "")
		}
		return strings.Replace(kept, ",", ".", 1)
	case dot >= 0:
		if strings.Count(kept, ".") > 1 || isThousandsGroup(kept, dot) {
			return strings.ReplaceAll(kept, ".", "")
		}
		return kept
	}
	return kept
}

// keepLastAsDecimal drops every sep except the last one, which becomes '.'.
func keepLastAsDecimal(s string, sep byte) string {
	last := strings.LastIndexByte(s, sep)
	head := strings.ReplaceAll(s[:last], string(sep), "")
	return head + "." + s[last+1:]
}

func isThousandsGroup(s string, dot int) bool {
	intPart, frac := s[:dot], s[dot+1:]
	if len(frac) != 3 || len(intPart) == 0 || len(intPart) > 3 {
		return false
	}
	return strings.TrimLeft(intPart, "0") != ""
}

func finite(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
