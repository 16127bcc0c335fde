// Package value classifies raw configuration tokens into typed values.
//
// Classification is a pure function of the token text with a fixed
// precedence: boolean literal, strict integer, strict float, string.
// Tokens that merely look numeric but fail the strict grammar ("inf",
// "nan", "0.0.1") stay strings, as does the empty token.
package value

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies the inferred type of a Value.
type Kind uint8

const (
	// KindString is the fallback classification, including the empty token.
	KindString Kind = iota
	// KindBool covers the literals TRUE/FALSE/YES/NO/ON/OFF (any case).
	KindBool
	// KindInt covers optional-sign decimal integers.
	KindInt
	// KindFloat covers decimal numbers with a fraction and/or exponent.
	KindFloat
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "string"
	}
}

var (
	// intRE matches an optional sign followed by decimal digits and nothing else.
	intRE = regexp.MustCompile(`^[+-]?[0-9]+$`)
	// floatRE matches the decimal-number grammar: optional sign, digits with
	// optional fraction (or a bare fraction), optional exponent. It never
	// matches "inf"/"nan" or multi-dot tokens like "0.0.1".
	floatRE = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// Value is a closed variant over bool, int64, float64 and string.
// The zero Value is the empty string.
type Value struct {
	kind Kind
	raw  string
	b    bool
	i    int64
	f    float64
}

// Coerce classifies one raw token into exactly one Value.
// First match wins: boolean, integer, float, string.
func Coerce(raw string) Value {
	if raw == "" {
		return Value{kind: KindString}
	}

	switch strings.ToLower(raw) {
	case "true", "yes", "on":
		return Value{kind: KindBool, raw: raw, b: true}
	case "false", "no", "off":
		return Value{kind: KindBool, raw: raw}
	}

	if intRE.MatchString(raw) {
		if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return Value{kind: KindInt, raw: raw, i: i}
		}
		// Out of int64 range: fall through to float classification.
	}

	if floatRE.MatchString(raw) {
		if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return Value{kind: KindFloat, raw: raw, f: f}
		}
	}

	return Value{kind: KindString, raw: raw}
}

// Kind returns the inferred type of the value.
func (v Value) Kind() Kind { return v.kind }

// Bool returns the boolean representation. It is only meaningful for
// KindBool values and false otherwise.
func (v Value) Bool() bool { return v.b }

// Int returns the integer representation, or 0 for non-integer values.
func (v Value) Int() int64 { return v.i }

// Float returns the floating-point representation. For KindInt values it
// returns the integer widened to float64.
func (v Value) Float() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// String returns the raw token text, verbatim.
func (v Value) String() string { return v.raw }

// Interface returns the typed Go value: bool, int64, float64 or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	default:
		return v.raw
	}
}
