package query

import "strconv"

// Kind identifies the concrete type stored in a Value.
type Kind uint8

const (
	// KindInvalid represents an invalid kind.
	KindInvalid Kind = iota
	// KindString represents a string value.
	KindString
	// KindInt represents an integer value.
	KindInt
	// KindFloat represents a float value.
	KindFloat
)

// Value is a small typed literal resolved at parse time.
//
// The representation keeps evaluation predictable: the comparator sees the
// kind the parser assigned and never re-infers a type from context.
type Value struct {
	Kind Kind
	Str  string
	I64  int64
	F64  float64
}

// String returns a string Value.
func String(v string) Value { return Value{Kind: KindString, Str: v} }

// Int returns an int64 Value.
func Int(v int64) Value { return Value{Kind: KindInt, I64: v} }

// Float returns a float64 Value.
func Float(v float64) Value { return Value{Kind: KindFloat, F64: v} }

// Numeric reports whether the value carries a numeric kind.
func (v Value) Numeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// AsFloat64 widens a numeric value to float64.
func (v Value) AsFloat64() float64 {
	if v.Kind == KindInt {
		return float64(v.I64)
	}
	return v.F64
}

// Literal returns the literal as it appeared in the filter string, for use
// in error messages.
func (v Value) Literal() string {
	switch v.Kind {
	case KindString:
		return "'" + v.Str + "'"
	case KindInt:
		return strconv.FormatInt(v.I64, 10)
	case KindFloat:
		return strconv.FormatFloat(v.F64, 'g', -1, 64)
	default:
		return "<invalid>"
	}
}
