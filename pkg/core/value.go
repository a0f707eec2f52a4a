package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Kind identifies the runtime type carried by a Value.
type Kind int

// Value kinds.
const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
	KindTime
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Value is a tagged scalar bound to a parameter, a metric or a synthetic field.
// The zero Value is null.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	t    time.Time
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a string value.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Int returns an integer value.
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Time returns a timestamp value.
func Time(t time.Time) Value { return Value{kind: KindTime, t: t} }

// Kind returns the value's kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// IsNumber reports whether v is an Int or a Float.
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// Number returns v as a float64 for Int and Float values.
func (v Value) Number() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// TimeValue returns the timestamp held by a Time value.
func (v Value) TimeValue() (time.Time, bool) {
	return v.t, v.kind == KindTime
}

// String renders the value for display.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.s
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return formatFloat(v.f)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTime:
		return v.t.Format("2006-01-02 15:04:05")
	default:
		return "null"
	}
}

// formatFloat keeps a decimal point on integral floats so that 1.0 and 1
// stay distinguishable in tables.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) || strings.ContainsAny(s, ".e") {
		return s
	}
	return s + ".0"
}

// Coerce converts a textual literal to the kind of v. The second result is
// false when the literal cannot be represented in that kind; callers then
// compare against String(literal).
func (v Value) Coerce(literal string) (Value, bool) {
	switch v.kind {
	case KindString:
		return String(literal), true
	case KindInt:
		i, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return Value{}, false
		}
		return Int(i), true
	case KindFloat:
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return Value{}, false
		}
		return Float(f), true
	case KindBool:
		b, err := strconv.ParseBool(literal)
		if err != nil {
			return Value{}, false
		}
		return Bool(b), true
	case KindTime:
		t, err := ParseDayFirst(literal)
		if err != nil {
			return Value{}, false
		}
		return Time(t), true
	default:
		return Value{}, false
	}
}

// Compare orders v against other. The second result is false when the two
// values have no common ordering (different kinds other than Int/Float, or
// either side null).
func (v Value) Compare(other Value) (int, bool) {
	if v.IsNumber() && other.IsNumber() {
		if v.kind == KindInt && other.kind == KindInt {
			return cmpOrdered(v.i, other.i), true
		}
		a, _ := v.Number()
		b, _ := other.Number()
		return cmpOrdered(a, b), true
	}
	if v.kind != other.kind || v.kind == KindNull {
		return 0, false
	}
	switch v.kind {
	case KindString:
		return strings.Compare(v.s, other.s), true
	case KindBool:
		switch {
		case v.b == other.b:
			return 0, true
		case !v.b:
			return -1, true
		default:
			return 1, true
		}
	case KindTime:
		return v.t.Compare(other.t), true
	}
	return 0, false
}

// Equal reports whether v and other hold the same value. Two nulls are equal.
func (v Value) Equal(other Value) bool {
	if v.kind == KindNull || other.kind == KindNull {
		return v.kind == other.kind
	}
	c, ok := v.Compare(other)
	return ok && c == 0
}

// sortRank groups kinds for Less when values are not mutually comparable.
func (k Kind) sortRank() int {
	switch k {
	case KindInt, KindFloat:
		return 0
	case KindString:
		return 1
	case KindBool:
		return 2
	case KindTime:
		return 3
	default:
		return 4
	}
}

// Less is a total order over values used for sorting runs. Comparable values
// use Compare; otherwise numbers sort before strings, then bools, timestamps
// and nulls.
func Less(a, b Value) bool {
	if c, ok := a.Compare(b); ok {
		return c < 0
	}
	return a.kind.sortRank() < b.kind.sortRank()
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes the value as its natural JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.s)
	case KindInt:
		return json.Marshal(v.i)
	case KindFloat:
		if math.IsInf(v.f, 0) || math.IsNaN(v.f) {
			return json.Marshal(formatFloat(v.f))
		}
		return json.Marshal(v.f)
	case KindBool:
		return json.Marshal(v.b)
	case KindTime:
		return json.Marshal(v.t.Format(time.RFC3339))
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes a JSON scalar. Integral number literals become Int,
// other numbers Float; arrays and objects are kept as their compact JSON text.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := fromJSON(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func fromJSON(raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(x), nil
	case bool:
		return Bool(x), nil
	case json.Number:
		return fromNumber(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return Value{}, err
		}
		return String(string(b)), nil
	}
}

func fromNumber(n json.Number) (Value, error) {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return Float(f), nil
}
