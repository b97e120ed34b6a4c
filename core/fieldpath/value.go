package fieldpath

import (
	"encoding/json"
	"strconv"

	"recon-engine/core/utils"
)

// Kind classifies a resolved Value.
type Kind int

const (
	// KindAbsent marks a field that does not exist on the document.
	KindAbsent Kind = iota
	// KindString marks a textual value.
	KindString
	// KindNumber marks a numeric value.
	KindNumber
)

// Value is the tri-state result of resolving a path segment: absent, string,
// or number. Documents are JSON records, so numbers are float64 throughout.
type Value struct {
	kind Kind
	str  string
	num  float64
}

// Absent returns the absent sentinel value.
func Absent() Value {
	return Value{kind: KindAbsent}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a numeric Value.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f}
}

// FromAny converts a raw document field into a Value. Numeric types become
// numbers, everything else present becomes its string form, nil is absent.
func FromAny(raw any) Value {
	if raw == nil {
		return Absent()
	}
	if f, ok := utils.ToFloat64(raw); ok {
		return Number(f)
	}
	return String(utils.ToString(raw))
}

// Kind returns the value's kind.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is the absent sentinel.
func (v Value) IsAbsent() bool {
	return v.kind == KindAbsent
}

// Str returns the string content. Only meaningful for KindString.
func (v Value) Str() string {
	return v.str
}

// Num returns the numeric content. Only meaningful for KindNumber.
func (v Value) Num() float64 {
	return v.num
}

// Equal compares two values. Absent never equals anything, absent included,
// so a match can never be produced by missing data on both sides.
func (v Value) Equal(o Value) bool {
	if v.kind == KindAbsent || o.kind == KindAbsent {
		return false
	}
	if v.kind != o.kind {
		return false
	}
	if v.kind == KindNumber {
		return v.num == o.num
	}
	return v.str == o.str
}

// SortKey returns a stable ordering key. Kind is prefixed so numbers and
// strings never interleave.
func (v Value) SortKey() string {
	switch v.kind {
	case KindNumber:
		return "n:" + strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindString:
		return "s:" + v.str
	default:
		return ""
	}
}

// Any returns the underlying value for serialization: nil, string, or float64.
func (v Value) Any() any {
	switch v.kind {
	case KindNumber:
		return v.num
	case KindString:
		return v.str
	default:
		return nil
	}
}

// MarshalJSON encodes the underlying value (absent encodes as null).
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Any())
}

// UnmarshalJSON decodes a JSON scalar into a Value.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*v = FromAny(raw)
	return nil
}
