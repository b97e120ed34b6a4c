package fieldpath

import (
	"strings"

	apperrors "recon-engine/core/errors"
)

// expansion marker suffix on a path segment, e.g. "lineItems[]".
const expandSuffix = "[]"

// Path is a parsed field path: an ordered list of segments with at most one
// array-expansion marker. Parse once at rule load time and reuse.
type Path struct {
	raw      string
	segments []string
	// expand is the index of the segment carrying the [] marker, -1 if none.
	expand int
}

// Parse parses a dotted field path like "poNumber" or "lineItems[].qty".
// It returns a MalformedFieldPath error for empty paths, empty segments,
// multiple expansion markers, or an expansion marker on the last position
// with no leaf segment after it.
func Parse(raw string) (Path, error) {
	if strings.TrimSpace(raw) == "" {
		return Path{}, apperrors.NewFieldPathError(raw, "empty path")
	}

	parts := strings.Split(raw, ".")
	p := Path{raw: raw, segments: make([]string, 0, len(parts)), expand: -1}

	for i, part := range parts {
		name := part
		if strings.HasSuffix(part, expandSuffix) {
			if p.expand != -1 {
				return Path{}, apperrors.NewFieldPathError(raw, "multiple expansion markers")
			}
			name = strings.TrimSuffix(part, expandSuffix)
			p.expand = i
		}
		if name == "" || strings.ContainsAny(name, "[]") {
			return Path{}, apperrors.NewFieldPathError(raw, "invalid segment "+part)
		}
		p.segments = append(p.segments, name)
	}

	if p.expand == len(p.segments)-1 {
		return Path{}, apperrors.NewFieldPathError(raw, "expansion marker requires a field after it")
	}

	return p, nil
}

// MustParse is Parse for static paths known to be valid; it panics on error.
func MustParse(raw string) Path {
	p, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original path text.
func (p Path) String() string {
	return p.raw
}

// Expands reports whether the path contains an array-expansion segment.
func (p Path) Expands() bool {
	return p.expand >= 0
}

// Resolve extracts the path's values from a document field map.
//
// A plain path yields exactly one value (absent if the field is missing).
// An expansion path yields one value per array element in array order; a
// missing or non-array field yields an empty sequence.
func (p Path) Resolve(fields map[string]any) []Value {
	if !p.Expands() {
		return []Value{resolveScalar(fields, p.segments)}
	}

	container := walk(fields, p.segments[:p.expand])
	if container == nil {
		return []Value{}
	}
	arr, ok := container[p.segments[p.expand]].([]any)
	if !ok {
		return []Value{}
	}

	leaf := p.segments[p.expand+1:]
	values := make([]Value, 0, len(arr))
	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			values = append(values, Absent())
			continue
		}
		values = append(values, resolveScalar(obj, leaf))
	}
	return values
}

// ResolveElements extracts, for each element of the expansion array, both the
// leaf value and a sibling key field from the same element. Comparison rows
// are joined on item identity, so the caller needs the element's key (e.g.
// its SKU) alongside the compared value.
func (p Path) ResolveElements(fields map[string]any, keyField string) []Element {
	if !p.Expands() {
		return nil
	}

	container := walk(fields, p.segments[:p.expand])
	if container == nil {
		return nil
	}
	arr, ok := container[p.segments[p.expand]].([]any)
	if !ok {
		return nil
	}

	leaf := p.segments[p.expand+1:]
	elements := make([]Element, 0, len(arr))
	for _, elem := range arr {
		obj, ok := elem.(map[string]any)
		if !ok {
			continue
		}
		elements = append(elements, Element{
			Key:   resolveScalar(obj, []string{keyField}),
			Value: resolveScalar(obj, leaf),
		})
	}
	return elements
}

// Element is one expanded array entry: its identity key and resolved value.
type Element struct {
	Key   Value
	Value Value
}

// resolveScalar walks nested maps to the final segment and converts the leaf.
func resolveScalar(fields map[string]any, segments []string) Value {
	if len(segments) == 0 {
		return Absent()
	}
	container := walk(fields, segments[:len(segments)-1])
	if container == nil {
		return Absent()
	}
	raw, ok := container[segments[len(segments)-1]]
	if !ok {
		return Absent()
	}
	return FromAny(raw)
}

// walk descends through nested object segments, returning nil when any hop
// is missing or not an object.
func walk(fields map[string]any, segments []string) map[string]any {
	current := fields
	for _, seg := range segments {
		next, ok := current[seg].(map[string]any)
		if !ok {
			return nil
		}
		current = next
	}
	return current
}
