package engine

import (
	"sort"

	"recon-engine/core/docstore"
	"recon-engine/core/fieldpath"
)

// MatchCandidates evaluates one criteria variation of a link: it returns
// the subset of candidates whose fields equal the from document's fields
// pairwise. Candidate order is preserved and the inputs are never mutated.
// An empty result is a valid outcome, not an error.
func MatchCandidates(from *docstore.Document, candidates []*docstore.Document, variation CriteriaVariation) ([]*docstore.Document, error) {
	// Resolve the from side once per pair; it is the same for every candidate.
	type condition struct {
		fromValues []fieldpath.Value
		toPath     fieldpath.Path
	}

	conditions := make([]condition, 0, len(variation.IdentifierFields))
	for _, pair := range variation.IdentifierFields {
		fromPath, err := fieldpath.Parse(pair.FromField)
		if err != nil {
			return nil, err
		}
		toPath, err := fieldpath.Parse(pair.ToField)
		if err != nil {
			return nil, err
		}
		conditions = append(conditions, condition{
			fromValues: fromPath.Resolve(from.Fields),
			toPath:     toPath,
		})
	}

	var matched []*docstore.Document
	for _, candidate := range candidates {
		ok := true
		for _, cond := range conditions {
			if !valuesEqual(cond.fromValues, cond.toPath.Resolve(candidate.Fields)) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, candidate)
		}
	}
	return matched, nil
}

// valuesEqual compares two resolved value sequences. Scalar paths yield
// single-element sequences. Expanded sequences represent unordered line
// items, so they compare element-wise after sorting by a stable key. Absent
// values never match, and an empty sequence matches nothing: missing data
// cannot produce a match.
func valuesEqual(a, b []fieldpath.Value) bool {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return false
	}
	if len(a) == 1 {
		return a[0].Equal(b[0])
	}

	as := sortedCopy(a)
	bs := sortedCopy(b)
	for i := range as {
		if !as[i].Equal(bs[i]) {
			return false
		}
	}
	return true
}

func sortedCopy(values []fieldpath.Value) []fieldpath.Value {
	out := make([]fieldpath.Value, len(values))
	copy(out, values)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}
