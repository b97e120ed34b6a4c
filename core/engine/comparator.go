package engine

import (
	"context"

	"recon-engine/core/docstore"
	"recon-engine/core/fieldpath"
	"recon-engine/core/utils"
)

// itemKeyField is the line-item identity field used to join expanded
// elements across groups into rows.
const itemKeyField = "sku"

// Compare evaluates one comparison logic against a set snapshot. The result
// is a pure function of the snapshot and the document store, so re-running
// it on an unchanged set returns an identical result.
//
// Row derivation: when every selected field expands line items, rows are
// joined on the items' identity key; otherwise there is exactly one row
// aggregating one value per compare field, keyed by the logic's name.
func Compare(ctx context.Context, store docstore.Store, rule *Rule, logic *ComparisonLogic, set *ReconSet) (*ComparisonResult, error) {
	docsByGroup := make(map[string][]*docstore.Document, len(logic.GroupIDs))
	for _, groupID := range logic.GroupIDs {
		docs := make([]*docstore.Document, 0, len(set.DocumentIDsByGroup[groupID]))
		for _, docID := range set.DocumentIDsByGroup[groupID] {
			doc, err := store.GetDocument(ctx, docID)
			if err != nil {
				return nil, err
			}
			docs = append(docs, doc)
		}
		docsByGroup[groupID] = docs
	}

	lineItems := true
	for _, field := range logic.CompareFields {
		path, err := fieldpath.Parse(field.FieldPath)
		if err != nil {
			return nil, err
		}
		if !path.Expands() {
			lineItems = false
			break
		}
	}

	var rows []ComparisonRow
	var err error
	if lineItems {
		rows, err = lineItemRows(logic, docsByGroup)
	} else {
		rows, err = wholeDocumentRow(logic, docsByGroup)
	}
	if err != nil {
		return nil, err
	}

	for i := range rows {
		rows[i].IsConsistent = rowConsistent(rows[i].Values)
	}

	return &ComparisonResult{ComparisonLogicID: logic.ID, Rows: rows}, nil
}

// lineItemRows joins expanded array elements across compare fields by item
// identity. Rows appear in first-seen key order; within a row the first
// value seen for a label wins (first document in group order).
func lineItemRows(logic *ComparisonLogic, docsByGroup map[string][]*docstore.Document) ([]ComparisonRow, error) {
	var rows []ComparisonRow
	index := make(map[string]int)

	for _, field := range logic.CompareFields {
		path, err := fieldpath.Parse(field.FieldPath)
		if err != nil {
			return nil, err
		}
		label := field.EffectiveLabel()

		for _, doc := range docsByGroup[field.GroupID] {
			for _, element := range path.ResolveElements(doc.Fields, itemKeyField) {
				if element.Key.IsAbsent() {
					// An item with no identity cannot be joined.
					continue
				}
				key := utils.ToString(element.Key.Any())

				rowIdx, ok := index[key]
				if !ok {
					rowIdx = len(rows)
					index[key] = rowIdx
					rows = append(rows, ComparisonRow{
						Key:    key,
						Values: make(map[string]fieldpath.Value, len(logic.CompareFields)),
					})
				}
				if _, exists := rows[rowIdx].Values[label]; !exists {
					rows[rowIdx].Values[label] = element.Value
				}
			}
		}
	}

	return rows, nil
}

// wholeDocumentRow aggregates one scalar value per compare field into a
// single row. The first document in the group that has the field present
// contributes the value; a group with no documents contributes absent.
func wholeDocumentRow(logic *ComparisonLogic, docsByGroup map[string][]*docstore.Document) ([]ComparisonRow, error) {
	row := ComparisonRow{
		Key:    logic.Name,
		Values: make(map[string]fieldpath.Value, len(logic.CompareFields)),
	}

	for _, field := range logic.CompareFields {
		path, err := fieldpath.Parse(field.FieldPath)
		if err != nil {
			return nil, err
		}

		value := fieldpath.Absent()
		for _, doc := range docsByGroup[field.GroupID] {
			resolved := path.Resolve(doc.Fields)
			if len(resolved) == 1 && !resolved[0].IsAbsent() {
				value = resolved[0]
				break
			}
		}
		row.Values[field.EffectiveLabel()] = value
	}

	return []ComparisonRow{row}, nil
}

// rowConsistent implements the row verdict: every numeric value equals
// every other numeric value, every string value equals every other string
// value (case-sensitive). A row with fewer than two present values is
// vacuously consistent; there is not enough data to contradict.
func rowConsistent(values map[string]fieldpath.Value) bool {
	var firstNum fieldpath.Value
	var firstStr fieldpath.Value
	haveNum, haveStr := false, false

	for _, value := range values {
		switch value.Kind() {
		case fieldpath.KindNumber:
			if !haveNum {
				firstNum, haveNum = value, true
			} else if !value.Equal(firstNum) {
				return false
			}
		case fieldpath.KindString:
			if !haveStr {
				firstStr, haveStr = value, true
			} else if !value.Equal(firstStr) {
				return false
			}
		}
	}

	// Zero or one present value cannot contradict, so the vacuous case
	// falls out as consistent by construction.
	return true
}
