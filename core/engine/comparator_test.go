package engine

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-engine/core/fieldpath"
)

func compareFixture(t *testing.T, logicID string, set *ReconSet) *ComparisonResult {
	t.Helper()
	rule := fixtureRule()
	logic, ok := rule.ComparisonLogic(logicID)
	require.True(t, ok)
	result, err := Compare(context.Background(), fixtureStore(), rule, logic, set)
	require.NoError(t, err)
	return result
}

func TestCompare_LineItemRows(t *testing.T) {
	_, _, set := buildFixtureSet(t)
	result := compareFixture(t, "comp-1", set)

	require.Len(t, result.Rows, 2)

	apple := result.Rows[0]
	assert.Equal(t, "SKU-APPLE", apple.Key)
	assert.Equal(t, fieldpath.Number(14), apple.Values["GRN Qty"])
	assert.Equal(t, fieldpath.Number(14), apple.Values["PO Qty"])
	assert.True(t, apple.IsConsistent)

	// The GRN received 5 bananas against 6 ordered.
	banana := result.Rows[1]
	assert.Equal(t, "SKU-BANANA", banana.Key)
	assert.Equal(t, fieldpath.Number(5), banana.Values["GRN Qty"])
	assert.Equal(t, fieldpath.Number(6), banana.Values["PO Qty"])
	assert.False(t, banana.IsConsistent)
}

func TestCompare_LineItemRowsGolden(t *testing.T) {
	_, _, set := buildFixtureSet(t)
	result := compareFixture(t, "comp-1", set)

	data, err := json.MarshalIndent(result, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "grn_vs_po_quantities", data)
}

func TestCompare_WholeDocumentRow(t *testing.T) {
	_, _, set := buildFixtureSet(t)
	result := compareFixture(t, "comp-2", set)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]
	assert.Equal(t, "Amounts", row.Key)

	// One value per compare field; the first document in group order with
	// the field present contributes it (inv-1 and cn-1 here).
	assert.Equal(t, fieldpath.Number(1234), row.Values["PO Total"])
	assert.Equal(t, fieldpath.Number(1234), row.Values["Invoice Total"])
	assert.Equal(t, fieldpath.Number(50), row.Values["CN Total"])

	// 50 disagrees with 1234, so the row is inconsistent even though the
	// PO and invoice totals line up.
	assert.False(t, row.IsConsistent)
}

func TestCompare_VacuousConsistency(t *testing.T) {
	rule := fixtureRule()
	logic, ok := rule.ComparisonLogic("comp-2")
	require.True(t, ok)

	// Only the PO group holds a document; the other fields resolve absent.
	set := &ReconSet{DocumentIDsByGroup: map[string][]string{
		"g-po":  {"po-1"},
		"g-inv": {},
		"g-cn":  {},
	}}

	result, err := Compare(context.Background(), fixtureStore(), rule, logic, set)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, fieldpath.Number(1234), row.Values["PO Total"])
	assert.True(t, row.Values["Invoice Total"].IsAbsent())
	assert.True(t, row.Values["CN Total"].IsAbsent())
	// A single present value has nothing to contradict.
	assert.True(t, row.IsConsistent)
}

func TestCompare_StringValues(t *testing.T) {
	rule := fixtureRule()
	logic := &ComparisonLogic{
		ID:       "comp-desc",
		Name:     "Descriptions",
		GroupIDs: []string{"g-po", "g-grn"},
		CompareFields: []CompareField{
			{GroupID: "g-po", FieldPath: "description", Label: "PO Description"},
			{GroupID: "g-grn", FieldPath: "description", Label: "GRN Description"},
		},
	}
	_, _, set := buildFixtureSet(t)

	result, err := Compare(context.Background(), fixtureStore(), rule, logic, set)
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)

	row := result.Rows[0]
	assert.Equal(t, fieldpath.String("Office supplies"), row.Values["PO Description"])
	assert.Equal(t, fieldpath.String("Goods received"), row.Values["GRN Description"])
	assert.False(t, row.IsConsistent)
}

func TestCompare_Idempotent(t *testing.T) {
	_, _, set := buildFixtureSet(t)

	first := compareFixture(t, "comp-1", set)
	second := compareFixture(t, "comp-1", set)
	assert.Equal(t, first, second)
}
