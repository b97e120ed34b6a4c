package recon

import (
	"recon-engine/core/docstore"
	"recon-engine/core/engine"
)

// testStore builds a compact purchase-order fixture: two orders, three
// invoices, one credit note.
func testStore() *docstore.Memory {
	store := docstore.NewMemory()

	docs := []*docstore.Document{
		{ID: "po-1", Type: docstore.DocTypePO, Fields: map[string]any{
			"poNumber": "PO123", "vendor": "Vendor A", "totalAmount": float64(1234),
		}},
		{ID: "po-2", Type: docstore.DocTypePO, Fields: map[string]any{
			"poNumber": "PO456", "vendor": "Vendor B", "totalAmount": float64(500),
		}},
		{ID: "inv-1", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-001", "poNumber": "PO123", "companyName": "Vendor A Inc.", "totalAmount": float64(1234),
		}},
		{ID: "inv-2", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-002", "poNumber": "PO456", "companyName": "Vendor B Ltd.", "totalAmount": float64(500),
		}},
		{ID: "inv-3", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-003", "poNumber": "PO123", "companyName": "Vendor A Inc.", "totalAmount": float64(1200),
		}},
		{ID: "cn-1", Type: docstore.DocTypeCN, Fields: map[string]any{
			"creditNoteNumber": "CN-001", "invoiceNumber": "INV-001", "totalAmount": float64(50),
		}},
	}
	for _, doc := range docs {
		store.AddDocument(doc)
	}

	store.AddQueue(&docstore.Queue{ID: "q-po", Name: "PO Queue", DocType: docstore.DocTypePO, DocumentIDs: []string{"po-1", "po-2"}})
	store.AddQueue(&docstore.Queue{ID: "q-inv", Name: "Invoice Queue", DocType: docstore.DocTypeINV, DocumentIDs: []string{"inv-1", "inv-2", "inv-3"}})
	store.AddQueue(&docstore.Queue{ID: "q-cn", Name: "Credit Note Queue", DocType: docstore.DocTypeCN, DocumentIDs: []string{"cn-1"}})

	return store
}

// testRule links PO -> Invoice -> Credit Note, with a stricter second
// variation on the PO -> Invoice link that never matches the fixture data.
func testRule() *engine.Rule {
	return &engine.Rule{
		ID:            "rule-po",
		Name:          "PO-based reconciliation",
		AnchorGroupID: "g-po",
		Groups: []engine.Group{
			{ID: "g-po", Name: "PO", QueueIDs: []string{"q-po"}},
			{ID: "g-inv", Name: "Invoice", QueueIDs: []string{"q-inv"}},
			{ID: "g-cn", Name: "Credit Note", QueueIDs: []string{"q-cn"}},
		},
		MatchingLogics: []engine.MatchingLogic{{
			ID:            "match-po",
			Name:          "By PO number",
			AnchorGroupID: "g-po",
			Links: []engine.MatchLink{
				{FromGroupID: "g-po", ToGroupID: "g-inv", CriteriaVariations: []engine.CriteriaVariation{
					{IdentifierFields: []engine.FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
					{IdentifierFields: []engine.FieldPair{
						{FromField: "poNumber", ToField: "poNumber"},
						{FromField: "vendor", ToField: "companyName"},
					}},
				}},
				{FromGroupID: "g-inv", ToGroupID: "g-cn", CriteriaVariations: []engine.CriteriaVariation{
					{IdentifierFields: []engine.FieldPair{{FromField: "invoiceNumber", ToField: "invoiceNumber"}}},
				}},
			},
		}},
		ComparisonLogics: []engine.ComparisonLogic{{
			ID:       "comp-amounts",
			Name:     "Amounts",
			GroupIDs: []string{"g-po", "g-inv"},
			CompareFields: []engine.CompareField{
				{GroupID: "g-po", FieldPath: "totalAmount", Label: "PO Total"},
				{GroupID: "g-inv", FieldPath: "totalAmount", Label: "Invoice Total"},
			},
		}},
	}
}
