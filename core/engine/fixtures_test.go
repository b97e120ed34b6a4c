package engine

import (
	"recon-engine/core/docstore"
)

// fixtureStore builds an in-memory document store with the procurement
// fixture used across the engine tests: one fully-linked purchase order
// (po-1) with invoices, goods receipts, a delivery order, credit notes and
// BOMs, plus a second sparse order (po-2).
func fixtureStore() *docstore.Memory {
	store := docstore.NewMemory()

	docs := []*docstore.Document{
		{ID: "po-1", Type: docstore.DocTypePO, Fields: map[string]any{
			"poNumber": "PO123", "vendor": "Vendor A", "description": "Office supplies",
			"totalAmount": float64(1234), "currency": "USD", "date": "2025-01-10",
			"lineItems": []any{
				map[string]any{"sku": "SKU-APPLE", "description": "Apple", "qty": float64(14), "unitPrice": 1.2},
				map[string]any{"sku": "SKU-BANANA", "description": "Banana", "qty": float64(6), "unitPrice": 0.8},
			},
		}},
		{ID: "po-2", Type: docstore.DocTypePO, Fields: map[string]any{
			"poNumber": "PO456", "vendor": "Vendor B", "totalAmount": float64(500), "currency": "USD", "date": "2025-01-12",
		}},
		{ID: "po-3", Type: docstore.DocTypePO, Fields: map[string]any{
			"poNumber": "PO789", "vendor": "Vendor A", "totalAmount": float64(800), "date": "2025-01-15",
		}},
		{ID: "inv-1", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-001", "poNumber": "PO123", "vendor": "Vendor A",
			"companyName": "Vendor A Inc.", "totalAmount": float64(1234), "currency": "USD", "date": "2025-01-14",
			"lineItems": []any{
				map[string]any{"sku": "SKU-APPLE", "description": "Apple Fuji Red", "qty": float64(14), "unitPrice": 1.2},
				map[string]any{"sku": "SKU-BANANA", "description": "Banana", "qty": float64(5), "unitPrice": 0.8},
			},
		}},
		{ID: "inv-2", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-002", "poNumber": "PO456", "vendor": "Vendor B",
			"companyName": "Vendor B Ltd.", "totalAmount": float64(500), "date": "2025-01-16",
		}},
		{ID: "inv-3", Type: docstore.DocTypeINV, Fields: map[string]any{
			"invoiceNumber": "INV-003", "poNumber": "PO123", "vendor": "Vendor A",
			"companyName": "Vendor A Inc.", "totalAmount": float64(1200), "date": "2025-01-18",
		}},
		{ID: "grn-1", Type: docstore.DocTypeGRN, Fields: map[string]any{
			"grnNumber": "GRN-001", "poNumber": "PO123", "invoiceNumber": "INV-001",
			"description": "Goods received", "date": "2025-01-13",
			"lineItems": []any{
				map[string]any{"sku": "SKU-APPLE", "description": "Fuji Red", "qty": float64(14)},
				map[string]any{"sku": "SKU-BANANA", "description": "Banana", "qty": float64(5)},
			},
		}},
		{ID: "grn-2", Type: docstore.DocTypeGRN, Fields: map[string]any{
			"grnNumber": "GRN-002", "poNumber": "PO456", "invoiceNumber": "INV-002", "date": "2025-01-17",
		}},
		{ID: "grn-3", Type: docstore.DocTypeGRN, Fields: map[string]any{
			"grnNumber": "GRN-003", "poNumber": "PO123", "date": "2025-01-19",
		}},
		{ID: "do-1", Type: docstore.DocTypeDO, Fields: map[string]any{
			"doNumber": "DO-001", "poNumber": "PO123", "invoiceNumber": "INV-001", "date": "2025-01-14",
			"lineItems": []any{
				map[string]any{"sku": "SKU-APPLE", "qty": float64(14)},
				map[string]any{"sku": "SKU-BANANA", "qty": float64(5)},
			},
		}},
		{ID: "do-2", Type: docstore.DocTypeDO, Fields: map[string]any{
			"doNumber": "DO-002", "poNumber": "PO456", "date": "2025-01-17",
		}},
		{ID: "cn-1", Type: docstore.DocTypeCN, Fields: map[string]any{
			"creditNoteNumber": "CN-001", "invoiceNumber": "INV-001", "poNumber": "PO123",
			"totalAmount": float64(50), "reason": "Price adjustment", "date": "2025-01-20",
		}},
		{ID: "cn-2", Type: docstore.DocTypeCN, Fields: map[string]any{
			"creditNoteNumber": "CN-002", "invoiceNumber": "INV-003", "poNumber": "PO123",
			"totalAmount": float64(34), "date": "2025-01-22",
		}},
		{ID: "bom-1", Type: docstore.DocTypeBOM, Fields: map[string]any{
			"bomNumber": "BOM-001", "poNumber": "PO123", "sku": "SKU-APPLE", "description": "Apple kit",
		}},
		{ID: "bom-2", Type: docstore.DocTypeBOM, Fields: map[string]any{
			"bomNumber": "BOM-002", "poNumber": "PO123", "sku": "SKU-BANANA", "description": "Banana kit",
		}},
	}
	for _, doc := range docs {
		store.AddDocument(doc)
	}

	queues := []*docstore.Queue{
		{ID: "q-po-1", Name: "PO Queue 1", DocType: docstore.DocTypePO, DocumentIDs: []string{"po-1", "po-2", "po-3"}},
		{ID: "q-inv-1", Name: "Invoice Queue 1", DocType: docstore.DocTypeINV, DocumentIDs: []string{"inv-1", "inv-2"}},
		{ID: "q-inv-2", Name: "Invoice Queue 2", DocType: docstore.DocTypeINV, DocumentIDs: []string{"inv-3"}},
		{ID: "q-grn-1", Name: "GRN Queue 1", DocType: docstore.DocTypeGRN, DocumentIDs: []string{"grn-1", "grn-2", "grn-3"}},
		{ID: "q-do-1", Name: "DO Queue 1", DocType: docstore.DocTypeDO, DocumentIDs: []string{"do-1", "do-2"}},
		{ID: "q-cn-1", Name: "Credit Note Queue 1", DocType: docstore.DocTypeCN, DocumentIDs: []string{"cn-1", "cn-2"}},
		{ID: "q-bom-1", Name: "BOM Queue 1", DocType: docstore.DocTypeBOM, DocumentIDs: []string{"bom-1", "bom-2"}},
	}
	for _, queue := range queues {
		store.AddQueue(queue)
	}

	return store
}

// fixtureRule mirrors the PO-anchored rule exercised by most tests: the PO
// group fans out to invoices, goods receipts, delivery orders and BOMs, and
// invoices chain onward to goods receipts and credit notes.
func fixtureRule() *Rule {
	return &Rule{
		ID:            "rule-1",
		Name:          "PO-based reconciliation",
		AnchorGroupID: "g-po",
		Groups: []Group{
			{ID: "g-po", Name: "PO", QueueIDs: []string{"q-po-1"}},
			{ID: "g-inv", Name: "Invoice", QueueIDs: []string{"q-inv-1", "q-inv-2"}},
			{ID: "g-grn", Name: "GRN", QueueIDs: []string{"q-grn-1"}},
			{ID: "g-do", Name: "DO", QueueIDs: []string{"q-do-1"}},
			{ID: "g-cn", Name: "Credit Note", QueueIDs: []string{"q-cn-1"}},
			{ID: "g-bom", Name: "BOM", QueueIDs: []string{"q-bom-1"}},
		},
		MatchingLogics: []MatchingLogic{{
			ID:            "match-1",
			Name:          "By PO number",
			AnchorGroupID: "g-po",
			Links: []MatchLink{
				{FromGroupID: "g-po", ToGroupID: "g-inv", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
					{IdentifierFields: []FieldPair{
						{FromField: "poNumber", ToField: "poNumber"},
						{FromField: "vendor", ToField: "companyName"},
					}},
				}},
				{FromGroupID: "g-po", ToGroupID: "g-grn", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
				}},
				{FromGroupID: "g-po", ToGroupID: "g-do", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
				}},
				{FromGroupID: "g-inv", ToGroupID: "g-grn", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "invoiceNumber", ToField: "invoiceNumber"}}},
				}},
				{FromGroupID: "g-inv", ToGroupID: "g-cn", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "invoiceNumber", ToField: "invoiceNumber"}}},
				}},
				{FromGroupID: "g-po", ToGroupID: "g-bom", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
				}},
			},
		}},
		ComparisonLogics: []ComparisonLogic{
			{
				ID:       "comp-1",
				Name:     "GRN vs PO quantities",
				GroupIDs: []string{"g-grn", "g-po"},
				CompareFields: []CompareField{
					{GroupID: "g-grn", FieldPath: "lineItems[].qty", Label: "GRN Qty"},
					{GroupID: "g-po", FieldPath: "lineItems[].qty", Label: "PO Qty"},
				},
			},
			{
				ID:       "comp-2",
				Name:     "Amounts",
				GroupIDs: []string{"g-po", "g-inv", "g-cn"},
				CompareFields: []CompareField{
					{GroupID: "g-po", FieldPath: "totalAmount", Label: "PO Total"},
					{GroupID: "g-inv", FieldPath: "totalAmount", Label: "Invoice Total"},
					{GroupID: "g-cn", FieldPath: "totalAmount", Label: "CN Total"},
				},
			},
		},
	}
}
