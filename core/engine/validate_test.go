package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recon-engine/core/docstore"
	apperrors "recon-engine/core/errors"
)

func TestValidateRule_Valid(t *testing.T) {
	store := fixtureStore()
	require.NoError(t, ValidateRule(context.Background(), store, fixtureRule()))
}

func TestValidateRule_Inconsistencies(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(rule *Rule)
		wantErr error
	}{
		{
			name:    "no groups",
			mutate:  func(rule *Rule) { rule.Groups = nil },
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name:    "anchor not declared",
			mutate:  func(rule *Rule) { rule.AnchorGroupID = "g-missing" },
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "duplicate group id",
			mutate: func(rule *Rule) {
				rule.Groups = append(rule.Groups, Group{ID: "g-po", Name: "PO again", QueueIDs: []string{"q-po-1"}})
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "group without queues",
			mutate: func(rule *Rule) {
				rule.Groups[0].QueueIDs = nil
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "mixed doc types in group",
			mutate: func(rule *Rule) {
				rule.Groups[1].QueueIDs = []string{"q-inv-1", "q-grn-1"}
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "matching logic anchor mismatch",
			mutate: func(rule *Rule) {
				rule.MatchingLogics[0].AnchorGroupID = "g-inv"
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "link from undeclared group",
			mutate: func(rule *Rule) {
				rule.MatchingLogics[0].Links[0].FromGroupID = "g-ghost"
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "duplicate link",
			mutate: func(rule *Rule) {
				links := rule.MatchingLogics[0].Links
				rule.MatchingLogics[0].Links = append(links, links[0])
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "link without variations",
			mutate: func(rule *Rule) {
				rule.MatchingLogics[0].Links[0].CriteriaVariations = nil
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "cycle reachable from anchor",
			mutate: func(rule *Rule) {
				rule.MatchingLogics[0].Links = append(rule.MatchingLogics[0].Links, MatchLink{
					FromGroupID: "g-grn",
					ToGroupID:   "g-po",
					CriteriaVariations: []CriteriaVariation{
						{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
					},
				})
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "malformed match field path",
			mutate: func(rule *Rule) {
				rule.MatchingLogics[0].Links[0].CriteriaVariations[0].IdentifierFields[0].ToField = "lineItems[]"
			},
			wantErr: apperrors.ErrMalformedFieldPath,
		},
		{
			name: "comparison with one group",
			mutate: func(rule *Rule) {
				rule.ComparisonLogics[0].GroupIDs = []string{"g-grn"}
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "comparison field outside group list",
			mutate: func(rule *Rule) {
				rule.ComparisonLogics[0].CompareFields[0].GroupID = "g-do"
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "comparison mixes line-item and scalar fields",
			mutate: func(rule *Rule) {
				rule.ComparisonLogics[0].CompareFields[1].FieldPath = "totalAmount"
			},
			wantErr: apperrors.ErrRuleInconsistency,
		},
		{
			name: "malformed comparison path",
			mutate: func(rule *Rule) {
				rule.ComparisonLogics[1].CompareFields[0].FieldPath = ""
			},
			wantErr: apperrors.ErrMalformedFieldPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := fixtureRule()
			tt.mutate(rule)
			err := ValidateRule(context.Background(), fixtureStore(), rule)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateRule_UnknownQueue(t *testing.T) {
	rule := fixtureRule()
	rule.Groups[0].QueueIDs = []string{"q-nope"}

	err := ValidateRule(context.Background(), fixtureStore(), rule)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusRejected))
	assert.True(t, StatusPending.CanTransitionTo(StatusForceReconciled))
	// The automatic verdict is not reachable through the mutation surface.
	assert.False(t, StatusPending.CanTransitionTo(StatusReconciled))

	for _, terminal := range []Status{StatusReconciled, StatusRejected, StatusForceReconciled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range []Status{StatusPending, StatusReconciled, StatusRejected, StatusForceReconciled} {
			assert.False(t, terminal.CanTransitionTo(target))
		}
	}
}

func TestValidateRule_SecondaryAnchorRule(t *testing.T) {
	// Invoice-anchored rule, mirroring the alternative production setup.
	rule := &Rule{
		ID:            "rule-2",
		Name:          "Invoice anchor",
		AnchorGroupID: "g-inv-2",
		Groups: []Group{
			{ID: "g-inv-2", Name: "Invoice", QueueIDs: []string{"q-inv-1", "q-inv-2"}},
			{ID: "g-po-2", Name: "PO", QueueIDs: []string{"q-po-1"}},
		},
		MatchingLogics: []MatchingLogic{{
			ID:            "match-2",
			Name:          "Invoice to PO",
			AnchorGroupID: "g-inv-2",
			Links: []MatchLink{
				{FromGroupID: "g-inv-2", ToGroupID: "g-po-2", CriteriaVariations: []CriteriaVariation{
					{IdentifierFields: []FieldPair{{FromField: "poNumber", ToField: "poNumber"}}},
				}},
			},
		}},
	}

	require.NoError(t, ValidateRule(context.Background(), fixtureStore(), rule))

	set, err := BuildSet(context.Background(), fixtureStore(), rule, &rule.MatchingLogics[0], "inv-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"po-1"}, set.DocumentIDsByGroup["g-po-2"])
	assert.Equal(t, docstore.DocTypeINV, set.AnchorDocType)
}
