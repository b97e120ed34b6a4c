package engine

import (
	"context"
	"fmt"

	"recon-engine/core/docstore"
	apperrors "recon-engine/core/errors"
	"recon-engine/core/fieldpath"
)

// ValidateRule checks a rule's structural integrity against the document
// store before it is accepted: declared references, homogeneous group
// types, acyclic link graphs, and parseable field paths. Anything caught
// here would otherwise surface as undefined behavior during set expansion.
func ValidateRule(ctx context.Context, store docstore.Store, rule *Rule) error {
	if len(rule.Groups) == 0 {
		return apperrors.NewRuleInconsistencyError(rule.ID, "rule declares no groups")
	}

	groupTypes := make(map[string]docstore.DocType, len(rule.Groups))
	for _, group := range rule.Groups {
		if _, dup := groupTypes[group.ID]; dup {
			return apperrors.NewRuleInconsistencyError(rule.ID, fmt.Sprintf("duplicate group id %s", group.ID))
		}
		docType, err := validateGroup(ctx, store, rule.ID, group)
		if err != nil {
			return err
		}
		groupTypes[group.ID] = docType
	}

	if _, ok := groupTypes[rule.AnchorGroupID]; !ok {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("anchor group %s is not declared on the rule", rule.AnchorGroupID))
	}

	for i := range rule.MatchingLogics {
		if err := validateMatchingLogic(rule, &rule.MatchingLogics[i], groupTypes); err != nil {
			return err
		}
	}

	for i := range rule.ComparisonLogics {
		if err := validateComparisonLogic(rule, &rule.ComparisonLogics[i], groupTypes); err != nil {
			return err
		}
	}

	return nil
}

// validateGroup checks queue membership and returns the group's effective
// document type, taken from its first queue. Mixed-type groups are rejected
// rather than left to produce undefined field resolution.
func validateGroup(ctx context.Context, store docstore.Store, ruleID string, group Group) (docstore.DocType, error) {
	if len(group.QueueIDs) == 0 {
		return "", apperrors.NewRuleInconsistencyError(ruleID, fmt.Sprintf("group %s declares no queues", group.ID))
	}

	var docType docstore.DocType
	for i, queueID := range group.QueueIDs {
		queue, err := store.GetQueue(ctx, queueID)
		if err != nil {
			return "", err
		}
		if i == 0 {
			docType = queue.DocType
			continue
		}
		if queue.DocType != docType {
			return "", apperrors.NewRuleInconsistencyError(ruleID,
				fmt.Sprintf("group %s mixes document types %s and %s", group.ID, docType, queue.DocType))
		}
	}
	return docType, nil
}

func validateMatchingLogic(rule *Rule, logic *MatchingLogic, groupTypes map[string]docstore.DocType) error {
	if logic.AnchorGroupID != rule.AnchorGroupID {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("matching logic %s anchors on %s, rule anchors on %s",
				logic.ID, logic.AnchorGroupID, rule.AnchorGroupID))
	}

	seen := make(map[LinkKey]bool, len(logic.Links))
	for _, link := range logic.Links {
		if _, ok := groupTypes[link.FromGroupID]; !ok {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("matching logic %s links from undeclared group %s", logic.ID, link.FromGroupID))
		}
		if _, ok := groupTypes[link.ToGroupID]; !ok {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("matching logic %s links to undeclared group %s", logic.ID, link.ToGroupID))
		}
		if link.FromGroupID == link.ToGroupID {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("matching logic %s links group %s to itself", logic.ID, link.FromGroupID))
		}
		if seen[link.Key()] {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("matching logic %s declares link %s twice", logic.ID, link.Key()))
		}
		seen[link.Key()] = true

		if len(link.CriteriaVariations) == 0 {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("link %s declares no criteria variations", link.Key()))
		}
		for _, variation := range link.CriteriaVariations {
			if len(variation.IdentifierFields) == 0 {
				return apperrors.NewRuleInconsistencyError(rule.ID,
					fmt.Sprintf("link %s declares an empty criteria variation", link.Key()))
			}
			for _, pair := range variation.IdentifierFields {
				if _, err := fieldpath.Parse(pair.FromField); err != nil {
					return err
				}
				if _, err := fieldpath.Parse(pair.ToField); err != nil {
					return err
				}
			}
		}
	}

	if cycle := findCycle(logic); cycle != "" {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("matching logic %s has a cycle reachable from the anchor through %s", logic.ID, cycle))
	}

	return nil
}

func validateComparisonLogic(rule *Rule, logic *ComparisonLogic, groupTypes map[string]docstore.DocType) error {
	if len(logic.GroupIDs) < 2 {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("comparison logic %s compares fewer than two groups", logic.ID))
	}

	declared := make(map[string]bool, len(logic.GroupIDs))
	for _, groupID := range logic.GroupIDs {
		if _, ok := groupTypes[groupID]; !ok {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("comparison logic %s references undeclared group %s", logic.ID, groupID))
		}
		declared[groupID] = true
	}

	if len(logic.CompareFields) == 0 {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("comparison logic %s selects no fields", logic.ID))
	}

	expanding := 0
	for _, field := range logic.CompareFields {
		if !declared[field.GroupID] {
			return apperrors.NewRuleInconsistencyError(rule.ID,
				fmt.Sprintf("comparison logic %s selects a field of group %s outside its group list",
					logic.ID, field.GroupID))
		}
		path, err := fieldpath.Parse(field.FieldPath)
		if err != nil {
			return err
		}
		if path.Expands() {
			expanding++
		}
	}

	// Row alignment is either line-item (every path expands) or whole-
	// document (no path expands); a mix has no defined row key.
	if expanding != 0 && expanding != len(logic.CompareFields) {
		return apperrors.NewRuleInconsistencyError(rule.ID,
			fmt.Sprintf("comparison logic %s mixes line-item and whole-document fields", logic.ID))
	}

	return nil
}

// findCycle walks the link graph from the anchor and returns the key of a
// link closing a cycle, or "" when the reachable graph is acyclic. The set
// builder's fixed-point expansion assumes acyclicity, so this runs at rule
// load time.
func findCycle(logic *MatchingLogic) string {
	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := make(map[string]int)

	var visit func(groupID string) string
	visit = func(groupID string) string {
		state[groupID] = visiting
		for _, link := range logic.Links {
			if link.FromGroupID != groupID {
				continue
			}
			switch state[link.ToGroupID] {
			case visiting:
				return link.Key().String()
			case unvisited:
				if cycle := visit(link.ToGroupID); cycle != "" {
					return cycle
				}
			}
		}
		state[groupID] = done
		return ""
	}

	return visit(logic.AnchorGroupID)
}
