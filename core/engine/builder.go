package engine

import (
	"context"
	"fmt"

	"recon-engine/core/docstore"
	apperrors "recon-engine/core/errors"
)

// BuildSet expands one anchor document into a complete reconciliation set
// under the given matching logic. Every declared group gets an entry; groups
// the link graph never reaches stay empty. The returned set is pending, has
// no comparison results, and carries no id (the registry assigns one).
func BuildSet(ctx context.Context, store docstore.Store, rule *Rule, logic *MatchingLogic, anchorDocID string) (*ReconSet, error) {
	anchorDoc, err := store.GetDocument(ctx, anchorDocID)
	if err != nil {
		return nil, err
	}

	set := &ReconSet{
		RuleID:                  rule.ID,
		MatchingLogicID:         logic.ID,
		AnchorDocID:             anchorDocID,
		AnchorDocType:           anchorDoc.Type,
		DocumentIDsByGroup:      make(map[string][]string, len(rule.Groups)),
		Status:                  StatusPending,
		LinkVariationSelections: make(LinkSelections, len(logic.Links)),
	}
	for _, group := range rule.Groups {
		set.DocumentIDsByGroup[group.ID] = []string{}
	}
	set.DocumentIDsByGroup[logic.AnchorGroupID] = []string{anchorDocID}
	for _, link := range logic.Links {
		set.LinkVariationSelections[link.Key()] = 0
	}

	targets := make(map[string]bool, len(rule.Groups))
	for _, group := range rule.Groups {
		if group.ID != logic.AnchorGroupID {
			targets[group.ID] = true
		}
	}

	if err := expand(ctx, store, rule, logic, set, targets); err != nil {
		return nil, err
	}
	return set, nil
}

// RecomputeLink re-evaluates one link under a newly selected criteria
// variation and cascades the change through the downstream sub-graph only.
// Groups not downstream of the link's to group are untouched, and manual
// overrides other than the link's own target survive. The input set is not
// modified; the updated set is returned as a new value.
func RecomputeLink(ctx context.Context, store docstore.Store, rule *Rule, logic *MatchingLogic, set *ReconSet, key LinkKey, variationIndex int) (*ReconSet, error) {
	link, ok := logic.Link(key)
	if !ok {
		return nil, apperrors.NewNotFoundError("link", key.String())
	}
	if variationIndex < 0 || variationIndex >= len(link.CriteriaVariations) {
		return nil, &apperrors.VariationIndexError{
			FromGroupID: key.FromGroupID,
			ToGroupID:   key.ToGroupID,
			Index:       variationIndex,
			Count:       len(link.CriteriaVariations),
		}
	}

	next := set.Clone()
	if next.LinkVariationSelections == nil {
		next.LinkVariationSelections = make(LinkSelections)
	}
	next.LinkVariationSelections[key] = variationIndex

	// The link's own target is recomputed even if it was manually edited:
	// selecting a variation is an explicit request to re-match that link.
	next.ManualGroupIDs = removeString(next.ManualGroupIDs, key.ToGroupID)

	targets := map[string]bool{key.ToGroupID: true}
	for _, groupID := range downstreamOf(logic, key.ToGroupID) {
		if !next.IsManual(groupID) {
			targets[groupID] = true
		}
	}

	if err := expand(ctx, store, rule, logic, next, targets); err != nil {
		return nil, err
	}

	// Membership changed, so previous comparison outputs no longer describe
	// this set.
	next.ComparisonResults = nil
	return next, nil
}

// ApplyManualOverride replaces one group's membership by hand, bypassing the
// matcher. The override is recorded so later upstream recomputations leave
// it alone; only a recompute of a link targeting this group overwrites it.
func ApplyManualOverride(rule *Rule, set *ReconSet, groupID string, documentIDs []string) (*ReconSet, error) {
	if _, ok := rule.Group(groupID); !ok {
		return nil, apperrors.NewNotFoundError("group", groupID)
	}

	next := set.Clone()
	ids := dedupe(documentIDs)
	next.DocumentIDsByGroup[groupID] = ids
	if !next.IsManual(groupID) {
		next.ManualGroupIDs = append(next.ManualGroupIDs, groupID)
	}
	next.ComparisonResults = nil
	return next, nil
}

// expand runs the fixed-point traversal over the link graph, filling every
// target group from its in-links. Target membership is rebuilt from scratch;
// non-target groups keep their current membership and act as fixed sources.
// A link is processed once its from group holds documents, and re-processed
// whenever that group grows, so multi-hop fan-in settles to the full union.
func expand(ctx context.Context, store docstore.Store, rule *Rule, logic *MatchingLogic, set *ReconSet, targets map[string]bool) error {
	for groupID := range targets {
		set.DocumentIDsByGroup[groupID] = []string{}
	}

	for changed := true; changed; {
		changed = false
		for i := range logic.Links {
			link := &logic.Links[i]
			if !targets[link.ToGroupID] {
				continue
			}
			fromIDs := set.DocumentIDsByGroup[link.FromGroupID]
			if len(fromIDs) == 0 {
				continue
			}

			matched, err := matchLink(ctx, store, rule, set, link, fromIDs)
			if err != nil {
				return err
			}

			merged, grew := union(set.DocumentIDsByGroup[link.ToGroupID], matched)
			if grew {
				set.DocumentIDsByGroup[link.ToGroupID] = merged
				changed = true
			}
		}
	}
	return nil
}

// matchLink evaluates one link for every current from-side document against
// the to group's full queue pool, returning the de-duplicated union of
// matches in first-seen order.
func matchLink(ctx context.Context, store docstore.Store, rule *Rule, set *ReconSet, link *MatchLink, fromIDs []string) ([]string, error) {
	variation := link.CriteriaVariations[set.VariationFor(link.Key())]

	pool, err := groupPool(ctx, store, rule, link.ToGroupID)
	if err != nil {
		return nil, err
	}

	var matched []string
	seen := make(map[string]bool)
	for _, fromID := range fromIDs {
		fromDoc, err := store.GetDocument(ctx, fromID)
		if err != nil {
			return nil, err
		}
		hits, err := MatchCandidates(fromDoc, pool, variation)
		if err != nil {
			return nil, err
		}
		for _, hit := range hits {
			if !seen[hit.ID] {
				seen[hit.ID] = true
				matched = append(matched, hit.ID)
			}
		}
	}
	return matched, nil
}

// groupPool loads the full member-document pool of a group: the union of
// its queues' members, duplicates removed, first-seen order kept.
func groupPool(ctx context.Context, store docstore.Store, rule *Rule, groupID string) ([]*docstore.Document, error) {
	group, ok := rule.Group(groupID)
	if !ok {
		return nil, apperrors.NewRuleInconsistencyError(rule.ID, fmt.Sprintf("group %s is not declared on the rule", groupID))
	}

	var pool []*docstore.Document
	seen := make(map[string]bool)
	for _, queueID := range group.QueueIDs {
		members, err := store.QueueMembers(ctx, queueID)
		if err != nil {
			return nil, err
		}
		for _, docID := range members {
			if seen[docID] {
				continue
			}
			seen[docID] = true
			doc, err := store.GetDocument(ctx, docID)
			if err != nil {
				return nil, err
			}
			pool = append(pool, doc)
		}
	}
	return pool, nil
}

// downstreamOf returns every group reachable from the given group through
// the logic's links, excluding the group itself.
func downstreamOf(logic *MatchingLogic, groupID string) []string {
	var out []string
	seen := map[string]bool{groupID: true}
	frontier := []string{groupID}
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		for _, link := range logic.Links {
			if link.FromGroupID != current || seen[link.ToGroupID] {
				continue
			}
			seen[link.ToGroupID] = true
			out = append(out, link.ToGroupID)
			frontier = append(frontier, link.ToGroupID)
		}
	}
	return out
}

// union merges additions into existing, keeping first-seen order. The
// second return reports whether anything new arrived.
func union(existing, additions []string) ([]string, bool) {
	seen := make(map[string]bool, len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	grew := false
	for _, id := range additions {
		if !seen[id] {
			seen[id] = true
			existing = append(existing, id)
			grew = true
		}
	}
	return existing, grew
}

func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func removeString(list []string, target string) []string {
	out := list[:0]
	for _, item := range list {
		if item != target {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
