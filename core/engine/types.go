package engine

import (
	"encoding/json"
	"fmt"
	"strings"

	"recon-engine/core/docstore"
	"recon-engine/core/fieldpath"
)

// Group is a named union of queues; the node type in the matching graph.
// All queues in a group share one document type (enforced at validation).
type Group struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	QueueIDs []string `json:"queueIds"`
}

// FieldPair is one equality condition: the from-side field against the
// to-side field.
type FieldPair struct {
	FromField string `json:"fromField"`
	ToField   string `json:"toField"`
}

// CriteriaVariation is one alternative set of field-equality conditions for
// a link. A document pair matches the variation iff every pair's resolved
// values are present and equal.
type CriteriaVariation struct {
	IdentifierFields []FieldPair `json:"identifierFields"`
}

// MatchLink is a directed, criteria-bearing edge between two groups.
// Exactly one of its variations is selected per set at evaluation time.
type MatchLink struct {
	FromGroupID        string              `json:"fromGroupId"`
	ToGroupID          string              `json:"toGroupId"`
	CriteriaVariations []CriteriaVariation `json:"criteriaVariations"`
}

// Key returns the link's canonical identity within a matching logic.
func (l MatchLink) Key() LinkKey {
	return LinkKey{FromGroupID: l.FromGroupID, ToGroupID: l.ToGroupID}
}

// MatchingLogic is an anchor group plus a link graph defining how a set is
// expanded from one anchor document.
type MatchingLogic struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	AnchorGroupID string      `json:"anchorGroupId"`
	Links         []MatchLink `json:"links"`
}

// Link returns the link with the given key, if declared.
func (m *MatchingLogic) Link(key LinkKey) (*MatchLink, bool) {
	for i := range m.Links {
		if m.Links[i].Key() == key {
			return &m.Links[i], true
		}
	}
	return nil, false
}

// CompareField selects one field of one group for cross-checking.
// An empty label defaults to the group id.
type CompareField struct {
	GroupID   string `json:"groupId"`
	FieldPath string `json:"fieldPath"`
	Label     string `json:"label,omitempty"`
}

// EffectiveLabel returns the label under which the field's value is stored
// in a comparison row.
func (f CompareField) EffectiveLabel() string {
	if f.Label != "" {
		return f.Label
	}
	return f.GroupID
}

// ComparisonLogic declares which groups to compare and on which fields.
// The groups need not be linked by the matching logic.
type ComparisonLogic struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	GroupIDs      []string       `json:"groupIds"`
	CompareFields []CompareField `json:"compareFields"`
}

// Rule is a complete reconciliation rule: groups, anchor, matching logics,
// and comparison logics.
type Rule struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	Groups           []Group           `json:"groups"`
	AnchorGroupID    string            `json:"anchorGroupId"`
	MatchingLogics   []MatchingLogic   `json:"matchingLogics"`
	ComparisonLogics []ComparisonLogic `json:"comparisonLogics"`
}

// Group returns the declared group with the given id.
func (r *Rule) Group(id string) (*Group, bool) {
	for i := range r.Groups {
		if r.Groups[i].ID == id {
			return &r.Groups[i], true
		}
	}
	return nil, false
}

// MatchingLogic returns the declared matching logic with the given id.
func (r *Rule) MatchingLogic(id string) (*MatchingLogic, bool) {
	for i := range r.MatchingLogics {
		if r.MatchingLogics[i].ID == id {
			return &r.MatchingLogics[i], true
		}
	}
	return nil, false
}

// ComparisonLogic returns the declared comparison logic with the given id.
func (r *Rule) ComparisonLogic(id string) (*ComparisonLogic, bool) {
	for i := range r.ComparisonLogics {
		if r.ComparisonLogics[i].ID == id {
			return &r.ComparisonLogics[i], true
		}
	}
	return nil, false
}

// LinkKey canonically identifies a link by its group pair. A structured key
// avoids the collision bugs of concatenated string keys when group ids
// themselves contain separators.
type LinkKey struct {
	FromGroupID string
	ToGroupID   string
}

// String renders the key for logs and wire maps.
func (k LinkKey) String() string {
	return k.FromGroupID + "->" + k.ToGroupID
}

// ParseLinkKey parses the wire form produced by LinkKey.String.
func ParseLinkKey(s string) (LinkKey, error) {
	from, to, ok := strings.Cut(s, "->")
	if !ok || from == "" || to == "" {
		return LinkKey{}, fmt.Errorf("invalid link key %q", s)
	}
	return LinkKey{FromGroupID: from, ToGroupID: to}, nil
}

// LinkSelections maps each link to its selected criteria variation index.
// Links without an entry use variation 0.
type LinkSelections map[LinkKey]int

// MarshalJSON encodes selections as an object keyed by the link's wire key.
func (s LinkSelections) MarshalJSON() ([]byte, error) {
	out := make(map[string]int, len(s))
	for key, idx := range s {
		out[key.String()] = idx
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the wire object form.
func (s *LinkSelections) UnmarshalJSON(data []byte) error {
	var raw map[string]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(LinkSelections, len(raw))
	for keyStr, idx := range raw {
		key, err := ParseLinkKey(keyStr)
		if err != nil {
			return err
		}
		out[key] = idx
	}
	*s = out
	return nil
}

// Status is the reconciliation verdict flag of a set.
type Status string

const (
	// StatusPending marks a set awaiting a verdict.
	StatusPending Status = "pending"
	// StatusReconciled is reserved for an automatic verdict issued outside
	// the engine's mutation surface.
	StatusReconciled Status = "reconciled"
	// StatusRejected marks a set rejected by an operator.
	StatusRejected Status = "rejected"
	// StatusForceReconciled marks a set reconciled by operator override.
	StatusForceReconciled Status = "force_reconciled"
)

// IsValid reports whether the status is one of the four known states.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusReconciled, StatusRejected, StatusForceReconciled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transition.
func (s Status) IsTerminal() bool {
	return s == StatusReconciled || s == StatusRejected || s == StatusForceReconciled
}

// CanTransitionTo reports whether the engine's mutation surface permits the
// transition. Only pending sets move, and only to the two operator verdicts;
// the reconciled state is issued elsewhere.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	return target == StatusRejected || target == StatusForceReconciled
}

// ReconSet is the materialized result of applying one matching logic to one
// anchor document: the per-group document clustering plus its verdict state
// and comparison outputs.
type ReconSet struct {
	ID              string            `json:"id"`
	RuleID          string            `json:"ruleId"`
	MatchingLogicID string            `json:"matchingLogicId"`
	AnchorDocID     string            `json:"anchorDocId"`
	AnchorDocType   docstore.DocType  `json:"anchorDocType"`
	// DocumentIDsByGroup holds ordered, de-duplicated document ids per group.
	DocumentIDsByGroup map[string][]string `json:"documentIdsByGroup"`
	Status             Status              `json:"status"`
	// LinkVariationSelections records the selected variation per link.
	LinkVariationSelections LinkSelections `json:"linkVariationSelections,omitempty"`
	// ManualGroupIDs marks groups whose membership was overridden by hand.
	// A manual override is never undone by upstream recomputation.
	ManualGroupIDs []string `json:"manualGroupIds,omitempty"`
	// ComparisonResults holds the latest evaluation per comparison logic.
	ComparisonResults []ComparisonResult `json:"comparisonResults,omitempty"`
}

// VariationFor returns the selected variation index for a link (0 default).
func (s *ReconSet) VariationFor(key LinkKey) int {
	if s.LinkVariationSelections == nil {
		return 0
	}
	return s.LinkVariationSelections[key]
}

// IsManual reports whether the group's membership is a manual override.
func (s *ReconSet) IsManual(groupID string) bool {
	for _, id := range s.ManualGroupIDs {
		if id == groupID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy. Mutating operations build the new state on a
// clone and commit it whole, so a failed operation leaves the old set intact.
func (s *ReconSet) Clone() *ReconSet {
	out := *s

	out.DocumentIDsByGroup = make(map[string][]string, len(s.DocumentIDsByGroup))
	for groupID, ids := range s.DocumentIDsByGroup {
		copied := make([]string, len(ids))
		copy(copied, ids)
		out.DocumentIDsByGroup[groupID] = copied
	}

	if s.LinkVariationSelections != nil {
		out.LinkVariationSelections = make(LinkSelections, len(s.LinkVariationSelections))
		for key, idx := range s.LinkVariationSelections {
			out.LinkVariationSelections[key] = idx
		}
	}

	if s.ManualGroupIDs != nil {
		out.ManualGroupIDs = make([]string, len(s.ManualGroupIDs))
		copy(out.ManualGroupIDs, s.ManualGroupIDs)
	}

	if s.ComparisonResults != nil {
		out.ComparisonResults = make([]ComparisonResult, len(s.ComparisonResults))
		copy(out.ComparisonResults, s.ComparisonResults)
	}

	return &out
}

// ComparisonRow is one aligned row of a comparison: a key, the labeled
// values contributed per compare field, and the consistency verdict.
type ComparisonRow struct {
	Key          string                     `json:"key"`
	Values       map[string]fieldpath.Value `json:"values"`
	IsConsistent bool                       `json:"isConsistent"`
}

// ComparisonResult is the outcome of evaluating one comparison logic
// against a set.
type ComparisonResult struct {
	ComparisonLogicID string          `json:"comparisonLogicId"`
	Rows              []ComparisonRow `json:"rows"`
}
