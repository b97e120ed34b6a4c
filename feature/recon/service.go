package recon

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"recon-engine/core/docstore"
	"recon-engine/core/engine"
	apperrors "recon-engine/core/errors"
)

// Service owns the registered rules and the live reconciliation sets. It is
// the single mutation surface over both; handlers and commands share one
// injected instance.
type Service struct {
	store  docstore.Store
	logger *zap.Logger

	mu       sync.RWMutex
	rules    map[string]*engine.Rule
	sets     map[string]*engine.ReconSet
	setOrder map[string][]string // rule id -> set ids in creation order
	setLocks map[string]*sync.Mutex
}

// NewService creates a new reconciliation service.
func NewService(store docstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		logger:   logger,
		rules:    make(map[string]*engine.Rule),
		sets:     make(map[string]*engine.ReconSet),
		setOrder: make(map[string][]string),
		setLocks: make(map[string]*sync.Mutex),
	}
}

// AddRule validates and registers a rule. A rule without an id gets one
// assigned. Registering an id twice overwrites the previous rule; its
// existing sets keep working against the snapshot they were built from.
func (s *Service) AddRule(ctx context.Context, rule *engine.Rule) (*engine.Rule, error) {
	if rule.ID == "" {
		rule.ID = "rule-" + uuid.NewString()
	}

	if err := engine.ValidateRule(ctx, s.store, rule); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.rules[rule.ID] = rule

	s.logger.Info("Rule registered",
		zap.String("rule_id", rule.ID),
		zap.String("name", rule.Name),
		zap.Int("groups", len(rule.Groups)),
	)
	return rule, nil
}

// GetRule returns a registered rule by id.
func (s *Service) GetRule(id string) (*engine.Rule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rule, ok := s.rules[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("rule", id)
	}
	return rule, nil
}

// ListRules returns every registered rule, ordered by id.
func (s *Service) ListRules() []*engine.Rule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*engine.Rule, 0, len(s.rules))
	for _, rule := range s.rules {
		out = append(out, rule)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreateSet builds one reconciliation set from an anchor document under the
// given matching logic and registers it.
func (s *Service) CreateSet(ctx context.Context, ruleID, matchingLogicID, anchorDocID string) (*engine.ReconSet, error) {
	rule, err := s.GetRule(ruleID)
	if err != nil {
		return nil, err
	}
	logic, ok := rule.MatchingLogic(matchingLogicID)
	if !ok {
		return nil, apperrors.NewNotFoundError("matching logic", matchingLogicID)
	}

	set, err := engine.BuildSet(ctx, s.store, rule, logic, anchorDocID)
	if err != nil {
		return nil, err
	}
	set.ID = "set-" + uuid.NewString()

	s.mu.Lock()
	s.sets[set.ID] = set
	s.setOrder[ruleID] = append(s.setOrder[ruleID], set.ID)
	s.setLocks[set.ID] = &sync.Mutex{}
	s.mu.Unlock()

	s.logger.Info("Set created",
		zap.String("set_id", set.ID),
		zap.String("rule_id", ruleID),
		zap.String("anchor_doc_id", anchorDocID),
	)
	return set, nil
}

// GenerateSets builds one set per document currently in the anchor group's
// queues. The first build failure aborts generation; already-built sets stay
// registered.
func (s *Service) GenerateSets(ctx context.Context, ruleID, matchingLogicID string) ([]*engine.ReconSet, error) {
	rule, err := s.GetRule(ruleID)
	if err != nil {
		return nil, err
	}
	logic, ok := rule.MatchingLogic(matchingLogicID)
	if !ok {
		return nil, apperrors.NewNotFoundError("matching logic", matchingLogicID)
	}
	anchorGroup, ok := rule.Group(logic.AnchorGroupID)
	if !ok {
		return nil, apperrors.NewRuleInconsistencyError(rule.ID, "anchor group is not declared on the rule")
	}

	var sets []*engine.ReconSet
	seen := make(map[string]bool)
	for _, queueID := range anchorGroup.QueueIDs {
		members, err := s.store.QueueMembers(ctx, queueID)
		if err != nil {
			return sets, err
		}
		for _, anchorDocID := range members {
			if seen[anchorDocID] {
				continue
			}
			seen[anchorDocID] = true

			set, err := s.CreateSet(ctx, ruleID, matchingLogicID, anchorDocID)
			if err != nil {
				return sets, err
			}
			sets = append(sets, set)
		}
	}
	return sets, nil
}

// ListSets returns the rule's sets in creation order.
func (s *Service) ListSets(ruleID string) ([]*engine.ReconSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.rules[ruleID]; !ok {
		return nil, apperrors.NewNotFoundError("rule", ruleID)
	}
	ids := s.setOrder[ruleID]
	out := make([]*engine.ReconSet, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.sets[id])
	}
	return out, nil
}

// GetSet returns a set by id.
func (s *Service) GetSet(setID string) (*engine.ReconSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set, ok := s.sets[setID]
	if !ok {
		return nil, apperrors.NewNotFoundError("set", setID)
	}
	return set, nil
}

// SelectVariation switches one link of a set to another criteria variation
// and recomputes the affected sub-graph. The set is replaced atomically; a
// failed recompute leaves it unchanged.
func (s *Service) SelectVariation(ctx context.Context, setID string, key engine.LinkKey, variationIndex int) (*engine.ReconSet, error) {
	unlock, err := s.lockSet(setID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set, rule, logic, err := s.setContext(setID)
	if err != nil {
		return nil, err
	}

	next, err := engine.RecomputeLink(ctx, s.store, rule, logic, set, key, variationIndex)
	if err != nil {
		return nil, err
	}
	s.commitSet(next)

	s.logger.Info("Variation selected",
		zap.String("set_id", setID),
		zap.String("link", key.String()),
		zap.Int("variation", variationIndex),
	)
	return next, nil
}

// SetDocumentsForGroup replaces one group's membership by hand. The override
// is sticky against upstream recomputation.
func (s *Service) SetDocumentsForGroup(setID, groupID string, documentIDs []string) (*engine.ReconSet, error) {
	unlock, err := s.lockSet(setID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set, rule, _, err := s.setContext(setID)
	if err != nil {
		return nil, err
	}

	next, err := engine.ApplyManualOverride(rule, set, groupID, documentIDs)
	if err != nil {
		return nil, err
	}
	s.commitSet(next)

	s.logger.Info("Group membership overridden",
		zap.String("set_id", setID),
		zap.String("group_id", groupID),
		zap.Int("documents", len(next.DocumentIDsByGroup[groupID])),
	)
	return next, nil
}

// TransitionStatus moves a set to a terminal verdict. Only pending sets move,
// and only to rejected or force_reconciled.
func (s *Service) TransitionStatus(setID string, target engine.Status) (*engine.ReconSet, error) {
	unlock, err := s.lockSet(setID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set, err := s.GetSet(setID)
	if err != nil {
		return nil, err
	}

	if !set.Status.CanTransitionTo(target) {
		return nil, &apperrors.StatusTransitionError{
			SetID: setID,
			From:  string(set.Status),
			To:    string(target),
		}
	}

	next := set.Clone()
	next.Status = target
	s.commitSet(next)

	s.logger.Info("Set status changed",
		zap.String("set_id", setID),
		zap.String("from", string(set.Status)),
		zap.String("to", string(target)),
	)
	return next, nil
}

// EvaluateComparison runs one comparison logic against the set's current
// membership and stores the result on the set, replacing any previous result
// for that logic.
func (s *Service) EvaluateComparison(ctx context.Context, setID, comparisonLogicID string) (*engine.ComparisonResult, error) {
	unlock, err := s.lockSet(setID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	set, rule, _, err := s.setContext(setID)
	if err != nil {
		return nil, err
	}
	logic, ok := rule.ComparisonLogic(comparisonLogicID)
	if !ok {
		return nil, apperrors.NewNotFoundError("comparison logic", comparisonLogicID)
	}

	result, err := engine.Compare(ctx, s.store, rule, logic, set)
	if err != nil {
		return nil, err
	}

	next := set.Clone()
	replaced := false
	for i := range next.ComparisonResults {
		if next.ComparisonResults[i].ComparisonLogicID == comparisonLogicID {
			next.ComparisonResults[i] = *result
			replaced = true
			break
		}
	}
	if !replaced {
		next.ComparisonResults = append(next.ComparisonResults, *result)
	}
	s.commitSet(next)

	return result, nil
}

// lockSet acquires the set's mutation lock. Mutations on different sets run
// concurrently; mutations on one set serialize.
func (s *Service) lockSet(setID string) (func(), error) {
	s.mu.RLock()
	lock, ok := s.setLocks[setID]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("set", setID)
	}
	lock.Lock()
	return lock.Unlock, nil
}

// setContext resolves a set together with the rule and matching logic it was
// built from.
func (s *Service) setContext(setID string) (*engine.ReconSet, *engine.Rule, *engine.MatchingLogic, error) {
	set, err := s.GetSet(setID)
	if err != nil {
		return nil, nil, nil, err
	}
	rule, err := s.GetRule(set.RuleID)
	if err != nil {
		return nil, nil, nil, err
	}
	logic, ok := rule.MatchingLogic(set.MatchingLogicID)
	if !ok {
		return nil, nil, nil, apperrors.NewNotFoundError("matching logic", set.MatchingLogicID)
	}
	return set, rule, logic, nil
}

// commitSet swaps the stored set for its updated clone.
func (s *Service) commitSet(set *engine.ReconSet) {
	s.mu.Lock()
	s.sets[set.ID] = set
	s.mu.Unlock()
}
