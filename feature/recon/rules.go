package recon

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"recon-engine/core/engine"
)

// rulesFile is the JSON layout of a rules file: a top-level array or an
// object with a "rules" key, whichever the authoring side produces.
type rulesFile struct {
	Rules []*engine.Rule `json:"rules"`
}

// LoadRulesFile reads a JSON rules file and registers every rule on the
// service. Each rule is validated on registration; the first invalid rule
// aborts loading.
func LoadRulesFile(ctx context.Context, svc *Service, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read rules file: %w", err)
	}

	var rules []*engine.Rule
	if err := json.Unmarshal(data, &rules); err != nil {
		var wrapped rulesFile
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return 0, fmt.Errorf("failed to decode rules file %s: %w", path, err)
		}
		rules = wrapped.Rules
	}

	for i, rule := range rules {
		if _, err := svc.AddRule(ctx, rule); err != nil {
			return i, fmt.Errorf("rule %d (%s) rejected: %w", i, rule.ID, err)
		}
	}
	return len(rules), nil
}
