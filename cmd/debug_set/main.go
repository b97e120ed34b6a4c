// Command debug_set builds reconciliation sets from a fixture and a rules
// file and dumps them as JSON, for inspecting matching behavior offline.
//
// Usage: go run ./cmd/debug_set <fixture.json> <rules.json>
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"recon-engine/core/docstore"
	"recon-engine/feature/recon"

	"go.uber.org/zap"
)

func main() {
	if len(os.Args) != 3 {
		log.Fatalf("usage: %s <fixture.json> <rules.json>", os.Args[0])
	}

	store := docstore.NewMemory()
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal(err)
	}
	if err := store.LoadFixture(f); err != nil {
		log.Fatal(err)
	}
	f.Close()

	ctx := context.Background()
	svc := recon.NewService(store, zap.NewNop())
	if _, err := recon.LoadRulesFile(ctx, svc, os.Args[2]); err != nil {
		log.Fatal(err)
	}

	for _, rule := range svc.ListRules() {
		for _, logic := range rule.MatchingLogics {
			sets, err := svc.GenerateSets(ctx, rule.ID, logic.ID)
			if err != nil {
				log.Fatal(err)
			}

			fmt.Printf("=== rule %s / logic %s: %d set(s) ===\n", rule.ID, logic.ID, len(sets))
			for _, set := range sets {
				out, err := json.MarshalIndent(set, "", "  ")
				if err != nil {
					log.Fatal(err)
				}
				fmt.Println(string(out))
			}
		}
	}
}
