package cmd

import (
	"context"
	"fmt"
	"os"

	"recon-engine/core/docstore"
	"recon-engine/feature/recon"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var validateFixturePath string

// validateCmd checks a rules file against a document fixture without
// starting the server.
var validateCmd = &cobra.Command{
	Use:   "validate <rules.json>",
	Short: "Validate a rules file",
	Long: `Validates every rule in the given JSON file: group/queue references,
link graph shape, and field path syntax. Queue references are resolved
against the fixture given with --fixture.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := docstore.NewMemory()
		if validateFixturePath != "" {
			f, err := os.Open(validateFixturePath)
			if err != nil {
				return fmt.Errorf("failed to open fixture: %w", err)
			}
			defer f.Close()
			if err := store.LoadFixture(f); err != nil {
				return err
			}
		}

		svc := recon.NewService(store, zap.NewNop())
		count, err := recon.LoadRulesFile(context.Background(), svc, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%d rule(s) valid\n", count)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateFixturePath, "fixture", "", "JSON document fixture used to resolve queue references")
	RootCmd.AddCommand(validateCmd)
}
