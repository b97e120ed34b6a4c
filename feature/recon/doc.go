// Package recon exposes the reconciliation engine as an HTTP feature.
//
// It owns the rule repository and the live set registry: rules are validated
// and registered (from the API or a startup rules file), sets are built from
// anchor documents, and operators work sets through variation selection,
// manual membership overrides, comparisons, and the final verdict.
//
// # Components
//
//   - Service: the single mutation surface over rules and sets. Guarded by a
//     registry lock plus one mutex per set, so different sets mutate
//     concurrently while one set's mutations serialize.
//   - Handler: the Fiber HTTP binding with typed-error status mapping
//     (NotFound 404, invalid input 400, forbidden status transition 409).
//   - LoadRulesFile: registers rules from the JSON hand-off file written by
//     external authoring tools.
//
// The engine mechanics (matching, set expansion, comparison) live in
// core/engine; this package only orchestrates them.
package recon
