// Package engine implements the reconciliation rule evaluation engine.
//
// A reconciliation rule clusters documents from independently-paginated
// queues into sets anchored on one document, then cross-checks field values
// across the clustered documents. The engine has three moving parts:
//
//   - Link matching: evaluates one link's selected criteria variation
//     against a candidate pool of "to"-side documents (matcher.go).
//   - Set building: expands an anchor document into a full per-group
//     document clustering by traversing the rule's link graph, with bounded
//     recomputation when one link's variation changes (builder.go).
//   - Comparison: aligns a set's documents into rows by line-item or
//     whole-document key and flags each row consistent or not (comparator.go).
//
// Rules are validated structurally before use (validate.go): undeclared
// group references, anchor mismatches, mixed-type groups, cyclic link
// graphs, and malformed field paths are all load-time errors, never
// runtime surprises.
//
// The engine is stateless: every operation is a pure function of the rule,
// the set snapshot, and the document store. Ownership of rules and live
// sets belongs to the feature layer (feature/recon).
package engine
