// Package fieldpath implements typed field path expressions for document records.
//
// A path addresses a value inside a document's field map using dot notation,
// with an optional single array-expansion segment:
//
//	"poNumber"          -> one value
//	"lineItems[].qty"   -> one value per line item, in array order
//
// Paths are parsed once (at rule load time) so malformed paths surface as
// load-time errors rather than runtime resolution failures.
//
// # Absent values
//
// A missing field resolves to an explicit absent Value, distinct from an empty
// string or zero. Absent compares unequal to everything, including another
// absent value: the engine never matches or validates on missing data.
package fieldpath
