// Package dataset loads the cleaned retail-transaction table and
// projects it into observation streams for aggregation.
//
// The loader is strict by design: a missing required column is a fatal
// precondition failure and a malformed timestamp or numeric cell stops
// the load with an error naming the offending line and field. The
// upstream cleaning job owns data quality; this package refuses to
// guess around its output.
//
// Row selection (positive quantity, not excluded) is a policy applied
// after loading, never an error path.
package dataset
