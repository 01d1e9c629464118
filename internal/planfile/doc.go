// Package planfile reads logical plans written down as YAML or CUE.
//
// A plan file holds one plan tree. Every node and expression carries a
// kind and the fields that kind uses:
//
//	version: 1
//	plan:
//	  kind: selection
//	  predicate: {kind: binary, op: ">", left: {kind: col, name: age}, right: {kind: lit, value: 30}}
//	  input:
//	    kind: df_scan
//	    table: people
//
// Unknown fields are rejected. Tables named by df_scan nodes are resolved
// through a TableSource, and columnar_scan formats through a
// plan.ScanRegistry. Output schemas of projections, aggregations, joins
// and melts are derived from their inputs.
package planfile
