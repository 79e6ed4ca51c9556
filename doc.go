// Package coinsum reconciles cryptocurrency acquisition records from exchange
// exports into per-asset aggregate summaries.
//
// Records come from heterogeneous tabular sources (exchange transaction
// exports, staking exports, or the exchange API itself), each with its own
// column layout and cell encodings. The package applies the same pipeline to
// every source:
//
//	load table -> filter rows -> project columns -> normalize cells -> aggregate
//
// and converges on a single [Summary] per source, then per asset. Aggregation
// is associative: summaries can be merged and re-aggregated, which is how the
// per-source summaries become the final per-asset one.
//
// Only acquisition events are accumulated (buys and staking interest).
// Sells, transfers and tax-lot accounting are out of scope.
package coinsum
