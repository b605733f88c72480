// Package generator runs one favicon generation: it fingerprints the source
// and configuration, answers from the cache when both are unchanged, and
// otherwise renders, emits and persists a fresh icon set.
//
// Stages run strictly in order:
//
//	resolve -> cache_check -> render -> emit -> persist
//
// A cache hit ends the run after cache_check with no rendering and no
// emission. Observers see every stage and the final Report.
package generator
