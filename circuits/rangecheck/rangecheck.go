// Package rangecheck implements the 64-bit range and comparison gadgets
// used by both circuits to bound amounts and balances (§4.4.2).
package rangecheck

import "github.com/consensys/gnark/frontend"

// Uint64 enforces that v decomposes into 64 boolean witnesses whose
// weighted sum equals v, i.e. 0 ≤ v < 2^64 (§4.4.2 "Uint64(v)").
func Uint64(api frontend.API, v frontend.Variable) {
	api.ToBinary(v, 64)
}

// IsLessOrEqual enforces a ≤ b for two values already known to be in
// [0, 2^64) by range-checking their difference b−a into [0, 2^64) — the
// signed-difference comparator spec.md §4.4.2 describes.
func IsLessOrEqual(api frontend.API, a, b frontend.Variable) {
	diff := api.Sub(b, a)
	api.ToBinary(diff, 64)
}
