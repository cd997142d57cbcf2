package model

import "sort"

// typesByCode returns the variants of a code table sorted by wire code,
// so listings and help text always show the ledger's canonical order.
func typesByCode[T ~string](codes map[T]int) []T {
	out := make([]T, 0, len(codes))
	for t := range codes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return codes[out[i]] < codes[out[j]] })
	return out
}
