package compiler

import (
	"fmt"

	"github.com/John-Robertt/override-go/internal/model"
)

// Dedupe makes node names unique. The first occurrence of a name keeps it;
// later ones get a " | #k" suffix where k is the occurrence ordinal, bumped
// until the result is free. The input slice and its nodes are not modified.
func Dedupe(in []model.Proxy) []model.Proxy {
	out := make([]model.Proxy, 0, len(in))
	used := make(map[string]struct{}, len(in))
	seen := make(map[string]int, len(in))
	for _, p := range in {
		seen[p.Name]++
		name := p.Name
		if _, ok := used[name]; ok {
			name = suffixed(p.Name, max(seen[p.Name], 2), func(s string) bool {
				_, ok := used[s]
				return ok
			})
		}
		used[name] = struct{}{}
		if name != p.Name {
			p = p.Rename(name)
		}
		out = append(out, p)
	}
	return out
}

// suffixed returns the first "name | #k" with k >= start that is not taken.
func suffixed(name string, start int, taken func(string) bool) string {
	for k := start; ; k++ {
		try := fmt.Sprintf("%s | #%d", name, k)
		if !taken(try) {
			return try
		}
	}
}
