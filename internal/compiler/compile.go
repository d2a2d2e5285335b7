// Package compiler turns a node pool and a flag set into proxy groups. It is
// pure: no I/O and no state shared between calls.
package compiler

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/preset"
	"github.com/John-Robertt/override-go/internal/region"
)

type Result struct {
	Proxies    []model.Proxy
	Groups     []model.Group
	Attributes region.Attributes
	Lists      Lists
}

type CompileError struct {
	AppError model.AppError
	Cause    error
}

func (e *CompileError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *CompileError) Unwrap() error { return e.Cause }

// builtinNames are outbounds mihomo defines itself. GLOBAL exists even when
// no GLOBAL group is emitted.
var builtinNames = []string{model.ActionDirect, model.ActionReject, "COMPATIBLE", "PASS", preset.Global}

// Compile runs dedupe, scan, list building and assembly, then moves nodes off
// reserved names. An empty pool is valid and yields groups that reference
// only sentinels and fixed groups.
func Compile(proxies []model.Proxy, flags model.Flags) (*Result, error) {
	for i, p := range proxies {
		if strings.TrimSpace(p.Name) == "" {
			return nil, &CompileError{
				AppError: model.AppError{
					Code:    "PROXY_NAME_EMPTY",
					Message: fmt.Sprintf("第 %d 个节点缺少 name", i+1),
					Stage:   "compile",
				},
			}
		}
	}

	deduped := Dedupe(proxies)
	names := lo.Map(deduped, func(p model.Proxy, _ int) string { return p.Name })

	attrs := region.Default().Scan(names)
	significant := attrs.Significant()
	lists := BuildLists(significant, attrs.HasLowCost, flags.Landing)
	groups := Assemble(lists, significant, attrs.HasLowCost, flags)

	// Group and node names share one namespace in mihomo. A node that takes a
	// group or built-in name is renamed like a duplicate. The suffix adds no
	// letters, so the scan above still holds for the renamed pool.
	reserved := lo.SliceToMap(groups, func(g model.Group) (string, struct{}) { return g.Name, struct{}{} })
	for _, name := range builtinNames {
		reserved[name] = struct{}{}
	}
	used := lo.SliceToMap(names, func(name string) (string, struct{}) { return name, struct{}{} })
	for i, p := range deduped {
		if _, ok := reserved[p.Name]; !ok {
			continue
		}
		name := suffixed(p.Name, 2, func(s string) bool {
			_, r := reserved[s]
			_, u := used[s]
			return r || u
		})
		used[name] = struct{}{}
		deduped[i] = p.Rename(name)
	}

	return &Result{
		Proxies:    deduped,
		Groups:     groups,
		Attributes: attrs,
		Lists:      lists,
	}, nil
}
