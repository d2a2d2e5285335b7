package compiler

import (
	"github.com/samber/lo"

	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/preset"
	"github.com/John-Robertt/override-go/internal/region"
)

// Lists are the candidate member lists shared by many groups. Order is the
// selection and failover priority shown to the user.
type Lists struct {
	Regions              []string // region group names, catalog order
	Selector             []string
	DefaultProxies       []string
	DefaultProxiesDirect []string
	Fallback             []string
}

// BuildLists derives the candidate lists from the significant regions.
// Every call returns freshly allocated slices.
func BuildLists(significant []string, hasLowCost, landing bool) Lists {
	regions := lo.Map(significant, func(id string, _ int) string { return region.GroupName(id) })

	selector := []string{preset.AutoBest, preset.Failover}
	if landing {
		selector = append(selector, preset.Landing)
	}
	selector = append(selector, regions...)
	if hasLowCost {
		selector = append(selector, preset.LowCost)
	}
	selector = append(selector, preset.Manual, model.ActionDirect)

	defaults := append([]string{preset.Select}, regions...)
	if hasLowCost {
		defaults = append(defaults, preset.LowCost)
	}
	defaults = append(defaults, preset.Manual, preset.Direct)

	// Low-cost ranks after the regions and before the selector here.
	direct := append([]string{preset.Direct}, regions...)
	if hasLowCost {
		direct = append(direct, preset.LowCost)
	}
	direct = append(direct, preset.Select, preset.Manual)

	var fallback []string
	if landing {
		fallback = append(fallback, preset.Landing)
	}
	fallback = append(fallback, regions...)
	if hasLowCost {
		fallback = append(fallback, preset.LowCost)
	}
	fallback = append(fallback, preset.Manual, model.ActionDirect)

	return Lists{
		Regions:              regions,
		Selector:             selector,
		DefaultProxies:       defaults,
		DefaultProxiesDirect: direct,
		Fallback:             fallback,
	}
}

// FrontProxy is the selector without the groups that would route back through
// the front proxy itself.
func (l Lists) FrontProxy() []string {
	return lo.Without(l.Selector, preset.Failover, preset.Landing)
}

func clone(s []string) []string { return append([]string(nil), s...) }
