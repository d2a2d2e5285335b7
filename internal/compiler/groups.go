package compiler

import (
	"github.com/samber/lo"

	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/preset"
	"github.com/John-Robertt/override-go/internal/region"
)

// Assemble builds proxy-groups in their emission order. Member lists are
// copied per group, so no two groups share a backing array.
func Assemble(lists Lists, significant []string, hasLowCost bool, flags model.Flags) []model.Group {
	has := func(id string) bool { return lo.Contains(significant, id) }
	defaults := func() []string { return clone(lists.DefaultProxies) }

	out := make([]model.Group, 0, 40)
	out = append(out,
		model.Group{
			Name:        preset.AutoBest,
			Type:        model.GroupURLTest,
			Icon:        preset.Icon(preset.AutoBest),
			IncludeAll:  true,
			Filter:      preset.NodeFilter,
			URL:         preset.ProbeURL,
			Interval:    300,
			Tolerance:   50,
			Lazy:        model.Bool(false),
			HealthCheck: preset.HealthCheck(preset.CheckFast),
		},
		model.Group{
			Name:        preset.Select,
			Type:        model.GroupSelect,
			Icon:        preset.Icon(preset.Select),
			Proxies:     clone(lists.Selector),
			HealthCheck: preset.HealthCheck(preset.CheckStandard),
		},
		model.Group{
			Name:       preset.Manual,
			Type:       model.GroupSelect,
			Icon:       preset.Icon(preset.Manual),
			IncludeAll: true,
		},
	)

	if flags.Landing {
		out = append(out,
			model.Group{
				Name:          preset.FrontProxy,
				Type:          model.GroupSelect,
				Icon:          preset.Icon(preset.FrontProxy),
				IncludeAll:    true,
				ExcludeFilter: region.ISPPattern,
				Proxies:       lists.FrontProxy(),
			},
			model.Group{
				Name:       preset.Landing,
				Type:       model.GroupSelect,
				Icon:       preset.Icon(preset.Landing),
				IncludeAll: true,
				Filter:     region.ISPPattern,
			},
		)
	}

	out = append(out,
		model.Group{
			Name:        preset.Failover,
			Type:        model.GroupFallback,
			Icon:        preset.Icon(preset.Failover),
			URL:         preset.ProbeURL,
			Proxies:     clone(lists.Fallback),
			Interval:    180,
			Tolerance:   20,
			Lazy:        model.Bool(false),
			HealthCheck: preset.HealthCheck(preset.CheckStandard),
		},
		preset.LoadBalanceBase(preset.LBHash, "consistent-hashing"),
		preset.LoadBalanceBase(preset.LBRoundRobin, "round-robin"),
		service(preset.Static, defaults(), ""),
		service(preset.AI, defaults(), preset.CheckAI),
		service(preset.Telegram, defaults(), ""),
		service(preset.YouTube, defaults(), preset.CheckMedia),
	)

	bilibili := clone(lists.DefaultProxiesDirect)
	if has("台湾") && has("香港") {
		bilibili = []string{preset.Direct, region.GroupName("台湾"), region.GroupName("香港")}
	}
	truth := defaults()
	if has("美国") {
		truth = []string{region.GroupName("美国"), preset.Select, preset.Manual}
	}
	bahamut := defaults()
	if has("台湾") {
		bahamut = []string{region.GroupName("台湾"), preset.Select, preset.Manual, preset.Direct}
	}
	directFirst := lo.Uniq(append([]string{preset.Direct}, lists.DefaultProxies...))

	out = append(out,
		service(preset.Bilibili, bilibili, ""),
		service(preset.Netflix, defaults(), preset.CheckMedia),
		service(preset.Spotify, defaults(), preset.CheckMedia),
		service(preset.TikTok, defaults(), ""),
		service(preset.EHentai, defaults(), ""),
		service(preset.PikPak, defaults(), ""),
		service(preset.TruthSocial, truth, ""),
		service(preset.Bahamut, bahamut, ""),
		service(preset.Crypto, defaults(), ""),
		service(preset.SSH, defaults(), ""),
		service(preset.Sogou, []string{preset.Direct, model.ActionReject}, ""),
		service(preset.Google, defaults(), ""),
		service(preset.Apple, clone(directFirst), ""),
		service(preset.Microsoft, clone(directFirst), ""),
		service(preset.Direct, []string{model.ActionDirect, preset.Select}, ""),
		service(preset.AdBlock, []string{model.ActionReject, preset.Direct}, ""),
	)

	if hasLowCost {
		out = append(out, model.Group{
			Name:        preset.LowCost,
			Type:        model.GroupURLTest,
			Icon:        preset.Icon(preset.LowCost),
			URL:         preset.ProbeURL,
			IncludeAll:  true,
			Filter:      region.LowCostPattern,
			HealthCheck: preset.HealthCheck(preset.CheckStandard),
		})
	}

	for _, id := range significant {
		if g, ok := regionGroup(id, flags); ok {
			out = append(out, g)
		}
	}

	if flags.Global {
		names := lo.Map(out, func(g model.Group, _ int) string { return g.Name })
		out = append(out, model.Group{
			Name:    preset.Global,
			Type:    model.GroupSelect,
			Icon:    preset.Icon(preset.Global),
			Proxies: names,
		})
	}
	return out
}

func service(name string, members []string, check string) model.Group {
	return model.Group{
		Name:        name,
		Type:        model.GroupSelect,
		Icon:        preset.Icon(name),
		Proxies:     members,
		HealthCheck: preset.HealthCheck(check),
	}
}

// RegionExcludeFilter is the exclude-filter of every region group. With
// landing on, residential nodes are left to the landing group.
func RegionExcludeFilter(landing bool) string {
	if landing {
		return region.ISPPattern + "|" + region.LowCostAlternatives
	}
	return region.LowCostPattern
}

func regionGroup(id string, flags model.Flags) (model.Group, bool) {
	d, ok := region.Lookup(id)
	if !ok {
		return model.Group{}, false
	}
	g := model.Group{
		Name:          region.GroupName(id),
		Type:          model.GroupURLTest,
		Icon:          d.Icon,
		IncludeAll:    true,
		Filter:        d.Pattern,
		ExcludeFilter: RegionExcludeFilter(flags.Landing),
	}
	if flags.LoadBalance {
		g.Type = model.GroupLoadBalance
		return g, true
	}
	g.URL = preset.ProbeURL
	g.Interval = 60
	g.Tolerance = 20
	g.Lazy = model.Bool(false)
	return g, true
}
