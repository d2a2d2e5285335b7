// Package preset holds the static tables of the generated configuration:
// group names, icons, health-check templates, rule providers, the rule
// table, sniffer and DNS blocks. Every accessor builds a fresh value so
// callers can never leak edits into another conversion.
package preset

import "github.com/John-Robertt/override-go/internal/model"

// Group names. Rules and member lists refer to groups by these strings.
const (
	AutoBest     = "自动优选"
	Select       = "选择节点"
	Manual       = "手动选择"
	FrontProxy   = "前置代理"
	Landing      = "落地节点"
	Failover     = "故障转移"
	LBHash       = "负载均衡(散列)"
	LBRoundRobin = "负载均衡(轮询)"
	Static       = "静态资源"
	AI           = "AI"
	Telegram     = "Telegram"
	YouTube      = "YouTube"
	Bilibili     = "Bilibili"
	Netflix      = "Netflix"
	Spotify      = "Spotify"
	TikTok       = "TikTok"
	EHentai      = "E-Hentai"
	PikPak       = "PikPak"
	TruthSocial  = "Truth Social"
	Bahamut      = "Bahamut"
	Crypto       = "Crypto"
	SSH          = "SSH(22端口)"
	Sogou        = "搜狗输入法"
	Google       = "谷歌服务"
	Apple        = "苹果服务"
	Microsoft    = "微软服务"
	Direct       = "直连"
	AdBlock      = "广告拦截"
	LowCost      = "低倍率节点"
	Global       = "GLOBAL"
)

// NodeFilter keeps real nodes and drops subscription info entries such as
// "剩余流量" or "Expire". It relies on a negative lookahead, which mihomo
// supports through regexp2.
const NodeFilter = "^((?!(DIRECTLY|DIRECT|Proxy|Traffic|Expire|Expired|过期|到期|套餐|剩余|流量|官网|超时|失效|Invalid|Test|测速|本地|Local)).)*$"

// ProbeURL is the latency probe used by url-test/fallback groups.
const ProbeURL = "https://cp.cloudflare.com/generate_204"

const (
	qure   = "https://cdn.jsdelivr.net/gh/Koolson/Qure@master/IconSet/Color/"
	qureCF = "https://testingcf.jsdelivr.net/gh/Koolson/Qure@master/IconSet/Color/"
	qureMR = "https://cdn.jsdmirror.com/gh/Koolson/Qure@master/IconSet/Color/"
	owner  = "https://cdn.jsdelivr.net/gh/powerfullz/override-rules@master/icons/"
)

var icons = map[string]string{
	AutoBest:     qure + "Auto.png",
	Select:       qure + "Proxy.png",
	Manual:       "https://cdn.jsdmirror.com/gh/shindgewongxj/WHATSINStash@master/icon/select.png",
	FrontProxy:   qure + "Area.png",
	Landing:      qure + "Airport.png",
	Failover:     qure + "Bypass.png",
	LBHash:       qureCF + "Round_Robin_1.png",
	LBRoundRobin: qureCF + "Round_Robin.png",
	Static:       qure + "Cloudflare.png",
	AI:           owner + "chatgpt.png",
	Telegram:     qure + "Telegram.png",
	YouTube:      qure + "YouTube.png",
	Bilibili:     qure + "bilibili.png",
	Netflix:      qure + "Netflix.png",
	Spotify:      qure + "Spotify.png",
	TikTok:       qure + "TikTok.png",
	EHentai:      owner + "Ehentai.png",
	PikPak:       owner + "PikPak.png",
	TruthSocial:  owner + "TruthSocial.png",
	Bahamut:      qureMR + "Bahamut.png",
	Crypto:       qureMR + "Cryptocurrency_3.png",
	SSH:          qure + "Server.png",
	Sogou:        owner + "Sougou.png",
	Google:       "https://fastly.jsdelivr.net/gh/clash-verge-rev/clash-verge-rev.github.io@main/docs/assets/icons/google.svg",
	Apple:        qure + "Apple.png",
	Microsoft:    qure + "Microsoft.png",
	Direct:       qure + "Direct.png",
	AdBlock:      qure + "AdBlack.png",
	LowCost:      qure + "Lab.png",
	Global:       qure + "Global.png",
}

// Icon returns the icon URL for a fixed group, or "".
func Icon(group string) string { return icons[group] }

// Health-check template names.
const (
	CheckStandard = "standard"
	CheckFast     = "fast"
	CheckAI       = "ai"
	CheckMedia    = "media"
)

// HealthCheck returns a new copy of the named template, or nil.
func HealthCheck(name string) *model.HealthCheck {
	switch name {
	case CheckStandard:
		return &model.HealthCheck{Enable: true, Interval: 600, URL: ProbeURL, Method: "HEAD", Timeout: 5, ExpectedStatus: "204"}
	case CheckFast:
		return &model.HealthCheck{Enable: true, Interval: 300, URL: ProbeURL, Method: "HEAD", Timeout: 3, ExpectedStatus: "204"}
	case CheckAI:
		return &model.HealthCheck{Enable: true, Interval: 1200, URL: "https://chatgpt.com", Method: "HEAD", Timeout: 10, ExpectedStatus: "200"}
	case CheckMedia:
		return &model.HealthCheck{Enable: true, Interval: 900, URL: "https://www.youtube.com/generate_204", Method: "HEAD", Timeout: 8, ExpectedStatus: "204"}
	default:
		return nil
	}
}

// LoadBalanceBase returns the options shared by both load-balance groups.
func LoadBalanceBase(name, strategy string) model.Group {
	return model.Group{
		Name:           name,
		Type:           model.GroupLoadBalance,
		Icon:           Icon(name),
		IncludeAll:     true,
		Filter:         NodeFilter,
		Strategy:       strategy,
		URL:            ProbeURL,
		Interval:       300,
		Timeout:        3000,
		Lazy:           model.Bool(true),
		MaxFailedTimes: 3,
		Hidden:         model.Bool(false),
		HealthCheck:    HealthCheck(CheckStandard),
	}
}
