package preset

// RuleProvider is one entry of rule-providers. Name is the mapping key.
type RuleProvider struct {
	Name     string `yaml:"-"`
	Type     string `yaml:"type"`
	Behavior string `yaml:"behavior"`
	Format   string `yaml:"format"`
	Interval int    `yaml:"interval"`
	URL      string `yaml:"url"`
	Path     string `yaml:"path"`
}

const (
	ownerRuleset = "https://cdn.jsdelivr.net/gh/powerfullz/override-rules@master/ruleset/"
	skk          = "https://ruleset.skk.moe/Clash/"
	loyal        = "https://fastly.jsdelivr.net/gh/Loyalsoldier/clash-rules@release/"
)

func textProvider(name, behavior, url, path string) RuleProvider {
	return RuleProvider{Name: name, Type: "http", Behavior: behavior, Format: "text", Interval: 86400, URL: url, Path: path}
}

func loyalProvider(name, behavior string) RuleProvider {
	return RuleProvider{
		Name:     name,
		Type:     "http",
		Behavior: behavior,
		Format:   "yaml",
		Interval: 86400,
		URL:      loyal + name + ".txt",
		Path:     "./ruleset/loyalsoldier/" + name + ".yaml",
	}
}

// RuleProviders returns the provider catalog in emission order.
func RuleProviders() []RuleProvider {
	return []RuleProvider{
		textProvider("ADBlock", "domain", "https://adrules.top/adrules_domainset.txt", "./ruleset/ADBlock.txt"),
		textProvider("TruthSocial", "classical", ownerRuleset+"TruthSocial.list", "./ruleset/TruthSocial.list"),
		textProvider("SogouInput", "classical", skk+"non_ip/sogouinput.txt", "./ruleset/SogouInput.txt"),
		textProvider("StaticResources", "domain", skk+"domainset/cdn.txt", "./ruleset/StaticResources.txt"),
		textProvider("CDNResources", "classical", skk+"non_ip/cdn.txt", "./ruleset/CDNResources.txt"),
		textProvider("AI", "classical", skk+"non_ip/ai.txt", "./ruleset/AI.txt"),
		textProvider("TikTok", "classical", ownerRuleset+"TikTok.list", "./ruleset/TikTok.list"),
		textProvider("EHentai", "classical", ownerRuleset+"EHentai.list", "./ruleset/EHentai.list"),
		textProvider("SteamFix", "classical", ownerRuleset+"SteamFix.list", "./ruleset/SteamFix.list"),
		textProvider("GoogleFCM", "classical", ownerRuleset+"FirebaseCloudMessaging.list", "./ruleset/FirebaseCloudMessaging.list"),
		textProvider("AdditionalFilter", "classical", ownerRuleset+"AdditionalFilter.list", "./ruleset/AdditionalFilter.list"),
		textProvider("AdditionalCDNResources", "classical", ownerRuleset+"AdditionalCDNResources.list", "./ruleset/AdditionalCDNResources.list"),
		textProvider("Crypto", "classical", ownerRuleset+"Crypto.list", "./ruleset/Crypto.list"),
		loyalProvider("reject", "domain"),
		loyalProvider("icloud", "domain"),
		loyalProvider("apple", "domain"),
		loyalProvider("google", "domain"),
		loyalProvider("proxy", "domain"),
		loyalProvider("direct", "domain"),
		loyalProvider("private", "domain"),
		loyalProvider("gfw", "domain"),
		loyalProvider("tld-not-cn", "domain"),
		loyalProvider("telegramcidr", "ipcidr"),
		loyalProvider("cncidr", "ipcidr"),
		loyalProvider("lancidr", "ipcidr"),
		loyalProvider("applications", "classical"),
		{
			Name:     "openai",
			Type:     "http",
			Behavior: "classical",
			Format:   "yaml",
			Interval: 86400,
			URL:      "https://fastly.jsdelivr.net/gh/blackmatrix7/ios_rule_script@master/rule/Clash/OpenAI/OpenAI.yaml",
			Path:     "./ruleset/blackmatrix7/openai.yaml",
		},
	}
}

// Rules returns the rule table. The last entry is the MATCH fallback.
func Rules() []string {
	return []string{
		"RULE-SET,ADBlock," + AdBlock,
		"RULE-SET,AdditionalFilter," + AdBlock,
		"RULE-SET,SogouInput," + Sogou,
		"RULE-SET,TruthSocial," + TruthSocial,
		"RULE-SET,StaticResources," + Static,
		"RULE-SET,CDNResources," + Static,
		"RULE-SET,AdditionalCDNResources," + Static,
		"RULE-SET,AI," + AI,
		"RULE-SET,Crypto," + Crypto,
		"RULE-SET,EHentai," + EHentai,
		"RULE-SET,TikTok," + TikTok,
		"RULE-SET,SteamFix," + Direct,
		"RULE-SET,GoogleFCM," + Direct,
		"GEOSITE,GOOGLE-PLAY@CN," + Direct,
		"GEOSITE,TELEGRAM," + Telegram,
		"GEOSITE,YOUTUBE," + YouTube,
		"GEOSITE,NETFLIX," + Netflix,
		"GEOSITE,SPOTIFY," + Spotify,
		"GEOSITE,BAHAMUT," + Bahamut,
		"GEOSITE,BILIBILI," + Bilibili,
		"GEOSITE,MICROSOFT@CN," + Direct,
		"GEOSITE,PIKPAK," + PikPak,
		"GEOSITE,GFW," + Select,
		"GEOSITE,CN," + Direct,
		"GEOSITE,PRIVATE," + Direct,
		"GEOIP,NETFLIX," + Netflix + ",no-resolve",
		"GEOIP,TELEGRAM," + Telegram + ",no-resolve",
		"GEOIP,CN," + Direct,
		"GEOIP,PRIVATE," + Direct,
		"DST-PORT,22," + SSH,
		"MATCH," + Select,
	}
}
