package region

// Descriptor describes one geographic region. Pattern uses the mihomo filter
// dialect (regexp2 with an inline (?i) flag) and is emitted verbatim as the
// region group's filter.
type Descriptor struct {
	ID      string
	Pattern string
	Icon    string
}

const (
	qure      = "https://cdn.jsdelivr.net/gh/Koolson/Qure@master/IconSet/Color/"
	qureCF    = "https://testingcf.jsdelivr.net/gh/Koolson/Qure@master/IconSet/Color/"
	vergeFlag = "https://fastly.jsdelivr.net/gh/clash-verge-rev/clash-verge-rev.github.io@main/docs/assets/icons/flags/"
)

// catalog is ordered by classification priority: a name that matches more
// than one pattern belongs to the earliest entry.
var catalog = [...]Descriptor{
	{ID: "香港", Pattern: "(?i)香港|港|HK|hk|Hong Kong|HongKong|hongkong|🇭🇰", Icon: qure + "Hong_Kong.png"},
	{ID: "澳门", Pattern: "(?i)澳门|MO|Macau|🇲🇴", Icon: qure + "Macao.png"},
	{ID: "台湾", Pattern: "(?i)台|新北|彰化|TW|Taiwan|🇹🇼", Icon: qure + "Taiwan.png"},
	{ID: "新加坡", Pattern: "(?i)新加坡|坡|狮城|SG|Singapore|🇸🇬", Icon: qure + "Singapore.png"},
	{ID: "日本", Pattern: "(?i)日本|川日|东京|大阪|泉日|埼玉|沪日|深日|JP|Japan|🇯🇵", Icon: qure + "Japan.png"},
	{ID: "韩国", Pattern: "(?i)KR|Korea|KOR|首尔|韩|韓|🇰🇷", Icon: qure + "Korea.png"},
	{ID: "美国", Pattern: "(?i)美国|美|US|United States|🇺🇸", Icon: qure + "United_States.png"},
	{ID: "加拿大", Pattern: "(?i)加拿大|Canada|CA|🇨🇦", Icon: qure + "Canada.png"},
	{ID: "英国", Pattern: "(?i)英国|United Kingdom|UK|伦敦|London|🇬🇧", Icon: qure + "United_Kingdom.png"},
	{ID: "澳大利亚", Pattern: "(?i)澳洲|澳大利亚|AU|Australia|🇦🇺", Icon: qure + "Australia.png"},
	{ID: "德国", Pattern: "(?i)德国|德|DE|Germany|🇩🇪", Icon: qure + "Germany.png"},
	{ID: "法国", Pattern: "(?i)法国|法|FR|France|🇫🇷", Icon: qure + "France.png"},
	{ID: "俄罗斯", Pattern: "(?i)俄罗斯|俄|RU|Russia|🇷🇺", Icon: qure + "Russia.png"},
	{ID: "泰国", Pattern: "(?i)泰国|泰|TH|Thailand|🇹🇭", Icon: qure + "Thailand.png"},
	{ID: "印度", Pattern: "(?i)印度|IN|India|🇮🇳", Icon: qure + "India.png"},
	{ID: "马来西亚", Pattern: "(?i)马来西亚|马来|MY|Malaysia|🇲🇾", Icon: qure + "Malaysia.png"},
	{ID: "荷兰", Pattern: "(?i)荷兰|NL|Netherlands|🇳🇱", Icon: vergeFlag + "nl.svg"},
	{ID: "瑞士", Pattern: "(?i)瑞士|CH|Switzerland|🇨🇭", Icon: vergeFlag + "ch.svg"},
	{ID: "瑞典", Pattern: "(?i)瑞典|SE|Sweden|🇸🇪", Icon: vergeFlag + "se.svg"},
	{ID: "挪威", Pattern: "(?i)挪威|NO|Norway|🇳🇴", Icon: vergeFlag + "no.svg"},
	{ID: "芬兰", Pattern: "(?i)芬兰|FI|Finland|🇫🇮", Icon: qureCF + "Finland.png"},
	{ID: "丹麦", Pattern: "(?i)丹麦|DK|Denmark|🇩🇰", Icon: vergeFlag + "dk.svg"},
	{ID: "意大利", Pattern: "(?i)意大利|IT|Italy|🇮🇹", Icon: vergeFlag + "it.svg"},
	{ID: "西班牙", Pattern: "(?i)西班牙|ES|Spain|🇪🇸", Icon: vergeFlag + "es.svg"},
	{ID: "奥地利", Pattern: "(?i)奥地利|AT|Austria|🇦🇹", Icon: vergeFlag + "at.svg"},
	{ID: "比利时", Pattern: "(?i)比利时|BE|Belgium|🇧🇪", Icon: vergeFlag + "be.svg"},
	{ID: "菲律宾", Pattern: "(?i)菲律宾|PH|Philippines|🇵🇭", Icon: qureCF + "Philippines.png"},
	{ID: "阿根廷", Pattern: "(?i)阿根廷|AR|Argentina|🇦🇷", Icon: qureCF + "Argentina.png"},
	{ID: "印度尼西亚", Pattern: "(?i)印尼|印度尼西亚|ID|Indonesia|🇮🇩", Icon: vergeFlag + "id.svg"},
	{ID: "越南", Pattern: "(?i)越南|VN|Vietnam|🇻🇳", Icon: vergeFlag + "vn.svg"},
	{ID: "巴西", Pattern: "(?i)巴西|BR|Brazil|🇧🇷", Icon: qureCF + "Brazil.png"},
}

// Catalog returns a copy of the region catalog in priority order.
func Catalog() []Descriptor {
	out := make([]Descriptor, len(catalog))
	copy(out, catalog[:])
	return out
}

// Lookup returns the descriptor for a region id.
func Lookup(id string) (Descriptor, bool) {
	for _, d := range catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// GroupName is the proxy-group name generated for a region.
func GroupName(id string) string { return id + "节点" }
