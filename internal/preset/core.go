package preset

type Sniffer struct {
	Enable              bool       `yaml:"enable"`
	ForceDNSMapping     bool       `yaml:"force-dns-mapping"`
	OverrideDestination bool       `yaml:"override-destination"`
	Sniff               SniffPorts `yaml:"sniff"`
	SkipDomain          []string   `yaml:"skip-domain"`
}

type SniffPorts struct {
	TLS  Ports `yaml:"TLS"`
	HTTP Ports `yaml:"HTTP"`
	QUIC Ports `yaml:"QUIC"`
}

type Ports struct {
	Ports []int `yaml:"ports"`
}

func SnifferConfig() Sniffer {
	return Sniffer{
		Enable:              true,
		ForceDNSMapping:     true,
		OverrideDestination: false,
		Sniff: SniffPorts{
			TLS:  Ports{Ports: []int{443, 8443}},
			HTTP: Ports{Ports: []int{80, 8080, 8880}},
			QUIC: Ports{Ports: []int{443, 8443}},
		},
		SkipDomain: []string{"Mijia Cloud", "dlg.io.mi.com", "+.push.apple.com"},
	}
}

type DNS struct {
	Enable                bool     `yaml:"enable"`
	IPv6                  bool     `yaml:"ipv6"`
	PreferH3              bool     `yaml:"prefer-h3"`
	EnhancedMode          string   `yaml:"enhanced-mode"`
	FakeIPFilter          []string `yaml:"fake-ip-filter,omitempty"`
	DefaultNameserver     []string `yaml:"default-nameserver"`
	Nameserver            []string `yaml:"nameserver"`
	Fallback              []string `yaml:"fallback"`
	ProxyServerNameserver []string `yaml:"proxy-server-nameserver"`
}

// DNSConfig returns the redir-host template, or the fake-ip one when fakeIP
// is set. ipv6 is copied in verbatim.
func DNSConfig(ipv6, fakeIP bool) DNS {
	d := DNS{
		Enable:            true,
		IPv6:              ipv6,
		PreferH3:          true,
		EnhancedMode:      "redir-host",
		DefaultNameserver: []string{"119.29.29.29", "223.5.5.5"},
		Nameserver:        []string{"system", "223.5.5.5", "119.29.29.29", "180.184.1.1"},
		Fallback: []string{
			"quic://dns0.eu",
			"https://dns.cloudflare.com/dns-query",
			"https://dns.sb/dns-query",
			"tcp://208.67.222.222",
			"tcp://8.26.56.2",
		},
		ProxyServerNameserver: []string{"quic://223.5.5.5", "tls://dot.pub"},
	}
	if fakeIP {
		d.EnhancedMode = "fake-ip"
		d.FakeIPFilter = []string{
			"geosite:private",
			"geosite:connectivity-check",
			"geosite:cn",
			"Mijia Cloud",
			"dig.io.mi.com",
			"localhost.ptlogin2.qq.com",
			"*.icloud.com",
			"*.stun.*.*",
			"*.stun.*.*.*",
		}
	}
	return d
}

type GeoxURL struct {
	GeoIP   string `yaml:"geoip"`
	GeoSite string `yaml:"geosite"`
	MMDB    string `yaml:"mmdb"`
	ASN     string `yaml:"asn"`
}

func GeoxURLs() GeoxURL {
	return GeoxURL{
		GeoIP:   "https://cdn.jsdelivr.net/gh/Loyalsoldier/v2ray-rules-dat@release/geoip.dat",
		GeoSite: "https://cdn.jsdelivr.net/gh/Loyalsoldier/v2ray-rules-dat@release/geosite.dat",
		MMDB:    "https://cdn.jsdelivr.net/gh/Loyalsoldier/geoip@release/Country.mmdb",
		ASN:     "https://cdn.jsdelivr.net/gh/Loyalsoldier/geoip@release/GeoLite2-ASN.mmdb",
	}
}

// Runtime is the core settings block emitted in full mode. Its keys sit at the
// top level of the document.
type Runtime struct {
	MixedPort          int            `yaml:"mixed-port"`
	RedirPort          int            `yaml:"redir-port"`
	TProxyPort         int            `yaml:"tproxy-port"`
	RoutingMark        int            `yaml:"routing-mark"`
	AllowLAN           bool           `yaml:"allow-lan"`
	IPv6               bool           `yaml:"ipv6"`
	Mode               string         `yaml:"mode"`
	UnifiedDelay       bool           `yaml:"unified-delay"`
	TCPConcurrent      bool           `yaml:"tcp-concurrent"`
	FindProcessMode    string         `yaml:"find-process-mode"`
	LogLevel           string         `yaml:"log-level"`
	GeodataLoader      string         `yaml:"geodata-loader"`
	ExternalController string         `yaml:"external-controller"`
	DisableKeepAlive   bool           `yaml:"disable-keep-alive"`
	Profile            RuntimeProfile `yaml:"profile"`
}

type RuntimeProfile struct {
	StoreSelected bool `yaml:"store-selected"`
}

func RuntimeSettings(ipv6, keepAlive bool) Runtime {
	return Runtime{
		MixedPort:          7890,
		RedirPort:          7892,
		TProxyPort:         7893,
		RoutingMark:        7894,
		AllowLAN:           true,
		IPv6:               ipv6,
		Mode:               "rule",
		UnifiedDelay:       true,
		TCPConcurrent:      true,
		FindProcessMode:    "off",
		LogLevel:           "info",
		GeodataLoader:      "standard",
		ExternalController: ":9999",
		DisableKeepAlive:   !keepAlive,
		Profile:            RuntimeProfile{StoreSelected: true},
	}
}
