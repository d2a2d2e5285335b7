package model

// Group types understood by mihomo.
const (
	GroupSelect      = "select"
	GroupURLTest     = "url-test"
	GroupFallback    = "fallback"
	GroupLoadBalance = "load-balance"
)

// Sentinel actions that may appear in member lists and rules without being a
// generated group.
const (
	ActionDirect = "DIRECT"
	ActionReject = "REJECT"
)

// Group is one entry of proxy-groups. Field order is the YAML emission order.
type Group struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	Icon string `yaml:"icon,omitempty"`

	// Members referenced explicitly: group names, DIRECT/REJECT.
	Proxies []string `yaml:"proxies,omitempty"`

	// include-all asks the client to add every node itself, narrowed by
	// Filter and ExcludeFilter.
	IncludeAll    bool   `yaml:"include-all,omitempty"`
	Filter        string `yaml:"filter,omitempty"`
	ExcludeFilter string `yaml:"exclude-filter,omitempty"`

	Strategy       string `yaml:"strategy,omitempty"` // load-balance only
	URL            string `yaml:"url,omitempty"`
	Interval       int    `yaml:"interval,omitempty"`
	Tolerance      int    `yaml:"tolerance,omitempty"`
	Timeout        int    `yaml:"timeout,omitempty"`
	Lazy           *bool  `yaml:"lazy,omitempty"`
	MaxFailedTimes int    `yaml:"max-failed-times,omitempty"`
	Hidden         *bool  `yaml:"hidden,omitempty"`

	HealthCheck *HealthCheck `yaml:"health-check,omitempty"`
}

type HealthCheck struct {
	Enable         bool   `yaml:"enable"`
	Interval       int    `yaml:"interval"`
	URL            string `yaml:"url"`
	Method         string `yaml:"method"`
	Timeout        int    `yaml:"timeout"`
	ExpectedStatus string `yaml:"expected-status"`
}

// Bool returns a pointer for tri-state YAML fields.
func Bool(v bool) *bool { return &v }
