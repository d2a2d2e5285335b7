package model

type Rule struct {
	Type      string // e.g. "RULE-SET", "GEOSITE", "GEOIP", "MATCH"
	Value     string // provider name / geo code / domain / cidr / port
	Action    string // DIRECT/REJECT/group name
	NoResolve bool   // only meaningful for IP-CIDR/IP-CIDR6/GEOIP
}
