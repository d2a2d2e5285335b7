package model

import "strings"

// Flags switches optional parts of the generated configuration.
type Flags struct {
	LoadBalance bool // region groups use load-balance instead of url-test
	Landing     bool // front-proxy/landing groups, wider region exclusion
	IPv6        bool // copied into dns (and runtime settings)
	Full        bool // emit core runtime settings
	KeepAlive   bool // inverts disable-keep-alive
	FakeIP      bool // fake-ip dns template instead of redir-host
	Global      bool // append the GLOBAL catch-all group
}

// FlagKeys lists the recognized option names in a stable order.
var FlagKeys = []string{"loadbalance", "landing", "ipv6", "full", "keepalive", "fakeip", "global"}

// ParseBool accepts native booleans and the strings "true" (any case) or "1".
// Every other value is false.
func ParseBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || t == "1"
	default:
		return false
	}
}

// FlagsFromMap reads flags from loosely typed arguments, e.g. decoded JSON or
// URL query values. Unknown keys are ignored.
func FlagsFromMap(args map[string]any) Flags {
	return Flags{
		LoadBalance: ParseBool(args["loadbalance"]),
		Landing:     ParseBool(args["landing"]),
		IPv6:        ParseBool(args["ipv6"]),
		Full:        ParseBool(args["full"]),
		KeepAlive:   ParseBool(args["keepalive"]),
		FakeIP:      ParseBool(args["fakeip"]),
		Global:      ParseBool(args["global"]),
	}
}
