package source

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func FuzzParseProxiesYAML(f *testing.F) {
	seed := []string{
		"",
		"proxies: []",
		"proxies:\n  - name: HK 01\n    type: ss\n",
		"- {name: A}\n- {name: A}\n",
		`{"proxies":[{"name":"x","port":1}]}`,
		"a: &x {name: y}\nproxies: [*x, *x]\n",
		"proxies: [1, 2]",
	}
	for _, s := range seed {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, content string) {
		ps, err := ParseProxiesYAML("fuzz", content)
		if err != nil {
			return
		}
		for _, p := range ps {
			if p.Name == "" {
				t.Fatalf("empty name accepted")
			}
			if p.Fields == nil || p.Fields.Kind != yaml.MappingNode {
				t.Fatalf("fields are not a mapping for %q", p.Name)
			}
			if _, err := yaml.Marshal(p.Fields); err != nil {
				t.Fatalf("fields do not re-encode: %v", err)
			}
		}
	})
}
