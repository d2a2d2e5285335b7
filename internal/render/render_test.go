package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/override-go/internal/compiler"
	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/region"
	"github.com/John-Robertt/override-go/internal/source"
)

const sample = `proxies:
  - name: HK 01
    type: ss
    server: hk1.example.com
    port: 8388
    cipher: aes-128-gcm
    password: "123"
  - {name: HK 02, type: ss, server: hk2.example.com, port: 8388, cipher: aes-128-gcm, password: pass}
  - name: HK 03
    type: trojan
    server: hk3.example.com
    port: 443
    password: pass
    sni: hk3.example.com
  - name: HK 01
    type: ss
    server: hk4.example.com
    port: 8388
    cipher: aes-128-gcm
    password: pass
  - name: SG 省流 01
    type: ss
    server: sg.example.com
    port: 8388
    cipher: aes-128-gcm
    password: pass
`

func compile(t *testing.T, flags model.Flags) *compiler.Result {
	t.Helper()
	proxies, err := source.ParseProxiesYAML("inline", sample)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	res, err := compiler.Compile(proxies, flags)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	return res
}

func topKeys(n *yaml.Node) []string {
	out := make([]string, 0, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		out = append(out, n.Content[i].Value)
	}
	return out
}

func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func TestCompose_KeyOrder(t *testing.T) {
	node, err := Compose(compile(t, model.Flags{}), model.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"proxies", "proxy-groups", "rule-providers", "rules", "sniffer", "dns", "geodata-mode", "geox-url"}
	if diff := cmp.Diff(want, topKeys(node)); diff != "" {
		t.Fatalf("key order mismatch (-want +got):\n%s", diff)
	}
}

func TestCompose_FullInsertsRuntimeAfterProxies(t *testing.T) {
	flags := model.Flags{Full: true, IPv6: true}
	node, err := Compose(compile(t, flags), flags)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	keys := topKeys(node)
	if keys[0] != "proxies" || keys[1] != "mixed-port" || keys[len(keys)-1] != "geox-url" {
		t.Fatalf("keys=%v", keys)
	}
	if v := lookup(node, "disable-keep-alive"); v == nil || v.Value != "true" {
		t.Fatalf("disable-keep-alive=%v", v)
	}
	if v := lookup(node, "external-controller"); v == nil || v.Value != ":9999" {
		t.Fatalf("external-controller=%v", v)
	}
	if v := lookup(lookup(node, "dns"), "ipv6"); v == nil || v.Value != "true" {
		t.Fatalf("dns.ipv6=%v", v)
	}
}

func TestRender_DNSTemplates(t *testing.T) {
	cases := []struct {
		flags    model.Flags
		mode     string
		fakeList bool
	}{
		{flags: model.Flags{}, mode: "enhanced-mode: redir-host", fakeList: false},
		{flags: model.Flags{FakeIP: true}, mode: "enhanced-mode: fake-ip", fakeList: true},
	}
	for _, tc := range cases {
		out, err := Render(compile(t, tc.flags), tc.flags)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		s := string(out)
		if !strings.Contains(s, tc.mode) {
			t.Fatalf("expected %q in output", tc.mode)
		}
		if got := strings.Contains(s, "fake-ip-filter:"); got != tc.fakeList {
			t.Fatalf("fake-ip-filter present=%v, want=%v", got, tc.fakeList)
		}
		if strings.Contains(s, "mixed-port:") {
			t.Fatalf("runtime block emitted without full")
		}
	}
}

func TestRender_ProxiesVerbatimAndDeduped(t *testing.T) {
	out, err := Render(compile(t, model.Flags{}), model.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var doc struct {
		Proxies []map[string]any `yaml:"proxies"`
		Groups  []struct {
			Name          string   `yaml:"name"`
			Proxies       []string `yaml:"proxies"`
			ExcludeFilter string   `yaml:"exclude-filter"`
		} `yaml:"proxy-groups"`
		Rules []string `yaml:"rules"`
	}
	if err := yaml.Unmarshal(out, &doc); err != nil {
		t.Fatalf("output is not valid yaml: %v\n%s", err, out)
	}
	if len(doc.Proxies) != 5 {
		t.Fatalf("proxies=%d, want=5", len(doc.Proxies))
	}
	if doc.Proxies[3]["name"] != "HK 01 | #2" || doc.Proxies[3]["server"] != "hk4.example.com" {
		t.Fatalf("renamed proxy=%v", doc.Proxies[3])
	}
	if doc.Proxies[0]["password"] != "123" {
		t.Fatalf("quoted password lost its type: %#v", doc.Proxies[0]["password"])
	}
	if doc.Proxies[2]["sni"] != "hk3.example.com" {
		t.Fatalf("opaque field dropped: %v", doc.Proxies[2])
	}
	if last := doc.Rules[len(doc.Rules)-1]; last != "MATCH,选择节点" {
		t.Fatalf("last rule=%q", last)
	}

	names := make([]string, 0, len(doc.Groups))
	for _, g := range doc.Groups {
		names = append(names, g.Name)
		if g.Name == "香港节点" && g.ExcludeFilter != region.LowCostPattern {
			t.Fatalf("region exclude-filter=%q", g.ExcludeFilter)
		}
	}
	if !contains(names, "香港节点") || !contains(names, "低倍率节点") {
		t.Fatalf("groups=%v", names)
	}
}

func TestRender_ByteIdentical(t *testing.T) {
	for _, flags := range []model.Flags{{}, {Landing: true, Full: true, FakeIP: true, Global: true}} {
		a, err := Render(compile(t, flags), flags)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		b, err := Render(compile(t, flags), flags)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("outputs differ for flags %+v", flags)
		}
	}
}

func TestRender_EmptyPool(t *testing.T) {
	res, err := compiler.Compile(nil, model.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out, err := Render(res, model.Flags{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(out), "proxies: []\n") {
		t.Fatalf("unexpected head:\n%s", firstLines(out, 3))
	}
}

func TestCompose_NilResult(t *testing.T) {
	_, err := Compose(nil, model.Flags{})
	var re *RenderError
	if !errors.As(err, &re) {
		t.Fatalf("expected *RenderError, got %T (%v)", err, err)
	}
	if re.AppError.Code != "INVALID_ARGUMENT" || re.AppError.Stage != "render" {
		t.Fatalf("app error=%+v", re.AppError)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func firstLines(b []byte, n int) string {
	lines := strings.SplitN(string(b), "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}
