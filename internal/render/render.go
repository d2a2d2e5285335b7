// Package render composes the final mihomo configuration document from a
// compiled result and the preset tables.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/override-go/internal/compiler"
	"github.com/John-Robertt/override-go/internal/model"
	"github.com/John-Robertt/override-go/internal/preset"
	"github.com/John-Robertt/override-go/internal/rules"
)

type RenderError struct {
	AppError model.AppError
	Cause    error
}

func (e *RenderError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *RenderError) Unwrap() error { return e.Cause }

// Compose builds the document as an ordered mapping node:
//
//	proxies, [runtime keys], proxy-groups, rule-providers, rules,
//	sniffer, dns, geodata-mode, geox-url
//
// The returned tree does not share nodes with res.
func Compose(res *compiler.Result, flags model.Flags) (*yaml.Node, error) {
	if res == nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "INVALID_ARGUMENT",
				Message: "render input 不能为空",
				Stage:   "render",
			},
		}
	}

	ruleList, err := rules.ParseTable("preset", preset.Rules())
	if err != nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "PRESET_INVALID",
				Message: "内置规则表不合法",
				Stage:   "render",
			},
			Cause: err,
		}
	}
	ruleLines := make([]string, 0, len(ruleList))
	for _, r := range ruleList {
		ruleLines = append(ruleLines, rules.Format(r))
	}

	doc := &mapping{node: &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}}
	proxies := res.Proxies
	if proxies == nil {
		proxies = []model.Proxy{}
	}
	doc.add("proxies", proxies)
	if flags.Full {
		doc.splice(preset.RuntimeSettings(flags.IPv6, flags.KeepAlive))
	}
	doc.add("proxy-groups", res.Groups)
	doc.addProviders(preset.RuleProviders())
	doc.add("rules", ruleLines)
	doc.add("sniffer", preset.SnifferConfig())
	doc.add("dns", preset.DNSConfig(flags.IPv6, flags.FakeIP))
	doc.add("geodata-mode", true)
	doc.add("geox-url", preset.GeoxURLs())

	if doc.err != nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "RENDER_ENCODE_ERROR",
				Message: "配置编码失败",
				Stage:   "render",
			},
			Cause: doc.err,
		}
	}
	return doc.node, nil
}

// Render composes the document and encodes it with a two-space indent.
// Identical input produces identical bytes.
func Render(res *compiler.Result, flags model.Flags) ([]byte, error) {
	node, err := Compose(res, flags)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "RENDER_ENCODE_ERROR",
				Message: "配置编码失败",
				Stage:   "render",
			},
			Cause: err,
		}
	}
	if err := enc.Close(); err != nil {
		return nil, &RenderError{
			AppError: model.AppError{
				Code:    "RENDER_ENCODE_ERROR",
				Message: "配置编码失败",
				Stage:   "render",
			},
			Cause: err,
		}
	}
	return buf.Bytes(), nil
}

// mapping appends key/value pairs and keeps the first encoding error.
type mapping struct {
	node *yaml.Node
	err  error
}

func (m *mapping) add(key string, v any) {
	if m.err != nil {
		return
	}
	val, err := encode(v)
	if err != nil {
		m.err = fmt.Errorf("%s: %w", key, err)
		return
	}
	m.node.Content = append(m.node.Content, scalar(key), val)
}

// splice copies the top-level pairs of v into the document.
func (m *mapping) splice(v any) {
	if m.err != nil {
		return
	}
	val, err := encode(v)
	if err != nil {
		m.err = err
		return
	}
	if val.Kind != yaml.MappingNode {
		m.err = fmt.Errorf("splice: expected mapping, got kind %d", val.Kind)
		return
	}
	m.node.Content = append(m.node.Content, val.Content...)
}

func (m *mapping) addProviders(providers []preset.RuleProvider) {
	if m.err != nil {
		return
	}
	out := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, p := range providers {
		val, err := encode(p)
		if err != nil {
			m.err = fmt.Errorf("rule-providers.%s: %w", p.Name, err)
			return
		}
		out.Content = append(out.Content, scalar(p.Name), val)
	}
	m.node.Content = append(m.node.Content, scalar("rule-providers"), out)
}

func encode(v any) (*yaml.Node, error) {
	var n yaml.Node
	if err := n.Encode(v); err != nil {
		return nil, err
	}
	return &n, nil
}

func scalar(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// Convert runs the whole pipeline on an already parsed pool.
func Convert(proxies []model.Proxy, flags model.Flags) ([]byte, error) {
	res, err := compiler.Compile(proxies, flags)
	if err != nil {
		return nil, err
	}
	return Render(res, flags)
}
