// Package source reads the input node pool: a Clash/mihomo style document with
// a top-level proxies list, or a bare list. JSON is accepted as YAML.
package source

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/John-Robertt/override-go/internal/model"
)

const stage = "parse_proxies"

type ParseError struct {
	AppError model.AppError
	Cause    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.AppError.Code, e.AppError.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.AppError.Code, e.AppError.Message, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// ParseProxiesYAML parses the node pool. Other top-level keys of a full config
// are ignored. Each entry keeps its fields in input order; anchors and aliases
// are expanded so every node stands alone.
func ParseProxiesYAML(sourceURL string, content string) ([]model.Proxy, error) {
	root, err := decodeSingle(content)
	if err != nil {
		return nil, &ParseError{
			AppError: model.AppError{
				Code:    "PROXIES_PARSE_ERROR",
				Message: "节点列表 YAML/JSON 解析失败",
				Stage:   stage,
				URL:     sourceURL,
				Snippet: truncateSnippet(content, 200),
			},
			Cause: err,
		}
	}

	list, err := proxyList(root)
	if err != nil {
		return nil, &ParseError{
			AppError: model.AppError{
				Code:    "PROXIES_VALIDATE_ERROR",
				Message: err.Error(),
				Stage:   stage,
				URL:     sourceURL,
				Line:    root.Line,
				Hint:    "expected: proxies: [{name: ..., type: ..., ...}] or a bare list",
			},
		}
	}
	if list == nil {
		return []model.Proxy{}, nil
	}

	out := make([]model.Proxy, 0, len(list.Content))
	budget := maxNodes
	for i, item := range list.Content {
		item = resolve(item)
		if item.Kind != yaml.MappingNode {
			return nil, entryError(sourceURL, item, fmt.Sprintf("第 %d 个节点不是映射", i+1))
		}
		name, ok := nameOf(item)
		if !ok {
			return nil, entryError(sourceURL, item, fmt.Sprintf("第 %d 个节点缺少 name", i+1))
		}
		fields := detach(item, &budget)
		if fields == nil {
			return nil, entryError(sourceURL, item, "锚点展开后节点过大")
		}
		out = append(out, model.Proxy{Name: name, Fields: fields})
	}
	return out, nil
}

func entryError(sourceURL string, n *yaml.Node, msg string) error {
	snippet, _ := yaml.Marshal(n)
	return &ParseError{
		AppError: model.AppError{
			Code:    "PROXIES_VALIDATE_ERROR",
			Message: msg,
			Stage:   stage,
			URL:     sourceURL,
			Line:    n.Line,
			Snippet: truncateSnippet(string(snippet), 200),
		},
	}
}

func decodeSingle(content string) (*yaml.Node, error) {
	dec := yaml.NewDecoder(strings.NewReader(content))
	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("document is empty")
		}
		return nil, err
	}

	// Reject multi-document YAML to keep behavior deterministic.
	var extra yaml.Node
	if err := dec.Decode(&extra); err == nil {
		return nil, errors.New("multiple YAML documents are not allowed")
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("document is empty")
	}
	return resolve(doc.Content[0]), nil
}

// proxyList returns the sequence holding the nodes, or nil for an explicitly
// empty proxies key.
func proxyList(root *yaml.Node) (*yaml.Node, error) {
	switch root.Kind {
	case yaml.SequenceNode:
		return root, nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(root.Content); i += 2 {
			if root.Content[i].Value != "proxies" {
				continue
			}
			v := resolve(root.Content[i+1])
			switch {
			case v.Kind == yaml.SequenceNode:
				return v, nil
			case v.Kind == yaml.ScalarNode && v.Tag == "!!null":
				return nil, nil
			default:
				return nil, errors.New("proxies 必须是列表")
			}
		}
		return nil, errors.New("缺少 proxies 字段")
	default:
		return nil, errors.New("顶层必须是映射或列表")
	}
}

func nameOf(m *yaml.Node) (string, bool) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value != "name" {
			continue
		}
		v := resolve(m.Content[i+1])
		if v.Kind != yaml.ScalarNode || v.Tag == "!!null" || strings.TrimSpace(v.Value) == "" {
			return "", false
		}
		return v.Value, true
	}
	return "", false
}

func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// maxNodes caps the node count after alias expansion.
const maxNodes = 1 << 20

// detach deep-copies n with aliases expanded, anchors and comments dropped
// and block style forced, so JSON input renders like YAML input. A non-string
// scalar under "name" is retagged as a string.
// It returns nil once budget is spent.
func detach(n *yaml.Node, budget *int) *yaml.Node {
	if *budget <= 0 {
		return nil
	}
	*budget--
	n = resolve(n)
	c := &yaml.Node{
		Kind:   n.Kind,
		Style:  n.Style &^ yaml.FlowStyle,
		Tag:    n.Tag,
		Value:  n.Value,
		Line:   n.Line,
		Column: n.Column,
	}
	if n.Kind == yaml.ScalarNode {
		return c
	}
	c.Content = make([]*yaml.Node, 0, len(n.Content))
	for i, child := range n.Content {
		d := detach(child, budget)
		if d == nil {
			return nil
		}
		if n.Kind == yaml.MappingNode && d.Kind == yaml.ScalarNode {
			switch {
			case i%2 == 0:
				// Keys are re-quoted by the encoder only when needed.
				d.Style = 0
			case n.Content[i-1].Value == "name":
				d.Tag = "!!str"
			}
		}
		c.Content = append(c.Content, d)
	}
	return c
}

func truncateSnippet(s string, max int) string {
	s = strings.ReplaceAll(s, "\r", "")
	s = strings.ReplaceAll(s, "\n", "")
	if max <= 0 {
		return ""
	}
	if len(s) <= max {
		return s
	}
	return s[:max]
}
