package model

import (
	"gopkg.in/yaml.v3"
)

// Proxy is one node of the input pool.
//
// Only Name takes part in classification and grouping. Fields keeps the
// original mapping (server, port, cipher, ...) in input order so the node is
// emitted exactly as it came in.
type Proxy struct {
	Name   string
	Fields *yaml.Node
}

// NewProxy builds a proxy whose mapping only carries the name. Mostly useful in
// tests and for callers that construct pools programmatically.
func NewProxy(name string) Proxy {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
	)
	return Proxy{Name: name, Fields: n}
}

// Rename returns a copy of p carrying the new name. The receiver and its
// mapping node are left untouched.
func (p Proxy) Rename(name string) Proxy {
	out := Proxy{Name: name, Fields: cloneNode(p.Fields)}
	if out.Fields == nil {
		return NewProxy(name)
	}
	for i := 0; i+1 < len(out.Fields.Content); i += 2 {
		if out.Fields.Content[i].Value == "name" {
			v := out.Fields.Content[i+1]
			v.Kind = yaml.ScalarNode
			v.Tag = "!!str"
			v.Style = 0
			v.Value = name
			return out
		}
	}
	out.Fields.Content = append([]*yaml.Node{
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: "name"},
		{Kind: yaml.ScalarNode, Tag: "!!str", Value: name},
	}, out.Fields.Content...)
	return out
}

// MarshalYAML emits the original mapping.
func (p Proxy) MarshalYAML() (any, error) {
	if p.Fields == nil {
		return NewProxy(p.Name).Fields, nil
	}
	return p.Fields, nil
}

func cloneNode(n *yaml.Node) *yaml.Node {
	if n == nil {
		return nil
	}
	c := *n
	// Alias targets are resolved by the decoder already; keep the pointer.
	if len(n.Content) > 0 {
		c.Content = make([]*yaml.Node, len(n.Content))
		for i, child := range n.Content {
			c.Content[i] = cloneNode(child)
		}
	}
	return &c
}
