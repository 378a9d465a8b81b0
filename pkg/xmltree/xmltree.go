// Package xmltree provides a tolerant XML document tree for sidecar metadata
// files. Unlike struct-tag decoding, the tree keeps every element it does not
// recognize, which is what allows unknown tags to survive a read-modify-write
// cycle verbatim.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is one element or comment in the document tree. A node with a
// non-empty Comment holds no element data.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string // character data directly owned by this element
	Children []*Node
	Comment  string
}

// NewElement creates an element node with the given tag and text.
func NewElement(tag, text string) *Node {
	return &Node{Tag: tag, Text: text}
}

// NewComment creates a comment node.
func NewComment(text string) *Node {
	return &Node{Comment: text}
}

// IsComment reports whether the node is a comment rather than an element.
func (n *Node) IsComment() bool {
	return n.Comment != ""
}

// Append adds a child node and returns it.
func (n *Node) Append(child *Node) *Node {
	n.Children = append(n.Children, child)
	return child
}

// AppendElement adds a child element with the given tag and text and
// returns it.
func (n *Node) AppendElement(tag, text string) *Node {
	return n.Append(NewElement(tag, text))
}

// Child returns the single direct child element with the given tag.
// It returns nil when no such child exists, and also when more than one
// exists: an ambiguous single lookup must not silently pick one.
func (n *Node) Child(tag string) *Node {
	var found *Node
	for _, c := range n.Children {
		if c.IsComment() || !strings.EqualFold(c.Tag, tag) {
			continue
		}
		if found != nil {
			return nil
		}
		found = c
	}
	return found
}

// ChildList returns all direct child elements with the given tag, in
// document order.
func (n *Node) ChildList(tag string) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if !c.IsComment() && strings.EqualFold(c.Tag, tag) {
			out = append(out, c)
		}
	}
	return out
}

// OwnText returns the character data directly owned by the element,
// excluding text that belongs to descendant elements.
func (n *Node) OwnText() string {
	return strings.TrimSpace(n.Text)
}

// Attr returns the value of the named attribute, or "" when absent.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			return a.Value
		}
	}
	return ""
}

// SetAttr sets or replaces the named attribute.
func (n *Node) SetAttr(name, value string) {
	for i, a := range n.Attrs {
		if strings.EqualFold(a.Name, name) {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// Parse decodes raw bytes into a document tree. The decoder is deliberately
// lax (unclosed HTML-style tags, HTML entities, missing declarations) because
// sidecar files in the wild are produced by many tools of varying quality.
// It fails only when the input cannot be tokenized as XML at all.
func Parse(data []byte) (*Node, error) {
	dec := xml.NewDecoder(strings.NewReader(strings.ToValidUTF8(string(data), "")))
	dec.Strict = false
	dec.AutoClose = xml.HTMLAutoClose
	dec.Entity = xml.HTMLEntity

	var root *Node
	var stack []*Node

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: t.Name.Local}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: a.Name.Local, Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					// Content after the root element; ignore it.
					if err := dec.Skip(); err != nil {
						return nil, fmt.Errorf("parse xml: %w", err)
					}
					continue
				}
				root = node
			} else {
				stack[len(stack)-1].Append(node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		case xml.Comment:
			if len(stack) > 0 {
				stack[len(stack)-1].Append(NewComment(string(t)))
			}
		}
	}

	if root == nil {
		return nil, fmt.Errorf("parse xml: no root element")
	}
	return root, nil
}

// ParseFragment decodes a serialized fragment back into a node. Used when
// re-emitting passthrough fragments on write.
func ParseFragment(fragment string) (*Node, error) {
	return Parse([]byte(fragment))
}
