package xmltree

import (
	"regexp"
	"strings"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

// Serialize renders the tree as a complete document: UTF-8 declaration,
// two-space indentation, LF line endings regardless of platform.
func Serialize(root *Node) []byte {
	var b strings.Builder
	b.WriteString(header)
	writeNode(&b, root, 0)
	b.WriteString("\n")
	return []byte(strings.ReplaceAll(b.String(), "\r\n", "\n"))
}

// SerializeFragment renders a single node compactly, with no indentation and
// inter-tag whitespace dropped. Two fragments that differ only in embedded
// whitespace serialize identically, so passthrough comparisons are stable.
func SerializeFragment(n *Node) string {
	var b strings.Builder
	writeCompact(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *Node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n.IsComment() {
		b.WriteString(indent)
		b.WriteString("<!--")
		b.WriteString(n.Comment)
		b.WriteString("-->")
		return
	}

	b.WriteString(indent)
	b.WriteString("<")
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escape(a.Value))
		b.WriteString(`"`)
	}

	text := n.OwnText()
	switch {
	case len(n.Children) == 0 && text == "":
		b.WriteString("/>")
	case len(n.Children) == 0:
		b.WriteString(">")
		b.WriteString(escape(text))
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	default:
		b.WriteString(">")
		if text != "" {
			b.WriteString(escape(text))
		}
		for _, c := range n.Children {
			b.WriteString("\n")
			writeNode(b, c, depth+1)
		}
		b.WriteString("\n")
		b.WriteString(indent)
		b.WriteString("</")
		b.WriteString(n.Tag)
		b.WriteString(">")
	}
}

func writeCompact(b *strings.Builder, n *Node) {
	if n.IsComment() {
		b.WriteString("<!--")
		b.WriteString(n.Comment)
		b.WriteString("-->")
		return
	}
	b.WriteString("<")
	b.WriteString(n.Tag)
	for _, a := range n.Attrs {
		b.WriteString(" ")
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(escape(a.Value))
		b.WriteString(`"`)
	}
	text := n.OwnText()
	if len(n.Children) == 0 && text == "" {
		b.WriteString("/>")
		return
	}
	b.WriteString(">")
	b.WriteString(escape(text))
	for _, c := range n.Children {
		writeCompact(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Tag)
	b.WriteString(">")
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

var commentPattern = regexp.MustCompile(`(?s)[ \t]*<!--.*?-->\n?`)

// StripComments removes every XML comment region from the text, along with
// surrounding line whitespace. The change-detection gate compares sidecar
// content after stripping so that volatile comments (timestamps, tool
// banners) do not force rewrites.
func StripComments(text string) string {
	return commentPattern.ReplaceAllString(text, "")
}
