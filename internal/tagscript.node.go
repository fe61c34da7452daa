package internal

import (
	"fmt"
	"strings"
)

// NodeKind identifies the variant of a parsed node.
type NodeKind int

const (
	// NodeText is a literal text segment.
	NodeText NodeKind = iota
	// NodeTag is a bracketed tag with declaration, optional parameter and payload.
	NodeTag
)

// String returns the node kind name.
func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return NodeKindNameText
	case NodeTag:
		return NodeKindNameTag
	default:
		return NodeKindNameUnknown
	}
}

// Node is a parsed unit of a tag script. A node is either literal text
// (Kind == NodeText) or a tag (Kind == NodeTag) whose declaration, parameter
// and payload are themselves forests, since any of them may embed nested tags.
//
// Nodes are created by the tree builder and are immutable afterwards. A tag
// node keeps its verbatim source slice (braces and interior escape markers
// included) so that unhandled tags can pass through unchanged and so a parsed
// tree can reconstruct its input.
type Node struct {
	Kind NodeKind

	// Text is the escape-processed literal content. Only set for text nodes.
	Text string

	// Declaration is the forest between '{' and the first '(' / ':' / '}'.
	Declaration []*Node

	// Parameter is the forest between '(' and its matching ')'.
	// Only meaningful when HasParameter is true.
	Parameter    []*Node
	HasParameter bool

	// Payload is the forest between ':' and the closing '}'.
	// Only meaningful when HasPayload is true.
	Payload    []*Node
	HasPayload bool

	// Source is the verbatim source slice of a tag node, including the
	// surrounding braces. Empty for text nodes.
	Source string

	// Offset is the byte offset of the node start in the original input.
	Offset int
}

// NewTextNode creates a literal text node.
func NewTextNode(text string, offset int) *Node {
	return &Node{Kind: NodeText, Text: text, Offset: offset}
}

// IsText reports whether the node is a literal text segment.
func (n *Node) IsText() bool {
	return n.Kind == NodeText
}

// String returns a compact representation for debugging.
func (n *Node) String() string {
	if n.IsText() {
		text := n.Text
		if len(text) > MaxStringDisplayLength {
			text = text[:TruncatedStringLength] + TruncationSuffix
		}
		return fmt.Sprintf("TextNode{%q @ %d}", text, n.Offset)
	}
	return fmt.Sprintf("TagNode{%q param=%v payload=%v @ %d}",
		n.Source, n.HasParameter, n.HasPayload, n.Offset)
}

// Reconstruct concatenates the forest back into source text: text nodes
// contribute their escape-processed content, tag nodes their verbatim source.
// The result equals the original input modulo escape-marker removal in the
// text segments.
func Reconstruct(nodes []*Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		if n.IsText() {
			sb.WriteString(n.Text)
		} else {
			sb.WriteString(n.Source)
		}
	}
	return sb.String()
}

// Display constants for String truncation.
const (
	MaxStringDisplayLength = 40
	TruncatedStringLength  = 37
	TruncationSuffix       = "..."
)

// Node kind display names.
const (
	NodeKindNameText    = "text"
	NodeKindNameTag     = "tag"
	NodeKindNameUnknown = "unknown"
)
