package internal

import (
	"strings"

	"go.uber.org/zap"
)

// TreeBuilderConfig holds tree builder configuration.
type TreeBuilderConfig struct {
	EscapeChar byte // Escape marker (default: '\\')
}

// DefaultTreeBuilderConfig returns the default tree builder configuration.
func DefaultTreeBuilderConfig() TreeBuilderConfig {
	return TreeBuilderConfig{EscapeChar: DefaultEscapeChar}
}

// TreeBuilder parses a tag script source into a forest of nodes.
//
// Parsing is a single left-to-right scan driven by an explicit stack of
// in-progress tag frames, so parse memory is bounded by nesting depth and
// never touches the call stack. Parsing cannot fail: malformed input always
// degrades to literal text.
type TreeBuilder struct {
	source string
	escape byte
	logger *zap.Logger
}

// NewTreeBuilder creates a tree builder with default configuration.
func NewTreeBuilder(source string, logger *zap.Logger) *TreeBuilder {
	return NewTreeBuilderWithConfig(source, DefaultTreeBuilderConfig(), logger)
}

// NewTreeBuilderWithConfig creates a tree builder with custom configuration.
func NewTreeBuilderWithConfig(source string, config TreeBuilderConfig, logger *zap.Logger) *TreeBuilder {
	if logger == nil {
		logger = zap.NewNop()
	}
	escape := config.EscapeChar
	if escape == 0 {
		escape = DefaultEscapeChar
	}
	logger.Debug(LogMsgTreeBuilderCreated, zap.Int(LogFieldSourceLen, len(source)))
	return &TreeBuilder{
		source: source,
		escape: escape,
		logger: logger,
	}
}

// Collection section within one tag frame.
const (
	sectionDeclaration = iota
	sectionParameter
	sectionPayload
)

// frame is one in-progress tag on the builder stack.
type frame struct {
	start      int // offset of the opening '{'
	section    int
	decl       []*Node
	param      []*Node
	payload    []*Node
	hasParam   bool
	hasPayload bool
	parenDepth int // unclosed literal parens inside the parameter
	text       strings.Builder
	textStart  int
}

// flush moves pending literal text into the frame's current section.
func (f *frame) flush() {
	if f.text.Len() == 0 {
		return
	}
	node := NewTextNode(f.text.String(), f.textStart)
	f.text.Reset()
	f.append(node)
}

// append adds a completed node to the frame's current section.
func (f *frame) append(n *Node) {
	switch f.section {
	case sectionParameter:
		f.param = append(f.param, n)
	case sectionPayload:
		f.payload = append(f.payload, n)
	default:
		f.decl = append(f.decl, n)
	}
}

// write records a literal byte in the frame's current section.
func (f *frame) write(ch byte, offset int) {
	if f.text.Len() == 0 {
		f.textStart = offset
	}
	f.text.WriteByte(ch)
}

// Build scans the source and returns the top-level forest.
func (b *TreeBuilder) Build() []*Node {
	b.logger.Debug(LogMsgTreeBuildStart)

	var (
		root      []*Node
		rootText  strings.Builder
		rootStart int
		stack     []*frame
	)
	src := b.source

	writeRoot := func(s string, offset int) {
		if rootText.Len() == 0 {
			rootStart = offset
		}
		rootText.WriteString(s)
	}
	flushRoot := func() {
		if rootText.Len() > 0 {
			root = append(root, NewTextNode(rootText.String(), rootStart))
			rootText.Reset()
		}
	}
	// writeText records literal text at the innermost open scope.
	writeText := func(s string, offset int) {
		if len(stack) == 0 {
			writeRoot(s, offset)
			return
		}
		f := stack[len(stack)-1]
		for j := 0; j < len(s); j++ {
			f.write(s[j], offset+j)
		}
	}
	// appendNode attaches a completed tag node at the innermost open scope.
	appendNode := func(n *Node) {
		if len(stack) == 0 {
			flushRoot()
			root = append(root, n)
			return
		}
		stack[len(stack)-1].append(n)
	}

	i := 0
	for i < len(src) {
		ch := src[i]

		// Escape marker: the following structural character is literal and
		// the marker itself is dropped. A trailing or non-structural escape
		// stays literal.
		if ch == b.escape {
			if i+1 < len(src) && b.isStructural(src[i+1]) {
				writeText(string(src[i+1]), i)
				i += 2
				continue
			}
			writeText(string(ch), i)
			i++
			continue
		}

		if ch == CharOpenBrace {
			if len(stack) == 0 {
				flushRoot()
			} else {
				stack[len(stack)-1].flush()
			}
			stack = append(stack, &frame{start: i, section: sectionDeclaration})
			i++
			continue
		}

		if len(stack) == 0 {
			// Outside any tag, every other character (stray '}', '(' and
			// friends included) is plain text.
			writeRoot(string(ch), i)
			i++
			continue
		}

		f := stack[len(stack)-1]
		switch ch {
		case CharCloseBrace:
			f.flush()
			stack = stack[:len(stack)-1]
			source := src[f.start : i+1]
			if len(f.decl) == 0 {
				// A tag needs at least one declaration character.
				b.logger.Debug(LogMsgEmptyDeclaration, zap.Int(LogFieldOffset, f.start))
				writeText(source, f.start)
			} else {
				appendNode(&Node{
					Kind:         NodeTag,
					Declaration:  f.decl,
					Parameter:    f.param,
					HasParameter: f.hasParam,
					Payload:      f.payload,
					HasPayload:   f.hasPayload,
					Source:       source,
					Offset:       f.start,
				})
			}

		case CharOpenParen:
			switch {
			case f.section == sectionDeclaration && !f.hasParam:
				f.flush()
				f.section = sectionParameter
				f.hasParam = true
				f.parenDepth = 1
			case f.section == sectionParameter:
				// Parens nested inside the parameter are literal content.
				f.parenDepth++
				f.write(ch, i)
			default:
				f.write(ch, i)
			}

		case CharCloseParen:
			if f.section == sectionParameter {
				f.parenDepth--
				if f.parenDepth == 0 {
					f.flush()
					// Stray text between ')' and ':' or '}' joins the
					// declaration.
					f.section = sectionDeclaration
				} else {
					f.write(ch, i)
				}
			} else {
				f.write(ch, i)
			}

		case CharColon:
			if f.section == sectionDeclaration && !f.hasPayload {
				f.flush()
				f.section = sectionPayload
				f.hasPayload = true
			} else {
				f.write(ch, i)
			}

		default:
			f.write(ch, i)
		}
		i++
	}

	if len(stack) > 0 {
		// Unmatched '{': the entire outermost open frame, start marker
		// included, degrades back to verbatim text. Escape markers inside the
		// span are preserved so reinterpreting the output is a no-op.
		start := stack[0].start
		b.logger.Debug(LogMsgFrameDegraded, zap.Int(LogFieldOffset, start))
		stack = nil
		writeRoot(src[start:], start)
	}
	flushRoot()

	b.logger.Debug(LogMsgTreeBuildEnd, zap.Int(LogFieldNodes, len(root)))
	return root
}

// isStructural reports whether ch participates in tag syntax and therefore
// can be escaped.
func (b *TreeBuilder) isStructural(ch byte) bool {
	switch ch {
	case CharOpenBrace, CharCloseBrace, CharOpenParen, CharCloseParen, CharColon:
		return true
	}
	return ch == b.escape
}
