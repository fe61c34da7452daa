package tagscript

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tagforge/go-tagscript/internal"
)

// Script is a parsed tag script: an ordered forest of raw-text and tag nodes.
// A Script can be interpreted any number of times; the tree is immutable
// after parsing.
type Script struct {
	source string
	nodes  []*internal.Node
}

// ParseConfig holds parse-time configuration.
type ParseConfig struct {
	// EscapeChar is the escape marker. Zero value means the default '\\'.
	EscapeChar byte
	// Logger receives parse-time debug logging. May be nil.
	Logger *zap.Logger
}

// Parse builds the node tree for a source string with default configuration.
// Parsing never fails: malformed spans degrade to literal text.
func Parse(source string) *Script {
	return ParseWithConfig(source, ParseConfig{})
}

// ParseWithConfig builds the node tree with explicit configuration.
func ParseWithConfig(source string, config ParseConfig) *Script {
	builderConfig := internal.DefaultTreeBuilderConfig()
	if config.EscapeChar != 0 {
		builderConfig.EscapeChar = config.EscapeChar
	}
	builder := internal.NewTreeBuilderWithConfig(source, builderConfig, config.Logger)
	return &Script{
		source: source,
		nodes:  builder.Build(),
	}
}

// Source returns the original input string.
func (s *Script) Source() string {
	return s.source
}

// Len returns the number of top-level nodes.
func (s *Script) Len() int {
	return len(s.nodes)
}

// Reconstruct concatenates the forest back into source text, equal to the
// original input modulo escape-marker removal.
func (s *Script) Reconstruct() string {
	return internal.Reconstruct(s.nodes)
}

// Dump returns a line-per-node listing of the top-level forest, for
// debugging and the CLI's check command.
func (s *Script) Dump() string {
	var sb strings.Builder
	for i, node := range s.nodes {
		fmt.Fprintf(&sb, "[%d] %s\n", i, node.String())
	}
	return sb.String()
}
