package internal

// Structural characters of the tag syntax.
const (
	CharOpenBrace  = '{'
	CharCloseBrace = '}'
	CharOpenParen  = '('
	CharCloseParen = ')'
	CharColon      = ':'
)

// DefaultEscapeChar is the escape marker used when none is configured.
const DefaultEscapeChar = '\\'

// Log message constants for the tree builder.
const (
	LogMsgTreeBuilderCreated = "tree builder created"
	LogMsgTreeBuildStart     = "tree build started"
	LogMsgTreeBuildEnd       = "tree build completed"
	LogMsgFrameDegraded      = "unterminated tag frame degraded to text"
	LogMsgEmptyDeclaration   = "empty declaration degraded to text"
)

// Log field constants for the tree builder.
const (
	LogFieldSourceLen = "source_len"
	LogFieldNodes     = "nodes"
	LogFieldOffset    = "offset"
)
