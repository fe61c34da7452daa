package tagscript

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring an interpreter.
type Option func(*interpreterConfig)

// interpreterConfig holds the internal configuration shared by both
// interpreter variants. It is read-only once the interpreter is constructed.
type interpreterConfig struct {
	escapeChar byte
	maxDepth   int
	charLimit  int
	bestEffort bool
	trimBody   bool
	logger     *zap.Logger
	metrics    *Metrics
}

// defaultInterpreterConfig returns the default configuration.
func defaultInterpreterConfig() *interpreterConfig {
	return &interpreterConfig{
		escapeChar: DefaultEscapeChar,
		maxDepth:   DefaultMaxDepth,
		charLimit:  DefaultCharLimit,
		bestEffort: false,
		logger:     nil,
		metrics:    nil,
	}
}

// WithEscapeChar sets the escape marker recognized in front of structural
// characters. Default: '\\'
func WithEscapeChar(ch byte) Option {
	return func(c *interpreterConfig) {
		if ch != 0 {
			c.escapeChar = ch
		}
	}
}

// WithMaxDepth sets the maximum recursive resolution depth. A tag nested
// deeper resolves to its unchanged source text. Use 0 for unlimited.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *interpreterConfig) {
		c.maxDepth = depth
	}
}

// WithCharLimit caps cumulative block output per interpretation. A block
// result that would exceed the cap is discarded and the tag passes through
// unchanged. Use 0 for unlimited. Default: 0
func WithCharLimit(limit int) Option {
	return func(c *interpreterConfig) {
		c.charLimit = limit
	}
}

// WithTrimmedBody trims surrounding newlines and spaces from Response.Body
// at finalization. Off by default so tag-free input renders byte-identical.
// Default: false
func WithTrimmedBody(enabled bool) Option {
	return func(c *interpreterConfig) {
		c.trimBody = enabled
	}
}

// WithBestEffort degrades block-internal failures to raw tag passthrough
// instead of failing the whole interpretation. Default: false
func WithBestEffort(enabled bool) Option {
	return func(c *interpreterConfig) {
		c.bestEffort = enabled
	}
}

// WithLogger sets the logger for the interpreter.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *interpreterConfig) {
		c.logger = logger
	}
}

// WithMetrics attaches a metrics collector to the interpreter.
// Default: nil (no metrics)
func WithMetrics(metrics *Metrics) Option {
	return func(c *interpreterConfig) {
		c.metrics = metrics
	}
}
