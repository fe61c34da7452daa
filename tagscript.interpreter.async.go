package tagscript

import (
	"context"

	"go.uber.org/zap"
)

// AsyncInterpreter is the suspension-capable variant of Interpreter. It
// shares the exact tree walk, so both variants produce identical output and
// identical left-to-right side-effect ordering; the only difference is block
// dispatch. Blocks implementing AsyncBlock receive the Go context of the
// Process call and may perform long-latency work at those points, which are
// the walk's only suspension points — never mid-parse and never mid-append.
//
// Cancellation is honored before every node and every dispatch. A cancelled
// interpretation returns the context error and no Response, so no partial
// mutation is ever visible to the caller.
type AsyncInterpreter struct {
	blocks []Block
	config *interpreterConfig
	logger *zap.Logger
}

// NewAsync creates a suspension-capable interpreter over an ordered block
// list.
func NewAsync(blocks []Block, opts ...Option) (*AsyncInterpreter, error) {
	config, logger, err := buildConfig(blocks, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug(LogMsgInterpreterCreated, zap.Int(LogFieldNodes, len(blocks)))
	return &AsyncInterpreter{
		blocks: append([]Block(nil), blocks...),
		config: config,
		logger: logger,
	}, nil
}

// MustNewAsync creates a suspension-capable interpreter and panics on
// configuration error.
func MustNewAsync(blocks []Block, opts ...Option) *AsyncInterpreter {
	interpreter, err := NewAsync(blocks, opts...)
	if err != nil {
		panic(err)
	}
	return interpreter
}

// Blocks returns the dispatch-ordered block list.
func (i *AsyncInterpreter) Blocks() []Block {
	return append([]Block(nil), i.blocks...)
}

// Parse builds a Script with the interpreter's escape configuration.
func (i *AsyncInterpreter) Parse(source string) *Script {
	return ParseWithConfig(source, ParseConfig{
		EscapeChar: i.config.escapeChar,
		Logger:     i.logger,
	})
}

// Process parses and interprets an input string.
func (i *AsyncInterpreter) Process(ctx context.Context, input string, seed map[string]Adapter) (*Response, error) {
	return i.ProcessScript(ctx, i.Parse(input), seed)
}

// ProcessScript interprets an already-built Script.
func (i *AsyncInterpreter) ProcessScript(ctx context.Context, script *Script, seed map[string]Adapter) (*Response, error) {
	w := &walker{
		blocks:   i.blocks,
		config:   i.config,
		logger:   i.logger,
		engine:   i,
		dispatch: dispatchAsync,
	}
	return w.run(ctx, script, seed)
}

// dispatchAsync prefers AsyncBlock.ProcessAsync and re-checks cancellation
// at the suspension boundary before handing control to the block.
func dispatchAsync(goCtx context.Context, b Block, tctx *Context) (string, bool, error) {
	if err := goCtx.Err(); err != nil {
		return "", false, err
	}
	if ab, ok := b.(AsyncBlock); ok {
		return ab.ProcessAsync(goCtx, tctx)
	}
	return b.Process(tctx)
}
