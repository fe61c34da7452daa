package tagscript

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tagforge/go-tagscript/internal"
)

// Interpreter is the blocking tag script engine. It walks a parsed forest in
// document order, recursively resolves nested tags, and dispatches each tag
// to the first accepting block.
//
// An Interpreter is immutable after construction; independent Process calls
// may run fully concurrently since every call gets its own Response and walk
// state.
type Interpreter struct {
	blocks []Block
	config *interpreterConfig
	logger *zap.Logger
}

// New creates a blocking interpreter over an ordered block list. Block order
// is dispatch priority: earlier blocks win ties.
func New(blocks []Block, opts ...Option) (*Interpreter, error) {
	config, logger, err := buildConfig(blocks, opts)
	if err != nil {
		return nil, err
	}
	logger.Debug(LogMsgInterpreterCreated, zap.Int(LogFieldNodes, len(blocks)))
	return &Interpreter{
		blocks: append([]Block(nil), blocks...),
		config: config,
		logger: logger,
	}, nil
}

// MustNew creates a blocking interpreter and panics on configuration error.
func MustNew(blocks []Block, opts ...Option) *Interpreter {
	interpreter, err := New(blocks, opts...)
	if err != nil {
		panic(err)
	}
	return interpreter
}

// buildConfig applies options and validates the block list.
func buildConfig(blocks []Block, opts []Option) (*interpreterConfig, *zap.Logger, error) {
	for _, b := range blocks {
		if b == nil {
			return nil, nil, NewNilBlockError()
		}
	}
	config := defaultInterpreterConfig()
	for _, opt := range opts {
		opt(config)
	}
	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return config, logger, nil
}

// Blocks returns the dispatch-ordered block list.
func (i *Interpreter) Blocks() []Block {
	return append([]Block(nil), i.blocks...)
}

// Parse builds a Script with the interpreter's escape configuration.
func (i *Interpreter) Parse(source string) *Script {
	return ParseWithConfig(source, ParseConfig{
		EscapeChar: i.config.escapeChar,
		Logger:     i.logger,
	})
}

// Process parses and interprets an input string. The seed variables become
// Response.Variables; a nil seed is allowed.
func (i *Interpreter) Process(ctx context.Context, input string, seed map[string]Adapter) (*Response, error) {
	return i.ProcessScript(ctx, i.Parse(input), seed)
}

// ProcessScript interprets an already-built Script.
func (i *Interpreter) ProcessScript(ctx context.Context, script *Script, seed map[string]Adapter) (*Response, error) {
	w := &walker{
		blocks:   i.blocks,
		config:   i.config,
		logger:   i.logger,
		engine:   i,
		dispatch: dispatchBlocking,
	}
	return w.run(ctx, script, seed)
}

// dispatchBlocking invokes Block.Process directly; the blocking variant
// never suspends.
func dispatchBlocking(_ context.Context, b Block, tctx *Context) (string, bool, error) {
	return b.Process(tctx)
}

// walkState is the per-call mutable state of one interpretation.
type walkState struct {
	resp     *Response
	original string
	work     int // cumulative block output length
	stopped  bool
}

// walker carries the tree-walk shared by both interpreter variants. The
// variants differ only in how a block is dispatched, which keeps their
// semantics provably identical.
type walker struct {
	blocks   []Block
	config   *interpreterConfig
	logger   *zap.Logger
	engine   Engine
	dispatch func(goCtx context.Context, b Block, tctx *Context) (string, bool, error)
}

// run drives one full interpretation and finalizes the Response. The
// Response is only returned on completion; a cancelled or failed walk
// discards it.
func (w *walker) run(goCtx context.Context, script *Script, seed map[string]Adapter) (*Response, error) {
	start := time.Now()
	w.logger.Debug(LogMsgProcessStart, zap.Int(LogFieldNodes, script.Len()))

	st := &walkState{
		resp:     NewResponse(seed),
		original: script.Source(),
	}
	body, err := w.walk(goCtx, script.nodes, st, 0)
	if err != nil {
		if goCtx.Err() != nil {
			w.logger.Debug(LogMsgProcessCancelled)
		}
		return nil, err
	}

	if w.config.trimBody {
		body = strings.Trim(body, "\n ")
	}
	st.resp.Body = body

	elapsed := time.Since(start)
	w.config.metrics.observeInterpretation(elapsed)
	w.logger.Debug(LogMsgProcessEnd, zap.Duration(LogFieldElapsed, elapsed))
	return st.resp, nil
}

// walk renders a forest depth-first, left to right. Only the top-level call
// feeds Response.Body; nested calls resolve tag sections to strings.
func (w *walker) walk(goCtx context.Context, nodes []*internal.Node, st *walkState, depth int) (string, error) {
	var sb strings.Builder
	for _, node := range nodes {
		if st.stopped {
			break
		}
		if err := goCtx.Err(); err != nil {
			return "", err
		}
		if node.IsText() {
			sb.WriteString(node.Text)
			continue
		}
		output, err := w.evalTag(goCtx, node, st, depth)
		if err != nil {
			return "", err
		}
		sb.WriteString(output)
		if st.resp.HasAction(ActionStop) && !st.stopped {
			st.stopped = true
			w.logger.Debug(LogMsgWalkStopped)
		}
	}
	return sb.String(), nil
}

// evalTag resolves one tag node: nested declaration/parameter/payload first,
// then block dispatch in priority order. Every recoverable condition (depth
// overrun, workload overrun, no acceptor) resolves to the tag's unchanged
// source text.
func (w *walker) evalTag(goCtx context.Context, node *internal.Node, st *walkState, depth int) (string, error) {
	if w.config.maxDepth > 0 && depth >= w.config.maxDepth {
		w.logger.Debug(LogMsgDepthExceeded,
			zap.Int(LogFieldDepth, depth),
			zap.Int(LogFieldOffset, node.Offset))
		w.config.metrics.observeOverrun(OverrunKindDepth)
		return node.Source, nil
	}

	verb := &Verb{
		HasParameter: node.HasParameter,
		HasPayload:   node.HasPayload,
		Source:       node.Source,
	}
	var err error
	if verb.Declaration, err = w.walk(goCtx, node.Declaration, st, depth+1); err != nil {
		return "", err
	}
	if node.HasParameter {
		if verb.Parameter, err = w.walk(goCtx, node.Parameter, st, depth+1); err != nil {
			return "", err
		}
	}
	if node.HasPayload {
		if verb.Payload, err = w.walk(goCtx, node.Payload, st, depth+1); err != nil {
			return "", err
		}
	}

	tctx := &Context{
		Verb:        verb,
		Response:    st.resp,
		Interpreter: w.engine,
		Ctx:         goCtx,
		Original:    st.original,
	}

	for _, b := range w.blocks {
		if !b.WillAccept(tctx) {
			continue
		}
		output, handled, err := w.dispatch(goCtx, b, tctx)
		if err != nil {
			// Cancellation surfacing through a block is not a block failure.
			if ctxErr := goCtx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			w.config.metrics.observeBlockError()
			if w.config.bestEffort {
				w.logger.Warn(LogMsgBlockDegraded,
					zap.String(LogFieldBlock, b.Name()),
					zap.String(LogFieldVerb, verb.Declaration),
					zap.Error(err))
				return node.Source, nil
			}
			w.logger.Debug(LogMsgBlockError,
				zap.String(LogFieldBlock, b.Name()),
				zap.Error(err))
			return "", NewBlockProcessError(b.Name(), verb.Declaration, node.Source, node.Offset, err)
		}
		if !handled {
			w.logger.Debug(LogMsgBlockDeclined, zap.String(LogFieldBlock, b.Name()))
			continue
		}

		if w.config.charLimit > 0 {
			if st.work+len(output) > w.config.charLimit {
				w.logger.Debug(LogMsgCharLimitExceeded,
					zap.Int(LogFieldWork, st.work+len(output)),
					zap.Int(LogFieldLimit, w.config.charLimit))
				w.config.metrics.observeOverrun(OverrunKindCharLimit)
				return node.Source, nil
			}
			st.work += len(output)
		}

		w.config.metrics.observeDispatch(b.Name())
		w.logger.Debug(LogMsgBlockDispatched,
			zap.String(LogFieldBlock, b.Name()),
			zap.String(LogFieldVerb, verb.Declaration))
		return output, nil
	}

	// Fail-open: unknown tags pass through as their literal source.
	w.config.metrics.observePassthrough()
	w.logger.Debug(LogMsgTagPassthrough, zap.String(LogFieldVerb, verb.Declaration))
	return node.Source, nil
}
