package tagscript

import "context"

// Block is a pluggable tag handler. Blocks are tried in the order the caller
// registered them; the first block that accepts a verb and produces output
// wins. Returning handled == false from Process declines the tag so later
// acceptors still get a chance, mirroring WillAccept acceptance being a
// cheap pre-filter rather than a commitment.
//
// A non-nil error means the block genuinely malfunctioned; it is never used
// for ordinary control flow such as a missing payload.
type Block interface {
	// Name identifies the block in logs, metrics and errors.
	Name() string

	// WillAccept reports whether the block wants to try this verb.
	WillAccept(ctx *Context) bool

	// Process evaluates the tag. The output replaces the tag in the rendered
	// body when handled is true; handled == false declines.
	Process(ctx *Context) (output string, handled bool, err error)
}

// AsyncBlock is a Block whose processing may involve long-latency work such
// as a remote lookup. The async interpreter dispatches ProcessAsync at its
// suspension points; the blocking interpreter falls back to Process.
type AsyncBlock interface {
	Block

	// ProcessAsync is Process with the surrounding call's Go context, so the
	// block can run remote operations and honor cancellation.
	ProcessAsync(goCtx context.Context, ctx *Context) (output string, handled bool, err error)
}

// Engine is the evaluation capability an interpreter exposes to blocks, so a
// block can interpret sub-scripts against the same handler set.
type Engine interface {
	Process(ctx context.Context, input string, seed map[string]Adapter) (*Response, error)
}
