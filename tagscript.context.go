package tagscript

import "context"

// Context is the per-tag evaluation handle passed to blocks. It is created
// fresh for every tag node and discarded after dispatch; state that must
// outlive a single tag goes through Response.Extra or Response.Actions.
type Context struct {
	// Verb is the resolved declaration/parameter/payload of the tag.
	Verb *Verb

	// Response is the shared accumulator for this interpretation.
	Response *Response

	// Interpreter is the engine evaluating this tag, for blocks that need to
	// interpret sub-scripts with the same handler set.
	Interpreter Engine

	// Ctx is the Go context of the surrounding Process call. Blocks doing
	// long-latency work must honor its cancellation.
	Ctx context.Context

	// Original is the input the surrounding Process call started from.
	Original string
}
