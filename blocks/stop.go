package blocks

import (
	"github.com/tagforge/go-tagscript"
)

// StopBlock halts the walk after its own node: {stop(<condition>):<message>}.
// Without a parameter it stops unconditionally. The optional payload becomes
// the stop action's payload, for hosts that want to show a reason.
// Alias: halt.
type StopBlock struct{}

// NewStopBlock creates a StopBlock.
func NewStopBlock() *StopBlock {
	return &StopBlock{}
}

// Name implements tagscript.Block.
func (b *StopBlock) Name() string {
	return "stop"
}

// WillAccept implements tagscript.Block.
func (b *StopBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "stop" || dec == "halt"
}

// Process implements tagscript.Block.
func (b *StopBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if ctx.Verb.HasParameter && !parseCondition(ctx.Verb.Parameter) {
		return "", true, nil
	}
	var payload any = true
	if ctx.Verb.HasPayload {
		payload = ctx.Verb.Payload
	}
	ctx.Response.SetAction(tagscript.ActionStop, payload)
	return "", true, nil
}
