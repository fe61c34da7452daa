package blocks

import (
	"github.com/tagforge/go-tagscript"
)

// VariableBlock resolves declarations against Response.Variables: a tag
// {user} renders whatever the "user" adapter produces, and {user(id)} lets
// attribute-aware adapters pick a field. It accepts any declaration with a
// matching variable, so it belongs at the end of the block list.
type VariableBlock struct{}

// NewVariableBlock creates a VariableBlock.
func NewVariableBlock() *VariableBlock {
	return &VariableBlock{}
}

// Name implements tagscript.Block.
func (b *VariableBlock) Name() string {
	return "variable"
}

// WillAccept implements tagscript.Block.
func (b *VariableBlock) WillAccept(ctx *tagscript.Context) bool {
	_, ok := ctx.Response.Variables[ctx.Verb.Declaration]
	return ok
}

// Process implements tagscript.Block.
func (b *VariableBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	adapter, ok := ctx.Response.Variables[ctx.Verb.Declaration]
	if !ok {
		return "", false, nil
	}
	return adapter.GetValue(ctx), true, nil
}

// AssignBlock defines a variable mid-script: {=(name):value} stores "value"
// so later tags can render {name}. Aliases: assign, let, var.
type AssignBlock struct{}

// NewAssignBlock creates an AssignBlock.
func NewAssignBlock() *AssignBlock {
	return &AssignBlock{}
}

// Name implements tagscript.Block.
func (b *AssignBlock) Name() string {
	return "assign"
}

// WillAccept implements tagscript.Block.
func (b *AssignBlock) WillAccept(ctx *tagscript.Context) bool {
	switch ctx.Verb.Dec() {
	case "=", "assign", "let", "var":
		return true
	}
	return false
}

// Process implements tagscript.Block.
func (b *AssignBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	ctx.Response.Variables[ctx.Verb.Parameter] = tagscript.NewStringAdapter(ctx.Verb.Payload)
	return "", true, nil
}
