package blocks

import (
	"github.com/tagforge/go-tagscript"
)

// IfBlock evaluates a boolean parameter and renders one branch of its
// payload: {if(<condition>):<true>|<false>}.
//
// Conditions compare two operands with ==, !=, >=, <=, > or <; numbers
// compare numerically, everything else as strings. Nested tags in the
// condition are resolved before the block runs, so
// {if({points}>=100):winner|loser} works as expected.
type IfBlock struct{}

// NewIfBlock creates an IfBlock.
func NewIfBlock() *IfBlock {
	return &IfBlock{}
}

// Name implements tagscript.Block.
func (b *IfBlock) Name() string {
	return "if"
}

// WillAccept implements tagscript.Block.
func (b *IfBlock) WillAccept(ctx *tagscript.Context) bool {
	return ctx.Verb.Dec() == "if"
}

// Process implements tagscript.Block.
func (b *IfBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	result := parseCondition(ctx.Verb.Parameter)
	return parseIntoOutput(ctx.Verb.Payload, result), true, nil
}

// AnyBlock renders the true branch when at least one of a |-separated list
// of conditions holds: {any(<c1>|<c2>|...):<true>|<false>}. Alias: or.
type AnyBlock struct{}

// NewAnyBlock creates an AnyBlock.
func NewAnyBlock() *AnyBlock {
	return &AnyBlock{}
}

// Name implements tagscript.Block.
func (b *AnyBlock) Name() string {
	return "any"
}

// WillAccept implements tagscript.Block.
func (b *AnyBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "any" || dec == "or"
}

// Process implements tagscript.Block.
func (b *AnyBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	result := false
	for _, r := range parseConditionList(ctx.Verb.Parameter) {
		if r {
			result = true
			break
		}
	}
	return parseIntoOutput(ctx.Verb.Payload, result), true, nil
}

// AllBlock renders the true branch when every condition in a |-separated
// list holds: {all(<c1>|<c2>|...):<true>|<false>}. Alias: and.
type AllBlock struct{}

// NewAllBlock creates an AllBlock.
func NewAllBlock() *AllBlock {
	return &AllBlock{}
}

// Name implements tagscript.Block.
func (b *AllBlock) Name() string {
	return "all"
}

// WillAccept implements tagscript.Block.
func (b *AllBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "all" || dec == "and"
}

// Process implements tagscript.Block.
func (b *AllBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	result := true
	for _, r := range parseConditionList(ctx.Verb.Parameter) {
		if !r {
			result = false
			break
		}
	}
	return parseIntoOutput(ctx.Verb.Payload, result), true, nil
}
