package blocks

import (
	"strconv"
	"strings"

	"github.com/tagforge/go-tagscript"
)

// ReplaceBlock substitutes every occurrence of the first parameter part with
// the second in its payload: {replace(<old>,<new>):<text>}.
type ReplaceBlock struct{}

// NewReplaceBlock creates a ReplaceBlock.
func NewReplaceBlock() *ReplaceBlock {
	return &ReplaceBlock{}
}

// Name implements tagscript.Block.
func (b *ReplaceBlock) Name() string {
	return "replace"
}

// WillAccept implements tagscript.Block.
func (b *ReplaceBlock) WillAccept(ctx *tagscript.Context) bool {
	return ctx.Verb.Dec() == "replace"
}

// Process implements tagscript.Block.
func (b *ReplaceBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	parts := strings.SplitN(ctx.Verb.Parameter, ",", 2)
	if len(parts) != 2 {
		return "", false, nil
	}
	return strings.ReplaceAll(ctx.Verb.Payload, parts[0], parts[1]), true, nil
}

// MembershipBlock answers membership queries against its payload:
//
//	{in(<substring>):<text>}       substring match, "true"/"false"
//	{contains(<word>):<text>}      exact word match, "true"/"false"
//	{index(<word>):<text>}         position in space-split text, -1 if absent
type MembershipBlock struct{}

// NewMembershipBlock creates a MembershipBlock.
func NewMembershipBlock() *MembershipBlock {
	return &MembershipBlock{}
}

// Name implements tagscript.Block.
func (b *MembershipBlock) Name() string {
	return "membership"
}

// WillAccept implements tagscript.Block.
func (b *MembershipBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "contains" || dec == "in" || dec == "index"
}

// Process implements tagscript.Block.
func (b *MembershipBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}
	switch ctx.Verb.Dec() {
	case "contains":
		for _, word := range strings.Fields(ctx.Verb.Payload) {
			if word == ctx.Verb.Parameter {
				return "true", true, nil
			}
		}
		return "false", true, nil
	case "in":
		return strconv.FormatBool(strings.Contains(ctx.Verb.Payload, ctx.Verb.Parameter)), true, nil
	default: // index
		for i, word := range strings.Fields(strings.TrimSpace(ctx.Verb.Payload)) {
			if word == ctx.Verb.Parameter {
				return strconv.Itoa(i), true, nil
			}
		}
		return "-1", true, nil
	}
}
