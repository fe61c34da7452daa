package blocks

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"strconv"
	"strings"

	"github.com/tagforge/go-tagscript"
)

// FiftyFiftyBlock renders its payload half the time and nothing the other
// half: {50:<payload>}. Aliases: 5050, ?.
type FiftyFiftyBlock struct{}

// NewFiftyFiftyBlock creates a FiftyFiftyBlock.
func NewFiftyFiftyBlock() *FiftyFiftyBlock {
	return &FiftyFiftyBlock{}
}

// Name implements tagscript.Block.
func (b *FiftyFiftyBlock) Name() string {
	return "fiftyfifty"
}

// WillAccept implements tagscript.Block.
func (b *FiftyFiftyBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "50" || dec == "5050" || dec == "?"
}

// Process implements tagscript.Block.
func (b *FiftyFiftyBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasPayload {
		return "", false, nil
	}
	if rand.Intn(2) == 0 {
		return "", true, nil
	}
	return ctx.Verb.Payload, true, nil
}

// RangeBlock picks a random number from an inclusive payload range:
// {range:1-6}. The rangef alias returns a tenths-place decimal. An optional
// parameter seeds the generator, making the pick reproducible per seed:
// {range({user}):1-6}.
type RangeBlock struct{}

// NewRangeBlock creates a RangeBlock.
func NewRangeBlock() *RangeBlock {
	return &RangeBlock{}
}

// Name implements tagscript.Block.
func (b *RangeBlock) Name() string {
	return "range"
}

// WillAccept implements tagscript.Block.
func (b *RangeBlock) WillAccept(ctx *tagscript.Context) bool {
	dec := ctx.Verb.Dec()
	return dec == "range" || dec == "rangef"
}

// Process implements tagscript.Block.
func (b *RangeBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	if !ctx.Verb.HasPayload {
		return "", false, nil
	}
	parts := strings.SplitN(ctx.Verb.Payload, "-", 2)
	if len(parts) != 2 {
		return "", false, nil
	}
	lower, errLower := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	upper, errUpper := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errLower != nil || errUpper != nil || upper < lower {
		return "", false, nil
	}

	rng := b.rng(ctx)
	if ctx.Verb.Dec() == "rangef" {
		lo, hi := int64(lower*10), int64(upper*10)
		pick := lo + rng.Int63n(hi-lo+1)
		return fmt.Sprintf("%.1f", float64(pick)/10), true, nil
	}
	lo, hi := int64(lower), int64(upper)
	return strconv.FormatInt(lo+rng.Int63n(hi-lo+1), 10), true, nil
}

// rng returns a seeded generator when the tag carries a seed parameter.
func (b *RangeBlock) rng(ctx *tagscript.Context) *rand.Rand {
	if ctx.Verb.HasParameter && ctx.Verb.Parameter != "" {
		h := fnv.New64a()
		_, _ = h.Write([]byte(ctx.Verb.Parameter))
		return rand.New(rand.NewSource(int64(h.Sum64())))
	}
	return rand.New(rand.NewSource(rand.Int63()))
}
