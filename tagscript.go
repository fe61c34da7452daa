// Package tagscript is an embeddable scripting engine for bracketed tag
// expressions interleaved with literal text.
//
// A script like
//
//	Hello {user}, you rolled {range:1-6}!
//
// is parsed into a tree of raw-text and tag nodes, then interpreted against
// an ordered list of pluggable handlers ("blocks"). The result is a Response:
// the rendered body plus side-channel actions and extension data the host
// application applies itself.
//
// # Basic Usage
//
//	interpreter := tagscript.MustNew([]tagscript.Block{
//	    blocks.NewVariableBlock(),
//	    blocks.NewIfBlock(),
//	})
//	resp, err := interpreter.Process(ctx, "Hi {user}!", map[string]tagscript.Adapter{
//	    "user": tagscript.NewStringAdapter("Alice"),
//	})
//	// resp.Body: "Hi Alice!"
//
// # Tag Syntax
//
// A tag is {declaration(parameter):payload}; parameter and payload are
// optional. Any of the three may embed nested tags, which are resolved
// depth-first before the outer tag's block runs:
//
//	{if({points}>=100):winner|loser}
//
// Structural characters are escaped with a backslash: \{literal\} renders as
// {literal}. Malformed input never fails to parse; unmatched braces degrade
// to literal text, and tags no block accepts pass through verbatim.
//
// # Custom Blocks
//
// Implement the Block interface and hand an ordered list to the interpreter;
// earlier blocks win dispatch ties. Blocks that need long-latency work (a
// remote lookup, say) additionally implement AsyncBlock and are driven by
// the AsyncInterpreter, which suspends only at block boundaries and keeps
// side effects in strict document order.
//
// # Configuration
//
// Interpreters take functional options:
//
//	interpreter, _ := tagscript.New(blockList,
//	    tagscript.WithMaxDepth(50),
//	    tagscript.WithCharLimit(20000),
//	    tagscript.WithLogger(logger),
//	)
package tagscript
