package tagscript

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// echoBlock resolves {echo:payload} to its payload.
type echoBlock struct{}

func (echoBlock) Name() string { return "echo" }

func (echoBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "echo" }

func (echoBlock) Process(ctx *Context) (string, bool, error) {
	return ctx.Verb.Payload, true, nil
}

// upperBlock resolves {upper:payload} to the upper-cased payload.
type upperBlock struct{}

func (upperBlock) Name() string { return "upper" }

func (upperBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "upper" }

func (upperBlock) Process(ctx *Context) (string, bool, error) {
	return strings.ToUpper(ctx.Verb.Payload), true, nil
}

// traceBlock records the order tags reach it and outputs nothing.
type traceBlock struct {
	seen []string
}

func (t *traceBlock) Name() string { return "trace" }

func (t *traceBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "trace" }

func (t *traceBlock) Process(ctx *Context) (string, bool, error) {
	t.seen = append(t.seen, ctx.Verb.Payload)
	return "", true, nil
}

// failBlock always returns an error.
type failBlock struct{}

func (failBlock) Name() string { return "fail" }

func (failBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "fail" }

func (failBlock) Process(ctx *Context) (string, bool, error) {
	return "", false, errors.New("boom")
}

// declineBlock accepts every tag but never handles it.
type declineBlock struct{}

func (declineBlock) Name() string { return "decline" }

func (declineBlock) WillAccept(*Context) bool { return true }

func (declineBlock) Process(*Context) (string, bool, error) {
	return "", false, nil
}

// haltBlock sets the stop action.
type haltBlock struct{}

func (haltBlock) Name() string { return "halt" }

func (haltBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "halt" }

func (haltBlock) Process(ctx *Context) (string, bool, error) {
	ctx.Response.SetAction(ActionStop, true)
	return "", true, nil
}

func testBlocks(extra ...Block) []Block {
	blocks := []Block{echoBlock{}, upperBlock{}, haltBlock{}}
	return append(blocks, extra...)
}

func TestInterpreter_TagFreeInputIsIdentity(t *testing.T) {
	interp := MustNew(testBlocks())
	inputs := []string{
		"",
		"plain text",
		"  leading and trailing  ",
		"\nmultiline\nbody\n",
		"stray } and ) and : chars",
	}
	for _, input := range inputs {
		resp, err := interp.Process(context.Background(), input, nil)
		require.NoError(t, err)
		assert.Equal(t, input, resp.Body, "input %q", input)
	}
}

func TestInterpreter_SimpleTag(t *testing.T) {
	interp := MustNew(testBlocks())
	resp, err := interp.Process(context.Background(), "say {echo:hello}!", nil)
	require.NoError(t, err)
	assert.Equal(t, "say hello!", resp.Body)
}

func TestInterpreter_UnknownTagPassesThrough(t *testing.T) {
	interp := MustNew(testBlocks())
	input := "before {unknown(p):x} after"

	resp, err := interp.Process(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, input, resp.Body)

	// Passthrough output is stable under reinterpretation.
	again, err := interp.Process(context.Background(), resp.Body, nil)
	require.NoError(t, err)
	assert.Equal(t, resp.Body, again.Body)
}

func TestInterpreter_MalformedInputPassesThrough(t *testing.T) {
	interp := MustNew(testBlocks())
	inputs := []string{
		"broken {echo:no close",
		"empty {} braces",
		"{:payload without declaration}",
	}
	for _, input := range inputs {
		resp, err := interp.Process(context.Background(), input, nil)
		require.NoError(t, err)
		assert.Equal(t, input, resp.Body, "input %q", input)
	}
}

func TestInterpreter_NestedTagsResolveInsideOut(t *testing.T) {
	interp := MustNew(testBlocks())
	resp, err := interp.Process(context.Background(), "{upper:{echo:abc}}", nil)
	require.NoError(t, err)
	assert.Equal(t, "ABC", resp.Body)
}

func TestInterpreter_NestedTagInDeclaration(t *testing.T) {
	interp := MustNew(testBlocks(), WithMaxDepth(10))
	// The declaration itself is produced by an inner tag.
	resp, err := interp.Process(context.Background(), "{{echo:upper}:hi}", nil)
	require.NoError(t, err)
	assert.Equal(t, "HI", resp.Body)
}

func TestInterpreter_EscapedBracesStayLiteral(t *testing.T) {
	interp := MustNew(testBlocks())
	resp, err := interp.Process(context.Background(), `\{echo:hidden\}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "{echo:hidden}", resp.Body)
}

func TestInterpreter_CustomEscapeChar(t *testing.T) {
	interp := MustNew(testBlocks(), WithEscapeChar('~'))
	resp, err := interp.Process(context.Background(), `~{echo:hidden~} {echo:seen}`, nil)
	require.NoError(t, err)
	assert.Equal(t, "{echo:hidden} seen", resp.Body)
}

func TestInterpreter_LeftToRightOrdering(t *testing.T) {
	trace := &traceBlock{}
	interp := MustNew(testBlocks(trace))

	_, err := interp.Process(context.Background(),
		"{trace:a}{trace:b} text {trace:{echo:c}}{trace:d}", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, trace.seen)
}

func TestInterpreter_DepthOverrunDegrades(t *testing.T) {
	interp := MustNew(testBlocks(), WithMaxDepth(2))
	resp, err := interp.Process(context.Background(), "{echo:{echo:{echo:deep}}}", nil)
	require.NoError(t, err)
	// The innermost tag sits past the depth limit and keeps its source form.
	assert.Equal(t, "{echo:deep}", resp.Body)
}

func TestInterpreter_CharLimitDegrades(t *testing.T) {
	interp := MustNew(testBlocks(), WithCharLimit(8))

	resp, err := interp.Process(context.Background(), "{echo:12345}{echo:678}", nil)
	require.NoError(t, err)
	assert.Equal(t, "12345678", resp.Body)

	resp, err = interp.Process(context.Background(), "{echo:12345}{echo:6789}", nil)
	require.NoError(t, err)
	// The overrunning tag degrades to source text, the rest still resolves.
	assert.Equal(t, "12345{echo:6789}", resp.Body)
}

func TestInterpreter_CharLimitIgnoresLiteralText(t *testing.T) {
	interp := MustNew(testBlocks(), WithCharLimit(4))
	resp, err := interp.Process(context.Background(),
		"a very long literal prefix {echo:abcd}", nil)
	require.NoError(t, err)
	assert.Equal(t, "a very long literal prefix abcd", resp.Body)
}

func TestInterpreter_StopActionHaltsWalk(t *testing.T) {
	trace := &traceBlock{}
	interp := MustNew(testBlocks(trace))

	resp, err := interp.Process(context.Background(),
		"{trace:before}{halt}{trace:after} tail", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"before"}, trace.seen)
	assert.Equal(t, "", resp.Body)
	assert.True(t, resp.HasAction(ActionStop))
}

func TestInterpreter_BlockErrorIsFatalByDefault(t *testing.T) {
	interp := MustNew(testBlocks(failBlock{}))

	resp, err := interp.Process(context.Background(), "x {fail} y", nil)
	require.Error(t, err)
	assert.Nil(t, resp)
	assert.Contains(t, err.Error(), ErrMsgBlockFailed)
}

func TestInterpreter_BestEffortDegradesBlockErrors(t *testing.T) {
	interp := MustNew(testBlocks(failBlock{}), WithBestEffort(true))

	resp, err := interp.Process(context.Background(), "x {fail} y", nil)
	require.NoError(t, err)
	assert.Equal(t, "x {fail} y", resp.Body)
}

func TestInterpreter_DeclinedBlockFallsThrough(t *testing.T) {
	// The decliner accepts everything first in priority order but never
	// handles, so dispatch continues down the list.
	interp := MustNew([]Block{declineBlock{}, echoBlock{}})
	resp, err := interp.Process(context.Background(), "{echo:through}", nil)
	require.NoError(t, err)
	assert.Equal(t, "through", resp.Body)
}

func TestInterpreter_FirstAcceptingBlockWins(t *testing.T) {
	trace := &traceBlock{}
	shadow := &traceBlock{}
	interp := MustNew([]Block{trace, shadow})

	_, err := interp.Process(context.Background(), "{trace:x}", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, trace.seen)
	assert.Empty(t, shadow.seen)
}

func TestInterpreter_TrimmedBodyOption(t *testing.T) {
	interp := MustNew(testBlocks(), WithTrimmedBody(true))
	resp, err := interp.Process(context.Background(), "\n  {echo:kept}  \n", nil)
	require.NoError(t, err)
	assert.Equal(t, "kept", resp.Body)
}

func TestInterpreter_SeedVariables(t *testing.T) {
	interp := MustNew(testBlocks())
	seed := map[string]Adapter{"user": NewStringAdapter("ada")}

	resp, err := interp.Process(context.Background(), "plain", seed)
	require.NoError(t, err)
	require.Contains(t, resp.Variables, "user")
	assert.Equal(t, "ada", resp.Variables["user"].GetValue(&Context{}))
}

func TestInterpreter_ProcessScriptReuse(t *testing.T) {
	interp := MustNew(testBlocks())
	script := interp.Parse("{echo:one} {upper:two}")

	for i := 0; i < 3; i++ {
		resp, err := interp.ProcessScript(context.Background(), script, nil)
		require.NoError(t, err)
		assert.Equal(t, "one TWO", resp.Body)
	}
}

func TestInterpreter_CancelledContext(t *testing.T) {
	interp := MustNew(testBlocks())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := interp.Process(ctx, "{echo:x}", nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
}

func TestNew_NilBlockRejected(t *testing.T) {
	_, err := New([]Block{echoBlock{}, nil})
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgNilBlock)
}

func TestMustNew_PanicsOnNilBlock(t *testing.T) {
	assert.Panics(t, func() { MustNew([]Block{nil}) })
}

func TestInterpreter_BlocksCopy(t *testing.T) {
	interp := MustNew(testBlocks())
	got := interp.Blocks()
	require.Len(t, got, len(testBlocks()))
	got[0] = nil
	assert.NotNil(t, interp.Blocks()[0])
}
