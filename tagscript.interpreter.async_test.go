package tagscript

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reverseAsyncBlock resolves {reverse:payload} via the async path only.
type reverseAsyncBlock struct {
	asyncCalls int
	syncCalls  int
}

func (b *reverseAsyncBlock) Name() string { return "reverse" }

func (b *reverseAsyncBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "reverse" }

func (b *reverseAsyncBlock) Process(ctx *Context) (string, bool, error) {
	b.syncCalls++
	return b.resolve(ctx), true, nil
}

func (b *reverseAsyncBlock) ProcessAsync(_ context.Context, ctx *Context) (string, bool, error) {
	b.asyncCalls++
	return b.resolve(ctx), true, nil
}

func (*reverseAsyncBlock) resolve(ctx *Context) string {
	runes := []rune(ctx.Verb.Payload)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// sleepAsyncBlock blocks until its context is done.
type sleepAsyncBlock struct{}

func (sleepAsyncBlock) Name() string { return "sleep" }

func (sleepAsyncBlock) WillAccept(ctx *Context) bool { return ctx.Verb.Dec() == "sleep" }

func (sleepAsyncBlock) Process(*Context) (string, bool, error) {
	return "", true, nil
}

func (sleepAsyncBlock) ProcessAsync(goCtx context.Context, _ *Context) (string, bool, error) {
	<-goCtx.Done()
	return "", false, goCtx.Err()
}

func TestAsyncInterpreter_DispatchesAsyncPath(t *testing.T) {
	rev := &reverseAsyncBlock{}
	interp := MustNewAsync([]Block{rev})

	resp, err := interp.Process(context.Background(), "{reverse:abc}", nil)
	require.NoError(t, err)
	assert.Equal(t, "cba", resp.Body)
	assert.Equal(t, 1, rev.asyncCalls)
	assert.Zero(t, rev.syncCalls)
}

func TestAsyncInterpreter_PlainBlocksStillWork(t *testing.T) {
	interp := MustNewAsync(testBlocks())
	resp, err := interp.Process(context.Background(), "{upper:{echo:mix}} done", nil)
	require.NoError(t, err)
	assert.Equal(t, "MIX done", resp.Body)
}

func TestAsyncInterpreter_MatchesBlockingSemantics(t *testing.T) {
	inputs := []string{
		"plain",
		"{echo:a}{upper:b} {unknown}",
		"{upper:{echo:nested}}",
		"broken {echo:open",
		`\{echo:x\}`,
		"{halt}after",
	}
	blocking := MustNew(testBlocks())
	async := MustNewAsync(testBlocks())

	for _, input := range inputs {
		want, err := blocking.Process(context.Background(), input, nil)
		require.NoError(t, err)
		got, err := async.Process(context.Background(), input, nil)
		require.NoError(t, err)
		assert.Equal(t, want.Body, got.Body, "input %q", input)
		assert.Equal(t, want.Actions, got.Actions, "input %q", input)
	}
}

func TestAsyncInterpreter_CancellationReturnsNoResponse(t *testing.T) {
	trace := &traceBlock{}
	interp := MustNewAsync(testBlocks(trace, sleepAsyncBlock{}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	resp, err := interp.Process(ctx, "{trace:ran}{sleep}{trace:never}", nil)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Nil(t, resp)
	assert.Equal(t, []string{"ran"}, trace.seen)
}

func TestAsyncInterpreter_PreCancelledContext(t *testing.T) {
	rev := &reverseAsyncBlock{}
	interp := MustNewAsync([]Block{rev})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := interp.Process(ctx, "{reverse:abc}", nil)
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, resp)
	assert.Zero(t, rev.asyncCalls)
}

func TestAsyncInterpreter_OrderingAcrossSuspensions(t *testing.T) {
	trace := &traceBlock{}
	interp := MustNewAsync(testBlocks(trace, &reverseAsyncBlock{}))

	_, err := interp.Process(context.Background(),
		"{trace:1}{reverse:xy}{trace:2}", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, trace.seen)
}

func TestAsyncInterpreter_ConcurrentProcessCalls(t *testing.T) {
	interp := MustNewAsync(testBlocks())
	script := interp.Parse("{echo:same} {upper:body}")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := interp.ProcessScript(context.Background(), script, nil)
			assert.NoError(t, err)
			assert.Equal(t, "same BODY", resp.Body)
		}()
	}
	wg.Wait()
}

func TestAsyncInterpreter_BestEffort(t *testing.T) {
	interp := MustNewAsync(testBlocks(failBlock{}), WithBestEffort(true))
	resp, err := interp.Process(context.Background(), "a {fail} b", nil)
	require.NoError(t, err)
	assert.Equal(t, "a {fail} b", resp.Body)
}

func TestAsyncInterpreter_LongBodyComposition(t *testing.T) {
	interp := MustNewAsync([]Block{&reverseAsyncBlock{}})
	input := strings.Repeat("{reverse:ab}", 50)
	resp, err := interp.Process(context.Background(), input, nil)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("ba", 50), resp.Body)
}
