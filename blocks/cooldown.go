package blocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tagforge/go-tagscript"
)

// ActionCooldown is recorded on Response.Actions when a cooldown rejects a
// tag, carrying the bucket key and the retry-after seconds.
const ActionCooldown = "cooldown"

// ExtraKeyCooldownScope lets an earlier block (or the host via seed logic)
// override the scope cooldown buckets are grouped under. The original input
// string is the default scope.
const ExtraKeyCooldownScope = "cooldown_scope"

// Placeholders replaced in a custom cooldown message.
const (
	cooldownPlaceholderKey   = "{key}"
	cooldownPlaceholderRetry = "{retry_after}"
)

// CooldownStore tracks invocation buckets for the cooldown block. Hit
// records one invocation of key within scope and returns how long the caller
// must wait when the bucket is exhausted (zero when the invocation is
// allowed). Implementations must be safe for concurrent use.
type CooldownStore interface {
	Hit(ctx context.Context, scope, key string, rate int, per time.Duration) (time.Duration, error)
}

// CooldownBlock rate-limits script paths per key:
//
//	{cooldown(<rate>,<per seconds>):<key>|[message]}
//
// When the bucket for key still has capacity the block renders nothing and
// the script continues. When exhausted it renders the message ({key} and
// {retry_after} placeholders substituted) and records a cooldown action.
//
// The block implements tagscript.AsyncBlock: with a remote store the lookup
// is a suspension point of the async interpreter.
type CooldownBlock struct {
	store CooldownStore
}

// NewCooldownBlock creates a CooldownBlock over a store.
func NewCooldownBlock(store CooldownStore) *CooldownBlock {
	return &CooldownBlock{store: store}
}

// Name implements tagscript.Block.
func (b *CooldownBlock) Name() string {
	return "cooldown"
}

// WillAccept implements tagscript.Block.
func (b *CooldownBlock) WillAccept(ctx *tagscript.Context) bool {
	return ctx.Verb.Dec() == "cooldown"
}

// Process implements tagscript.Block.
func (b *CooldownBlock) Process(ctx *tagscript.Context) (string, bool, error) {
	return b.ProcessAsync(ctx.Ctx, ctx)
}

// ProcessAsync implements tagscript.AsyncBlock.
func (b *CooldownBlock) ProcessAsync(goCtx context.Context, ctx *tagscript.Context) (string, bool, error) {
	if b.store == nil || !ctx.Verb.HasParameter || !ctx.Verb.HasPayload {
		return "", false, nil
	}

	params := strings.SplitN(ctx.Verb.Parameter, ",", 2)
	if len(params) != 2 {
		return "", false, nil
	}
	rate, errRate := strconv.Atoi(strings.TrimSpace(params[0]))
	perSeconds, errPer := strconv.ParseFloat(strings.TrimSpace(params[1]), 64)
	if errRate != nil || errPer != nil || rate <= 0 || perSeconds <= 0 {
		return "", false, nil
	}
	per := time.Duration(perSeconds * float64(time.Second))

	key := ctx.Verb.Payload
	message := ""
	if parts := splitPayload(ctx.Verb.Payload, 2); len(parts) == 2 {
		key, message = parts[0], parts[1]
	}

	scope := ctx.Original
	if override, ok := ctx.Response.Extra[ExtraKeyCooldownScope].(string); ok && override != "" {
		scope = override
	}

	retryAfter, err := b.store.Hit(goCtx, scope, key, rate, per)
	if err != nil {
		return "", false, err
	}
	if retryAfter <= 0 {
		return "", true, nil
	}

	retry := fmt.Sprintf("%.2f", retryAfter.Seconds())
	if message == "" {
		message = fmt.Sprintf("The bucket for %s has reached its cooldown. Retry in %s seconds.", key, retry)
	} else {
		message = strings.ReplaceAll(message, cooldownPlaceholderKey, key)
		message = strings.ReplaceAll(message, cooldownPlaceholderRetry, retry)
	}
	ctx.Response.SetAction(ActionCooldown, map[string]any{
		"key":         key,
		"retry_after": retryAfter.Seconds(),
	})
	return message, true, nil
}

// MemoryCooldownStore is an in-process sliding-window CooldownStore.
type MemoryCooldownStore struct {
	mu      sync.Mutex
	buckets map[string][]time.Time
	now     func() time.Time
}

// NewMemoryCooldownStore creates an empty in-memory cooldown store.
func NewMemoryCooldownStore() *MemoryCooldownStore {
	return &MemoryCooldownStore{
		buckets: make(map[string][]time.Time),
		now:     time.Now,
	}
}

// Hit implements CooldownStore.
func (s *MemoryCooldownStore) Hit(ctx context.Context, scope, key string, rate int, per time.Duration) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := scope + "\x00" + key
	now := s.now()
	cutoff := now.Add(-per)

	hits := s.buckets[bucket]
	kept := hits[:0]
	for _, t := range hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= rate {
		retry := kept[0].Add(per).Sub(now)
		s.buckets[bucket] = kept
		return retry, nil
	}

	s.buckets[bucket] = append(kept, now)
	return 0, nil
}
