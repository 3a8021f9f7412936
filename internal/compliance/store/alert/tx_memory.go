package alert

import (
	"context"
	"sync"
	"time"

	"staywatch/internal/compliance/ports"
	id "staywatch/pkg/domain"
	dErrors "staywatch/pkg/domain-errors"
)

// numAlertShards spreads travelers over independent locks so concurrent
// evaluations of different travelers rarely contend.
const numAlertShards = 128

// defaultAlertTxTimeout bounds one traveler's read-modify-write.
const defaultAlertTxTimeout = 5 * time.Second

// ShardedTx serializes per-traveler work against an InMemoryStore.
type ShardedTx struct {
	shards  [numAlertShards]sync.Mutex
	store   ports.AlertStore
	timeout time.Duration
}

// NewShardedTx wraps store. A zero timeout uses the default.
func NewShardedTx(store ports.AlertStore, timeout time.Duration) *ShardedTx {
	if timeout <= 0 {
		timeout = defaultAlertTxTimeout
	}
	return &ShardedTx{store: store, timeout: timeout}
}

func (t *ShardedTx) RunInTx(ctx context.Context, travelerID id.TravelerID, fn func(ctx context.Context, store ports.AlertStore) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	shard := shardFor(travelerID)
	t.shards[shard].Lock()
	defer t.shards[shard].Unlock()

	// Waiting for the lock may have used up the deadline.
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	return fn(ctx, t.store)
}

func shardFor(travelerID id.TravelerID) int {
	return int(fnv1a(travelerID.String()) % numAlertShards)
}

// fnv1a is the 32-bit FNV-1a hash.
func fnv1a(s string) uint32 {
	const (
		fnvOffset = 2166136261
		fnvPrime  = 16777619
	)
	h := uint32(fnvOffset)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}
