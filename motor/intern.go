package motor

import (
	"sync"

	"github.com/cespare/xxhash/v2"
)

const internShardCount = 256

type internShard struct {
	table map[string]string
	mu    sync.RWMutex
}

// Interner deduplicates repeated strings (addresses, regions) while a dataset
// is decoded, so thousands of records share one copy of "서울 강남구".
type Interner struct {
	shards [internShardCount]*internShard
	once   [internShardCount]sync.Once
}

// NewInterner creates an empty interner
func NewInterner() *Interner {
	return &Interner{}
}

// Intern returns the canonical copy of s.
// uses 256 shards with xxhash distribution to keep lock contention low
func (in *Interner) Intern(s string) string {
	if s == "" {
		return ""
	}

	shardIdx := xxhash.Sum64String(s) % internShardCount
	shard := in.shard(shardIdx)

	shard.mu.RLock()
	if interned, exists := shard.table[s]; exists {
		shard.mu.RUnlock()
		return interned
	}
	shard.mu.RUnlock()

	shard.mu.Lock()
	defer shard.mu.Unlock()

	if interned, exists := shard.table[s]; exists {
		return interned
	}

	shard.table[s] = s
	return s
}

// Len returns the number of distinct strings held
func (in *Interner) Len() int {
	n := 0
	for i := range in.shards {
		shard := in.shards[i]
		if shard == nil {
			continue
		}
		shard.mu.RLock()
		n += len(shard.table)
		shard.mu.RUnlock()
	}
	return n
}

func (in *Interner) shard(idx uint64) *internShard {
	in.once[idx].Do(func() {
		in.shards[idx] = &internShard{table: make(map[string]string)}
	})
	return in.shards[idx]
}

// Fingerprint hashes names and classifications of records in order. Two loads
// returning the same data produce the same fingerprint.
func Fingerprint(records []Record) uint64 {
	d := xxhash.New()
	for i := range records {
		_, _ = d.WriteString(records[i].Name)
		_, _ = d.Write([]byte{0})
		_, _ = d.WriteString(records[i].Classification)
		_, _ = d.Write([]byte{0x1e})
	}
	return d.Sum64()
}
