package memory

import (
	"sync"

	"github.com/kasuganosora/memstore/pkg/resource/domain"
)

// blobStore 为 DataKey::Hash 行保存字节负载，进程生命周期内只增不减
//
// 已知问题：没有压缩/回收路径，一个哈希过的行一旦插入过，
// 即便之后被逻辑删除，它的字节仍然留在这里。
type blobStore struct {
	mu    sync.Mutex
	blobs map[domain.DataKey][]byte
}

func newBlobStore() *blobStore {
	return &blobStore{blobs: make(map[domain.DataKey][]byte)}
}

func (b *blobStore) put(key domain.DataKey, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.blobs[key]; ok {
		return
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	b.blobs[key] = cp
}

func (b *blobStore) get(key domain.DataKey) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	v, ok := b.blobs[key]
	return v, ok
}

// resolveDataKey returns the canonical bytes for either DataKey variant.
func resolveDataKey(key domain.DataKey, blobs *blobStore) ([]byte, bool) {
	if key.Kind == domain.DataKeyData {
		return []byte(key.Data), true
	}
	return blobs.get(key)
}
