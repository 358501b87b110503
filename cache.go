package ssimulacra2

import (
	"container/list"
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/imazen/ssimulacra2/internal/pool"
)

// ReferenceCache is a bounded, content-addressed cache of precomputed
// References, for callers that repeatedly compare against a changing but
// overlapping set of reference images (e.g. an HTTP API serving many
// independent comparison requests against a small pool of source images).
// Keys are derived from the reference's dimensions, config and pixel
// content via xxhash, not from pointer identity, so two calls with
// byte-identical reference data share one entry regardless of whether the
// caller reused the same Input value.
type ReferenceCache struct {
	mu       sync.Mutex
	capacity int
	items    map[uint64]*list.Element
	order    *list.List
}

type cacheEntry struct {
	key uint64
	ref *Reference
}

// NewReferenceCache creates a cache holding up to capacity References,
// evicting the least recently used entry once full.
func NewReferenceCache(capacity int) *ReferenceCache {
	if capacity < 1 {
		capacity = 1
	}
	return &ReferenceCache{
		capacity: capacity,
		items:    make(map[uint64]*list.Element, capacity),
		order:    list.New(),
	}
}

// referenceCacheKey hashes everything that determines the resulting
// Reference: its config and the reference image's declared shape and raw
// pixel bytes, so distinct reference pixels can never collide onto the
// same entry. The 16-bit/float32 variants are re-encoded into a pooled
// byte buffer up front rather than hashed one tiny write at a time, the
// same batch-then-hash shape the teacher's internal/pool exists to
// support for hot-path buffers.
func referenceCacheKey(ref Input, cfg Config) uint64 {
	h := xxhash.New()
	var header [16]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(ref.width))
	binary.LittleEndian.PutUint32(header[4:8], uint32(ref.height))
	binary.LittleEndian.PutUint32(header[8:12], uint32(ref.kind))
	binary.LittleEndian.PutUint32(header[12:16], uint32(cfg.BlurBackend))
	h.Write(header[:])

	switch ref.kind {
	case kindRGB8, kindGray8:
		h.Write(ref.pix8)
	case kindRGB16:
		buf := pool.Get(len(ref.pix16) * 2)
		defer pool.Put(buf)
		for i, v := range ref.pix16 {
			binary.LittleEndian.PutUint16(buf[i*2:i*2+2], v)
		}
		h.Write(buf)
	default:
		buf := pool.Get(len(ref.pixF) * 4)
		defer pool.Put(buf)
		for i, v := range ref.pixF {
			binary.LittleEndian.PutUint32(buf[i*4:i*4+4], math.Float32bits(v))
		}
		h.Write(buf)
	}
	return h.Sum64()
}

// GetOrBuild returns a cached Reference for ref/cfg if one exists, or
// builds, stores and returns a new one otherwise.
func (c *ReferenceCache) GetOrBuild(ref Input, cfg Config) (*Reference, error) {
	key := referenceCacheKey(ref, cfg)

	c.mu.Lock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*cacheEntry)
		c.mu.Unlock()
		return entry.ref, nil
	}
	c.mu.Unlock()

	built, err := NewReference(ref, cfg)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		return elem.Value.(*cacheEntry).ref, nil
	}
	elem := c.order.PushFront(&cacheEntry{key: key, ref: built})
	c.items[key] = elem
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
	return built, nil
}

// Len reports how many References are currently cached.
func (c *ReferenceCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
