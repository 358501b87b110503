// Package pool provides a reusable byte-buffer for the one hot path that
// needs to batch pixel samples into bytes before hashing: cache.go's
// content-addressed cache key derivation. Reference images range from a
// handful of pixels up to full-resolution photos, so the buffer grows to
// whatever the caller asks for and is kept around for the next call rather
// than being bucketed into fixed size classes sized for a different
// workload.
package pool

import "sync"

var bufPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, 4096)
		return &b
	},
}

// Get returns a byte slice of exactly the requested length, reusing a
// pooled backing array when one large enough is available. The caller must
// call Put when done with it.
func Get(size int) []byte {
	bp := bufPool.Get().(*[]byte)
	b := *bp
	if cap(b) < size {
		return make([]byte, size)
	}
	return b[:size]
}

// Put returns a byte slice to the pool. The slice must have been obtained
// from Get.
func Put(b []byte) {
	bufPool.Put(&b)
}
