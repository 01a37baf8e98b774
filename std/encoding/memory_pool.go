package encoding

import (
	"hash"
	"sync"

	"github.com/cespare/xxhash"
)

type hasher struct {
	h   hash.Hash64
	buf Buffer
}

var hasherPool = sync.Pool{
	New: func() any {
		return &hasher{h: xxhash.New()}
	},
}

// getHasher returns a reset hasher whose buf holds exactly size bytes.
func getHasher(size int) *hasher {
	h := hasherPool.Get().(*hasher)
	h.h.Reset()
	if cap(h.buf) < size {
		h.buf = make(Buffer, size)
	}
	h.buf = h.buf[:size]
	return h
}

func putHasher(h *hasher) {
	hasherPool.Put(h)
}

func (h *hasher) sum() uint64 {
	h.h.Write(h.buf)
	return h.h.Sum64()
}
