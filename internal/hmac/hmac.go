package hmac

import "hash"

// hmac is a reusable FIPS 198-1 HMAC state, structured the way
// crypto/hmac's unexported implementation is, but exposed so pool.go
// can reset it in place with a new key instead of allocating a fresh
// one per message. This type and New are the backing pieces pool.go's
// Acquire/Put pair assumes; the retrieved snapshot only carried the
// pooling half.
type hmac struct {
	size      int
	blocksize int
	outer     hash.Hash
	inner     hash.Hash
	ipad      []byte
	opad      []byte
}

// New builds an hmac ready for resetTo(key) to seed. hashFunc must
// return a fresh instance of the underlying hash (sha1.New,
// sha256.New, ...); the block size is taken from that hash, and the
// second argument does not affect it.
func New(hashFunc func() hash.Hash, scratch []byte) hash.Hash {
	inner := hashFunc()
	outer := hashFunc()
	blocksize := inner.BlockSize()

	return &hmac{
		size:      inner.Size(),
		blocksize: blocksize,
		outer:     outer,
		inner:     inner,
		ipad:      make([]byte, blocksize),
		opad:      make([]byte, blocksize),
	}
}

func (h *hmac) Write(p []byte) (int, error) {
	return h.inner.Write(p)
}

func (h *hmac) Size() int { return h.size }

func (h *hmac) BlockSize() int { return h.blocksize }

// Sum appends the HMAC of everything written so far to b, without
// disturbing the inner hash's state (callers may keep writing after a
// Sum, matching hash.Hash's contract).
func (h *hmac) Sum(b []byte) []byte {
	origLen := len(b)
	in := h.inner.Sum(nil)

	h.outer.Reset()
	h.outer.Write(h.opad)
	h.outer.Write(in)

	return h.outer.Sum(b[:origLen])
}

// Reset restores the inner hash to the ipad-only state resetTo left it
// in, so the same hmac can authenticate a new message once resetTo
// runs again. Plain Reset (no new key) just rewinds the inner hash.
func (h *hmac) Reset() {
	h.inner.Reset()
	h.inner.Write(h.ipad)
}
