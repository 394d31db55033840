package hmac

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"hash"
)

// assertHMACSize panics if h wasn't built for the given digest/block
// size pair, the same "wrong algorithm in the wrong pool" guard
// AcquireSHA1/AcquireSHA256 rely on implicitly by construction; here
// it's asserted explicitly for the mismatched-pool test case.
func assertHMACSize(h *hmac, size, blocksize int) {
	if h.Size() != size || h.BlockSize() != blocksize {
		panic("hmac: unexpected size/blocksize for this pool")
	}
}

type hmacTestVector struct {
	hash      func() hash.Hash
	key       []byte
	in        []byte
	out       string
	size      int
	blocksize int
}

// hmacTests are the widely published "key" / "The quick brown fox..."
// HMAC-SHA1 and HMAC-SHA256 example vectors, used to check that pooled reuse of an hmac
// value produces the same digest as a fresh one.
func hmacTests() []hmacTestVector {
	return []hmacTestVector{
		{
			hash:      sha1.New,
			key:       []byte("key"),
			in:        []byte("The quick brown fox jumps over the lazy dog"),
			out:       "de7c9b85b8b78aa6bc8a7a36f70a90701c9db4d9",
			size:      sha1.Size,
			blocksize: sha1.BlockSize,
		},
		{
			hash:      sha256.New,
			key:       []byte("key"),
			in:        []byte("The quick brown fox jumps over the lazy dog"),
			out:       "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8",
			size:      sha256.Size,
			blocksize: sha256.BlockSize,
		},
	}
}
