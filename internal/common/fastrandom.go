package common

import (
	"math"
	"sync/atomic"

	"github.com/go-errors/errors"
	"golang.org/x/crypto/chacha20"
)

const blockSize = 64

// ErrCPRNGExhausted is returned once the 2^32 keystream blocks of a seed have been used up.
var ErrCPRNGExhausted = errors.New("CPRNG keystream exhausted")

// CPRNG is a simple thread-safe cryptographically secure pseudo-random number generator.
// Implemented with ChaCha20 with the seed as key, a zero nonce and an
// atomic uint64 as block counter.
//
// The output for a given seed and sequence of reads is deterministic, which is what
// the transcript and the parameter derivation depend on.
type CPRNG struct {
	seed    [32]byte
	counter uint64
}

func NewCPRNG(seed *[32]byte) *CPRNG {
	return &CPRNG{seed: *seed}
}

// Read fills buf with keystream. Every call starts at a fresh block, so the
// unused tail of the last block is discarded.
func (c *CPRNG) Read(buf []byte) (n int, err error) {
	n = len(buf)
	if n == 0 {
		return
	}

	// Number of blocks required
	nBlocks := uint64(((len(buf) - 1) / blockSize) + 1)

	// Atomically increment counter by the number of blocks and start at
	// the first available block.
	end := atomic.AddUint64(&c.counter, nBlocks)
	if end > math.MaxUint32+1 {
		return 0, ErrCPRNGExhausted
	}

	var nonce [chacha20.NonceSize]byte
	stream, err := chacha20.NewUnauthenticatedCipher(c.seed[:], nonce[:])
	if err != nil {
		return 0, errors.WrapPrefix(err, "failed to initialize CPRNG", 0)
	}
	stream.SetCounter(uint32(end - nBlocks))
	for i := range buf {
		buf[i] = 0
	}
	stream.XORKeyStream(buf, buf)
	return
}
