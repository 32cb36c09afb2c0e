package common

import (
	"encoding"
	"hash"

	"github.com/privacybydesign/credit/group"
	"golang.org/x/crypto/blake2b"
)

// Transcript accumulates the public values of a Fiat-Shamir proof and maps
// them to a challenge scalar. Values are absorbed by their canonical 32-byte
// encodings, in order, so the challenge commits to the exact sequence.
type Transcript struct {
	h hash.Hash
}

// NewTranscript starts a transcript bound to the given domain label.
func NewTranscript(label string) *Transcript {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // only fails for oversized keys
	}
	h.Write([]byte(label))
	return &Transcript{h: h}
}

func (t *Transcript) absorb(v encoding.BinaryMarshaler) {
	bts, err := v.MarshalBinary()
	if err != nil {
		panic(err) // elements and scalars always encode
	}
	t.h.Write(bts)
}

func (t *Transcript) AddElement(e *group.Element) *Transcript {
	t.absorb(e)
	return t
}

func (t *Transcript) AddElements(es ...*group.Element) *Transcript {
	for _, e := range es {
		t.absorb(e)
	}
	return t
}

func (t *Transcript) AddScalar(s *group.Scalar) *Transcript {
	t.absorb(s)
	return t
}

// Challenge finalizes the transcript: the digest seeds a CPRNG from which a
// uniform scalar is drawn. The transcript must not be used afterwards.
func (t *Transcript) Challenge() *group.Scalar {
	var seed [32]byte
	copy(seed[:], t.h.Sum(nil))
	t.h = nil
	c, err := group.RandomScalar(NewCPRNG(&seed))
	if err != nil {
		panic(err) // a fresh CPRNG does not run out
	}
	return c
}

// Challenge computes the challenge for label over the values that absorb adds.
func Challenge(label string, absorb func(*Transcript)) *group.Scalar {
	t := NewTranscript(label)
	absorb(t)
	return t.Challenge()
}

// HashSeed derives a CPRNG seed from an arbitrary byte string.
func HashSeed(seed []byte) *[32]byte {
	digest := blake2b.Sum256(seed)
	return &digest
}
