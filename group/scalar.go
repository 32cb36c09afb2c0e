// Package group contains a ristretto255 Element and Scalar that marshal to
// their canonical 32-byte encodings in binary formats (CBOR), and to Base64 in
// text formats (JSON). Both types are conversions of the corresponding
// github.com/gtank/ristretto255 types, so converting back and forth is free.
package group

import (
	"encoding/base64"
	"encoding/binary"
	"io"

	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"
)

const (
	// ScalarSize is the size in bytes of the canonical encoding of a Scalar.
	ScalarSize = 32
	// UniformSize is the number of uniformly random bytes consumed when
	// drawing a random Scalar or Element.
	UniformSize = 64
)

// ErrInvalidEncoding is returned when bytes are not the canonical encoding of
// a Scalar or an Element.
var ErrInvalidEncoding = errors.New("not a canonical ristretto255 encoding")

// Scalar is an integer modulo the order of the ristretto255 group.
// The zero value is the scalar 0.
type Scalar ristretto255.Scalar

// ConvertScalar converts from a ristretto255.Scalar.
func ConvertScalar(x *ristretto255.Scalar) *Scalar {
	return (*Scalar)(x)
}

// Go converts to a ristretto255.Scalar.
func (s *Scalar) Go() *ristretto255.Scalar {
	return (*ristretto255.Scalar)(s)
}

// NewScalar returns a new Scalar set to 0.
func NewScalar() *Scalar {
	return ConvertScalar(ristretto255.NewScalar())
}

// ScalarFromUint64 returns the Scalar representing v.
func ScalarFromUint64(v uint64) *Scalar {
	var buf [ScalarSize]byte
	binary.LittleEndian.PutUint64(buf[:8], v)
	s := NewScalar()
	if err := s.Go().Decode(buf[:]); err != nil {
		panic(err) // every value below 2^64 is canonical
	}
	return s
}

// RandomScalar reads UniformSize bytes from rnd and maps them to a uniformly
// distributed Scalar.
func RandomScalar(rnd io.Reader) (*Scalar, error) {
	var buf [UniformSize]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return nil, errors.WrapPrefix(err, "failed to draw random scalar", 0)
	}
	return ConvertScalar(ristretto255.NewScalar().FromUniformBytes(buf[:])), nil
}

// ristretto255.Scalar API
// The conversions are free; the methods return their receiver like "math/big" does.

func (s *Scalar) Add(x, y *Scalar) *Scalar { return ConvertScalar(s.Go().Add(x.Go(), y.Go())) }
func (s *Scalar) Sub(x, y *Scalar) *Scalar { return ConvertScalar(s.Go().Subtract(x.Go(), y.Go())) }
func (s *Scalar) Mul(x, y *Scalar) *Scalar { return ConvertScalar(s.Go().Multiply(x.Go(), y.Go())) }
func (s *Scalar) Neg(x *Scalar) *Scalar    { return ConvertScalar(s.Go().Negate(x.Go())) }
func (s *Scalar) Equal(t *Scalar) bool     { return s.Go().Equal(t.Go()) == 1 }

// Set sets s to x and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	*s = *x
	return s
}

// Inverse sets s to 1/x and returns s. The inverse of 0 is undefined, callers
// must check IsZero first.
func (s *Scalar) Inverse(x *Scalar) *Scalar {
	return ConvertScalar(s.Go().Invert(x.Go()))
}

// IsZero reports whether s equals 0, in constant time.
func (s *Scalar) IsZero() bool {
	return s.Equal(NewScalar())
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	return s.Go().Encode(make([]byte, 0, ScalarSize))
}

// SetBytes sets s to the scalar encoded by buf, which must be a canonical
// encoding. On error s is unchanged.
func (s *Scalar) SetBytes(buf []byte) (*Scalar, error) {
	if len(buf) != ScalarSize {
		return nil, ErrInvalidEncoding
	}
	if err := s.Go().Decode(buf); err != nil {
		return nil, ErrInvalidEncoding
	}
	return s, nil
}

// Uint64 returns s as an uint64, and whether s fits in one.
func (s *Scalar) Uint64() (uint64, bool) {
	bts := s.Bytes()
	for _, b := range bts[8:] {
		if b != 0 {
			return 0, false
		}
	}
	return binary.LittleEndian.Uint64(bts[:8]), true
}

func (s *Scalar) String() string {
	return base64.StdEncoding.EncodeToString(s.Bytes())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s *Scalar) MarshalBinary() ([]byte, error) {
	return s.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Scalar) UnmarshalBinary(data []byte) error {
	_, err := s.SetBytes(data)
	return err
}

// MarshalText implements encoding.TextMarshaler, returning the Base64 encoding
// of s.Bytes().
func (s *Scalar) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Scalar) UnmarshalText(text []byte) error {
	bts, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return errors.WrapPrefix(err, "scalar is not Base64", 0)
	}
	return s.UnmarshalBinary(bts)
}
