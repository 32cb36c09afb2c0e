package group

import (
	"encoding/base64"
	"io"

	"github.com/go-errors/errors"
	"github.com/gtank/ristretto255"
)

// ElementSize is the size in bytes of the canonical encoding of an Element.
const ElementSize = 32

// Element is an element of the ristretto255 prime-order group.
//
// Unlike Scalar, the zero value is not a valid Element; use NewElement,
// Generator or one of the setters.
type Element ristretto255.Element

// ConvertElement converts from a ristretto255.Element.
func ConvertElement(x *ristretto255.Element) *Element {
	return (*Element)(x)
}

// Go converts to a ristretto255.Element.
func (e *Element) Go() *ristretto255.Element {
	return (*ristretto255.Element)(e)
}

// NewElement returns a new Element set to the identity.
func NewElement() *Element {
	return ConvertElement(ristretto255.NewElement())
}

// Generator returns a new Element set to the canonical generator G.
func Generator() *Element {
	return ConvertElement(ristretto255.NewElement().Base())
}

// RandomElement reads UniformSize bytes from rnd and maps them to a uniformly
// distributed Element, whose discrete logarithm with respect to any other
// element is unknown.
func RandomElement(rnd io.Reader) (*Element, error) {
	var buf [UniformSize]byte
	if _, err := io.ReadFull(rnd, buf[:]); err != nil {
		return nil, errors.WrapPrefix(err, "failed to draw random element", 0)
	}
	return ConvertElement(ristretto255.NewElement().FromUniformBytes(buf[:])), nil
}

// ristretto255.Element API

func (e *Element) Add(p, q *Element) *Element { return ConvertElement(e.Go().Add(p.Go(), q.Go())) }
func (e *Element) Sub(p, q *Element) *Element { return ConvertElement(e.Go().Subtract(p.Go(), q.Go())) }
func (e *Element) Neg(p *Element) *Element    { return ConvertElement(e.Go().Negate(p.Go())) }
func (e *Element) Equal(p *Element) bool      { return e.Go().Equal(p.Go()) == 1 }

// ScalarMult sets e = s*p and returns e.
func (e *Element) ScalarMult(s *Scalar, p *Element) *Element {
	return ConvertElement(e.Go().ScalarMult(s.Go(), p.Go()))
}

// ScalarBaseMult sets e = s*G and returns e.
func (e *Element) ScalarBaseMult(s *Scalar) *Element {
	return ConvertElement(e.Go().ScalarBaseMult(s.Go()))
}

// Set sets e to p and returns e.
func (e *Element) Set(p *Element) *Element {
	*e = *p
	return e
}

// IsIdentity reports whether e is the identity element.
func (e *Element) IsIdentity() bool {
	return e.Equal(NewElement())
}

// Bytes returns the canonical 32-byte encoding of e.
func (e *Element) Bytes() []byte {
	return e.Go().Encode(make([]byte, 0, ElementSize))
}

// SetBytes sets e to the element encoded by buf, which must be a canonical
// encoding. On error e is unchanged.
func (e *Element) SetBytes(buf []byte) (*Element, error) {
	if err := e.Go().Decode(buf); err != nil {
		return nil, ErrInvalidEncoding
	}
	return e, nil
}

func (e *Element) String() string {
	return base64.StdEncoding.EncodeToString(e.Bytes())
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e *Element) MarshalBinary() ([]byte, error) {
	return e.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *Element) UnmarshalBinary(data []byte) error {
	_, err := e.SetBytes(data)
	return err
}

// MarshalText implements encoding.TextMarshaler, returning the Base64 encoding
// of e.Bytes().
func (e *Element) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(text []byte) error {
	bts, err := base64.StdEncoding.DecodeString(string(text))
	if err != nil {
		return errors.WrapPrefix(err, "element is not Base64", 0)
	}
	return e.UnmarshalBinary(bts)
}
