// Package cbor provides helper functions for encoding and decoding the
// protocol messages as CBOR, by wrapping functions provided by
// github.com/fxamacker/cbor.
//
//  1. CBOR is encoded using Core Deterministic Encoding defined in
//     RFC 8949, so that a message has exactly one encoding.
//  2. Group elements and scalars implement encoding.BinaryMarshaler and
//     are therefore encoded as byte strings holding their canonical
//     32-byte encodings.
//  3. The decoder rejects duplicate map keys, unknown fields, tags and
//     indefinite lengths. Messages have a fixed, small shape, so the
//     limits on nesting and container sizes are set to their minimum.
//
// For more info, see:
//   - https://github.com/fxamacker/cbor
//   - https://tools.ietf.org/html/rfc8949
package cbor

import (
	"io"

	"github.com/fxamacker/cbor/v2" // imports as cbor
)

const (
	MaxNestedLevels  = 4
	MaxArrayElements = 16
	MaxMapPairs      = 16
)

var (
	// encOptions specifies how CBOR should be encoded.
	encOptions = cbor.EncOptions{
		// Encoding options required by Core Deterministic Encoding
		// See https://datatracker.ietf.org/doc/html/rfc8949#section-4.2.1
		InfConvert:    cbor.InfConvertFloat16,
		IndefLength:   cbor.IndefLengthForbidden,
		NaNConvert:    cbor.NaNConvert7e00,
		ShortestFloat: cbor.ShortestFloat16,
		Sort:          cbor.SortCoreDeterministic,

		TagsMd: cbor.TagsForbidden,
	}

	// decOptions specifies how CBOR should be decoded.
	decOptions = cbor.DecOptions{
		IndefLength: cbor.IndefLengthForbidden,

		DupMapKey:        cbor.DupMapKeyEnforcedAPF,
		MaxNestedLevels:  MaxNestedLevels,
		MaxArrayElements: MaxArrayElements,
		MaxMapPairs:      MaxMapPairs,

		TagsMd:  cbor.TagsForbidden,
		TimeTag: cbor.DecTagIgnored,

		// A field we don't know could change the meaning of a proof.
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
	}

	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = encOptions.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = decOptions.DecMode(); err != nil {
		panic(err)
	}
}

// Marshal encodes src into a CBOR-encoded byte slice.
func Marshal(src interface{}) ([]byte, error) {
	return encMode.Marshal(src)
}

// Unmarshal decodes CBOR in data into dst. Trailing bytes are an error.
func Unmarshal(data []byte, dst interface{}) error {
	return decMode.Unmarshal(data, dst)
}

// Valid checks whether data is a single well-formed CBOR data item within the
// decoding limits.
func Valid(data []byte) error {
	return decMode.Valid(data)
}

// NewEncoder creates a new CBOR encoder that writes to w.
func NewEncoder(w io.Writer) *cbor.Encoder {
	return encMode.NewEncoder(w)
}

// NewDecoder creates a new CBOR decoder that reads from r.
func NewDecoder(r io.Reader) *cbor.Decoder {
	return decMode.NewDecoder(r)
}
