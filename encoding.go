package credit

import (
	"encoding"
	"encoding/json"

	"github.com/go-errors/errors"
	"github.com/multiformats/go-multihash"

	"github.com/privacybydesign/credit/cbor"
	"github.com/privacybydesign/credit/group"
)

// ErrIncompleteMessage is returned when a decoded message lacks one of its fields.
var ErrIncompleteMessage = errors.New("message is missing fields")

// All messages encode to Core Deterministic CBOR with MarshalBinary and to JSON
// with encoding/json. Elements and scalars are CBOR byte strings, or Base64
// strings in JSON, holding their canonical encodings. Decoding fails on
// non-canonical encodings and on missing fields.

// The unexported copies of the message types have no methods, so that the
// codecs encode their fields instead of recursing into MarshalBinary.
type (
	rawParams           Params
	rawPublicKey        PublicKey
	rawIssuanceRequest  IssuanceRequest
	rawIssuanceResponse IssuanceResponse
)

type privateKeyWire struct {
	X *group.Scalar `json:"x"`
}

type preIssuanceWire struct {
	R *group.Scalar `json:"r"`
	K *group.Scalar `json:"k"`
}

type creditTokenWire struct {
	A *group.Element `json:"a"`
	E *group.Scalar  `json:"e"`
	R *group.Scalar  `json:"r"`
	K *group.Scalar  `json:"k"`
	N *group.Scalar  `json:"n"`
}

// decode unmarshals data into dst and checks that all fields were set. dst
// must be zero, otherwise fields left over from an earlier message count as set.
func decode(unmarshal func([]byte, interface{}) error, data []byte, dst interface{}, complete func() bool) error {
	if err := unmarshal(data, dst); err != nil {
		return errors.WrapPrefix(err, "failed to decode message", 0)
	}
	if !complete() {
		return ErrIncompleteMessage
	}
	return nil
}

// Params

func (p *Params) MarshalBinary() ([]byte, error) { return cbor.Marshal((*rawParams)(p)) }

func (p *Params) UnmarshalBinary(data []byte) error {
	*p = Params{}
	return decode(cbor.Unmarshal, data, (*rawParams)(p), p.complete)
}

func (p *Params) UnmarshalJSON(data []byte) error {
	*p = Params{}
	return decode(json.Unmarshal, data, (*rawParams)(p), p.complete)
}

// Fingerprint identifies the parameter set by the SHA2-256 multihash of its
// encoding, in base58.
func (p *Params) Fingerprint() string { return fingerprint(p) }

// PublicKey

func (pubk *PublicKey) MarshalBinary() ([]byte, error) { return cbor.Marshal((*rawPublicKey)(pubk)) }

func (pubk *PublicKey) UnmarshalBinary(data []byte) error {
	*pubk = PublicKey{}
	return decode(cbor.Unmarshal, data, (*rawPublicKey)(pubk), pubk.complete)
}

func (pubk *PublicKey) UnmarshalJSON(data []byte) error {
	*pubk = PublicKey{}
	return decode(json.Unmarshal, data, (*rawPublicKey)(pubk), pubk.complete)
}

// Fingerprint identifies the public key by the SHA2-256 multihash of its
// encoding, in base58.
func (pubk *PublicKey) Fingerprint() string { return fingerprint(pubk) }

// PrivateKey

func (privk *PrivateKey) wire() *privateKeyWire { return &privateKeyWire{X: privk.x} }

func (privk *PrivateKey) fromWire(w *privateKeyWire) {
	*privk = *NewPrivateKey(w.X)
}

func (privk *PrivateKey) MarshalBinary() ([]byte, error) { return cbor.Marshal(privk.wire()) }
func (privk *PrivateKey) MarshalJSON() ([]byte, error)   { return json.Marshal(privk.wire()) }

func (privk *PrivateKey) UnmarshalBinary(data []byte) error {
	return privk.unmarshal(cbor.Unmarshal, data)
}

func (privk *PrivateKey) UnmarshalJSON(data []byte) error {
	return privk.unmarshal(json.Unmarshal, data)
}

func (privk *PrivateKey) unmarshal(unmarshal func([]byte, interface{}) error, data []byte) error {
	var w privateKeyWire
	if err := decode(unmarshal, data, &w, func() bool { return w.X != nil }); err != nil {
		return err
	}
	privk.fromWire(&w)
	return nil
}

// PreIssuance

func (b *PreIssuance) wire() *preIssuanceWire { return &preIssuanceWire{R: b.r, K: b.k} }

func (b *PreIssuance) MarshalBinary() ([]byte, error) { return cbor.Marshal(b.wire()) }
func (b *PreIssuance) MarshalJSON() ([]byte, error)   { return json.Marshal(b.wire()) }

func (b *PreIssuance) UnmarshalBinary(data []byte) error {
	return b.unmarshal(cbor.Unmarshal, data)
}

func (b *PreIssuance) UnmarshalJSON(data []byte) error {
	return b.unmarshal(json.Unmarshal, data)
}

func (b *PreIssuance) unmarshal(unmarshal func([]byte, interface{}) error, data []byte) error {
	var w preIssuanceWire
	if err := decode(unmarshal, data, &w, func() bool { return w.R != nil && w.K != nil }); err != nil {
		return err
	}
	b.r, b.k = w.R, w.K
	return nil
}

// IssuanceRequest

func (req *IssuanceRequest) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*rawIssuanceRequest)(req))
}

func (req *IssuanceRequest) UnmarshalBinary(data []byte) error {
	*req = IssuanceRequest{}
	return decode(cbor.Unmarshal, data, (*rawIssuanceRequest)(req), req.complete)
}

func (req *IssuanceRequest) UnmarshalJSON(data []byte) error {
	*req = IssuanceRequest{}
	return decode(json.Unmarshal, data, (*rawIssuanceRequest)(req), req.complete)
}

// IssuanceResponse

func (resp *IssuanceResponse) MarshalBinary() ([]byte, error) {
	return cbor.Marshal((*rawIssuanceResponse)(resp))
}

func (resp *IssuanceResponse) UnmarshalBinary(data []byte) error {
	*resp = IssuanceResponse{}
	return decode(cbor.Unmarshal, data, (*rawIssuanceResponse)(resp), resp.complete)
}

func (resp *IssuanceResponse) UnmarshalJSON(data []byte) error {
	*resp = IssuanceResponse{}
	return decode(json.Unmarshal, data, (*rawIssuanceResponse)(resp), resp.complete)
}

// CreditToken

func (t *CreditToken) wire() *creditTokenWire {
	return &creditTokenWire{A: t.a, E: t.e, R: t.r, K: t.k, N: t.n}
}

func (t *CreditToken) MarshalBinary() ([]byte, error) { return cbor.Marshal(t.wire()) }
func (t *CreditToken) MarshalJSON() ([]byte, error)   { return json.Marshal(t.wire()) }

func (t *CreditToken) UnmarshalBinary(data []byte) error {
	return t.unmarshal(cbor.Unmarshal, data)
}

func (t *CreditToken) UnmarshalJSON(data []byte) error {
	return t.unmarshal(json.Unmarshal, data)
}

func (t *CreditToken) unmarshal(unmarshal func([]byte, interface{}) error, data []byte) error {
	var w creditTokenWire
	complete := func() bool {
		return w.A != nil && w.E != nil && w.R != nil && w.K != nil && w.N != nil
	}
	if err := decode(unmarshal, data, &w, complete); err != nil {
		return err
	}
	t.a, t.e, t.r, t.k, t.n = w.A, w.E, w.R, w.K, w.N
	return nil
}

func fingerprint(m encoding.BinaryMarshaler) string {
	bts, err := m.MarshalBinary()
	if err != nil {
		panic(err) // messages of elements and scalars always encode
	}
	h, err := multihash.Sum(bts, multihash.SHA2_256, -1)
	if err != nil {
		panic(err)
	}
	return h.B58String()
}
