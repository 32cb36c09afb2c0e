// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package credit

import (
	"io"

	"github.com/go-errors/errors"
	"github.com/privacybydesign/credit/group"
)

// PrivateKey represents an issuer's private key x, together with the
// corresponding public key.
type PrivateKey struct {
	x      *group.Scalar
	public *PublicKey
}

// PublicKey represents an issuer's public key w = G^x.
type PublicKey struct {
	W *group.Element `json:"w"`
}

// GenerateKey creates a new issuer private key, drawing x from rnd.
func GenerateKey(rnd io.Reader) (*PrivateKey, error) {
	for {
		x, err := group.RandomScalar(rnd)
		if err != nil {
			return nil, errors.WrapPrefix(err, "failed to generate private key", 0)
		}
		// x = 0 would make w the identity
		if !x.IsZero() {
			return NewPrivateKey(x), nil
		}
	}
}

// NewPrivateKey creates the private key with secret exponent x, and derives its
// public key.
func NewPrivateKey(x *group.Scalar) *PrivateKey {
	x = group.NewScalar().Set(x)
	return &PrivateKey{
		x:      x,
		public: &PublicKey{W: group.NewElement().ScalarBaseMult(x)},
	}
}

// Public returns a copy of the public key belonging to privk.
func (privk *PrivateKey) Public() *PublicKey {
	return &PublicKey{W: group.NewElement().Set(privk.public.W)}
}

// Equal reports whether pubk and other are the same key.
func (pubk *PublicKey) Equal(other *PublicKey) bool {
	return pubk.W.Equal(other.W)
}

func (pubk *PublicKey) complete() bool {
	return pubk != nil && pubk.W != nil
}
