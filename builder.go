// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package credit

import (
	"io"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/credit/group"
)

// PreIssuance holds the client's secrets r and k for a credit token that is
// yet to be issued. It can be reused to retry a failed issuance.
type PreIssuance struct {
	r, k *group.Scalar
}

// NewPreIssuance draws fresh secrets from rnd.
func NewPreIssuance(rnd io.Reader) (*PreIssuance, error) {
	r, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate token secret", 0)
	}
	k, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate token secret", 0)
	}
	return &PreIssuance{r: r, k: k}, nil
}

// NewPreIssuanceFromSecrets creates a PreIssuance with the given secrets.
func NewPreIssuanceFromSecrets(r, k *group.Scalar) *PreIssuance {
	return &PreIssuance{
		r: group.NewScalar().Set(r),
		k: group.NewScalar().Set(k),
	}
}

// Commitment returns kr = h0^r h1^k.
func (b *PreIssuance) Commitment(params *Params) *group.Element {
	return params.commit(b.r, b.k)
}

// Request creates the IssuanceRequest to be sent to the issuer: the
// commitment to the secrets and a proof of knowledge of them, using fresh
// nonces from rnd on every call.
func (b *PreIssuance) Request(params *Params, rnd io.Reader) (*IssuanceRequest, error) {
	if !b.complete() || !params.complete() {
		return nil, ErrInvalidProof
	}
	rT, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate proof randomizer", 0)
	}
	kT, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate proof randomizer", 0)
	}

	kr := b.Commitment(params)
	krT := params.commit(rT, kT)
	c := requestChallenge(kr, krT)

	// r_z = r_t + r c, k_z = k_t + k c
	rZ := group.NewScalar().Mul(b.r, c)
	rZ.Add(rT, rZ)
	kZ := group.NewScalar().Mul(b.k, c)
	kZ.Add(kT, kZ)

	return &IssuanceRequest{KR: kr, C: c, RZ: rZ, KZ: kZ}, nil
}

// ConstructCreditToken verifies the issuer's response to req and, if it is
// correct, returns the resulting credit token. req must be a request created
// by b.
func (b *PreIssuance) ConstructCreditToken(params *Params, pk *PublicKey, req *IssuanceRequest, resp *IssuanceResponse) (*CreditToken, error) {
	if !b.complete() || !params.complete() {
		return nil, ErrInvalidProof
	}
	if !req.complete() || !req.KR.Equal(b.Commitment(params)) {
		Logger.Debug("issuance request does not belong to these token secrets")
		return nil, ErrInvalidProof
	}
	if !resp.Verify(params, pk, req.KR) {
		Logger.Debug("issuance response proof does not verify")
		return nil, ErrInvalidProof
	}

	return &CreditToken{
		a: group.NewElement().Set(resp.A),
		e: group.NewScalar().Set(resp.E),
		r: group.NewScalar().Set(b.r),
		k: group.NewScalar().Set(b.k),
		n: group.NewScalar().Set(resp.N),
	}, nil
}

func (b *PreIssuance) complete() bool {
	return b != nil && b.r != nil && b.k != nil
}
