// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package credit

import (
	"github.com/go-errors/errors"

	"github.com/privacybydesign/credit/group"
	"github.com/privacybydesign/credit/internal/common"
)

var (
	// ErrInvalidProof is returned when a proof in an issuance message does
	// not verify, or when the message is incomplete.
	ErrInvalidProof = errors.New("proof verification failed")
	// ErrDegenerateExponent is returned by Issue in the negligible case that
	// e+x = 0. The issuance can be retried with the same request.
	ErrDegenerateExponent = errors.New("degenerate certificate exponent")
	// ErrNotImplemented is returned by the spend and refund operations.
	ErrNotImplemented = errors.New("not implemented")
)

const (
	requestLabel  = "request"
	responseLabel = "respond"
)

// requestChallenge binds the commitment kr and the proof commitment krT.
func requestChallenge(kr, krT *group.Element) *group.Scalar {
	return common.Challenge(requestLabel, func(t *common.Transcript) {
		t.AddElements(kr, krT)
	})
}

func responseChallenge(e *group.Scalar, a, xA, xG, yA, yG *group.Element) *group.Scalar {
	return common.Challenge(responseLabel, func(t *common.Transcript) {
		t.AddScalar(e)
		t.AddElements(a, xA, xG, yA, yG)
	})
}

// IssuanceRequest is sent by the client to the issuer. It contains the
// commitment KR = h0^r h1^k and a proof of knowledge of its opening (r, k).
type IssuanceRequest struct {
	KR *group.Element `json:"kr"`
	C  *group.Scalar  `json:"c"`
	RZ *group.Scalar  `json:"r_z"`
	KZ *group.Scalar  `json:"k_z"`
}

// Verify verifies whether the proof of knowledge of the opening of KR is correct.
func (req *IssuanceRequest) Verify(params *Params) bool {
	if !req.complete() || !params.complete() {
		return false
	}
	return requestChallenge(req.KR, req.reconstructCommit(params)).Equal(req.C)
}

// reconstructCommit computes h0^r_z h1^k_z KR^-c, which equals the prover's
// commitment h0^r_t h1^k_t for an honest proof.
func (req *IssuanceRequest) reconstructCommit(params *Params) *group.Element {
	krT := params.commit(req.RZ, req.KZ)
	return krT.Sub(krT, group.NewElement().ScalarMult(req.C, req.KR))
}

func (req *IssuanceRequest) complete() bool {
	return req != nil && req.KR != nil && req.C != nil && req.RZ != nil && req.KZ != nil
}

// IssuanceResponse is sent by the issuer to the client. It contains the
// certificate A on the client's commitment and the credited amount N, with
// exponent E, and a proof that A^(E+x) = G + KR + h2^N for the issuer's x.
type IssuanceResponse struct {
	A *group.Element `json:"a"`
	E *group.Scalar  `json:"e"`
	C *group.Scalar  `json:"c"`
	Z *group.Scalar  `json:"z"`
	N *group.Scalar  `json:"n"`
}

// Verify verifies the issuer's proof against its public key and the
// commitment kr that was sent in the request.
func (resp *IssuanceResponse) Verify(params *Params, pk *PublicKey, kr *group.Element) bool {
	if !resp.complete() || !params.complete() || !pk.complete() || kr == nil {
		return false
	}

	// x_A = G + kr + h2^n, x_G = G^e w
	xA := params.certificateBase(kr, resp.N)
	xG := group.NewElement().ScalarBaseMult(resp.E)
	xG.Add(xG, pk.W)

	// y_A = A^z x_A^-c, y_G = G^z x_G^-c
	yA := group.NewElement().ScalarMult(resp.Z, resp.A)
	yA.Sub(yA, group.NewElement().ScalarMult(resp.C, xA))
	yG := group.NewElement().ScalarBaseMult(resp.Z)
	yG.Sub(yG, group.NewElement().ScalarMult(resp.C, xG))

	return responseChallenge(resp.E, resp.A, xA, xG, yA, yG).Equal(resp.C)
}

func (resp *IssuanceResponse) complete() bool {
	return resp != nil && resp.A != nil && resp.E != nil && resp.C != nil && resp.Z != nil && resp.N != nil
}
