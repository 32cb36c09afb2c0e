package credit

import (
	"io"

	"github.com/go-errors/errors"

	"github.com/privacybydesign/credit/group"
)

// Issue verifies the client's proof in req and, if it is correct, certifies
// the client's commitment together with the amount n. Randomness for the
// certificate exponent and the proof is drawn from rnd.
func (privk *PrivateKey) Issue(params *Params, req *IssuanceRequest, n *group.Scalar, rnd io.Reader) (*IssuanceResponse, error) {
	if n == nil || !req.Verify(params) {
		Logger.Debug("issuance request proof does not verify")
		return nil, ErrInvalidProof
	}

	e, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate certificate exponent", 0)
	}
	ex := group.NewScalar().Add(e, privk.x)
	if ex.IsZero() {
		Logger.Warn("drew certificate exponent e = -x")
		return nil, ErrDegenerateExponent
	}

	// a = (G + kr + h2^n)^(1/(e+x))
	xA := params.certificateBase(req.KR, n)
	a := group.NewElement().ScalarMult(group.NewScalar().Inverse(ex), xA)
	xG := group.NewElement().ScalarBaseMult(e)
	xG.Add(xG, privk.public.W)

	alpha, err := group.RandomScalar(rnd)
	if err != nil {
		return nil, errors.WrapPrefix(err, "failed to generate proof randomizer", 0)
	}
	yA := group.NewElement().ScalarMult(alpha, a)
	yG := group.NewElement().ScalarBaseMult(alpha)
	c := responseChallenge(e, a, xA, xG, yA, yG)

	// z = c (x+e) + alpha
	z := group.NewScalar().Mul(c, ex)
	z.Add(z, alpha)

	return &IssuanceResponse{
		A: a,
		E: e,
		C: c,
		Z: z,
		N: group.NewScalar().Set(n),
	}, nil
}

// VerifyCreditToken checks that token carries a certificate made with privk:
// A^(e+x) = G + h0^r h1^k + h2^n.
func (privk *PrivateKey) VerifyCreditToken(params *Params, token *CreditToken) bool {
	if !token.complete() || !params.complete() {
		return false
	}
	ex := group.NewScalar().Add(token.e, privk.x)
	lhs := group.NewElement().ScalarMult(ex, token.a)
	return lhs.Equal(params.certificateBase(token.Commitment(params), token.n))
}
