// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package credit

import (
	"bytes"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/privacybydesign/credit/group"
	"github.com/privacybydesign/credit/internal/common"
)

var (
	testPrivK1, testPrivK2 *PrivateKey
	testAmount             = group.ScalarFromUint64(20)
)

func init() {
	testPrivK1 = NewPrivateKey(group.ScalarFromUint64(0x5ec1e7))
	testPrivK2 = NewPrivateKey(group.ScalarFromUint64(0x5ec1e8))
}

func seededReader(label string) *common.CPRNG {
	return common.NewCPRNG(common.HashSeed([]byte(label)))
}

func plusOne(s *group.Scalar) *group.Scalar {
	return group.NewScalar().Add(s, group.ScalarFromUint64(1))
}

func plusG(e *group.Element) *group.Element {
	return group.NewElement().Add(e, group.Generator())
}

// issue runs the protocol up to the issuer's response.
func issue(t *testing.T, params *Params, sk *PrivateKey) (*PreIssuance, *IssuanceRequest, *IssuanceResponse) {
	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	req, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)
	resp, err := sk.Issue(params, req, testAmount, rand.Reader)
	require.NoError(t, err)
	return pre, req, resp
}

func TestFullIssuance(t *testing.T) {
	params := DefaultParams()
	for i := 0; i < 100; i++ {
		sk, err := GenerateKey(rand.Reader)
		require.NoError(t, err)
		pre, req, resp := issue(t, params, sk)

		assert.True(t, req.Verify(params), "IssuanceRequest does not verify, whereas it should.")
		assert.True(t, resp.Verify(params, sk.Public(), req.KR), "IssuanceResponse does not verify, whereas it should.")

		token, err := pre.ConstructCreditToken(params, sk.Public(), req, resp)
		require.NoError(t, err)
		assert.True(t, token.N().Equal(testAmount))
		assert.True(t, token.Commitment(params).Equal(req.KR))
		assert.True(t, sk.VerifyCreditToken(params, token), "CreditToken does not verify, whereas it should.")
	}
}

func TestIssuanceVector(t *testing.T) {
	params := DefaultParams()
	r, k := group.ScalarFromUint64(1), group.ScalarFromUint64(2)
	pre := NewPreIssuanceFromSecrets(r, k)

	kr := group.NewElement().Add(params.H0, group.NewElement().Add(params.H1, params.H1))
	require.True(t, pre.Commitment(params).Equal(kr), "kr != h0 + 2 h1")

	run := func() ([]byte, *CreditToken) {
		rng := seededReader("vector")
		req, err := pre.Request(params, rng)
		require.NoError(t, err)
		resp, err := testPrivK1.Issue(params, req, testAmount, rng)
		require.NoError(t, err)
		token, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
		require.NoError(t, err)
		bts, err := resp.MarshalBinary()
		require.NoError(t, err)
		return bts, token
	}

	resp1, token := run()
	resp2, _ := run()
	assert.Equal(t, resp1, resp2, "issuance is not deterministic for a fixed random source")

	assert.True(t, token.R().Equal(r))
	assert.True(t, token.K().Equal(k))
	n, ok := token.N().Uint64()
	assert.True(t, ok)
	assert.Equal(t, uint64(20), n)
	assert.True(t, testPrivK1.VerifyCreditToken(params, token))

	// A^(e+x) = G + h0 + 2 h1 + 20 h2
	ex := group.NewScalar().Add(token.E(), group.ScalarFromUint64(0x5ec1e7))
	lhs := group.NewElement().ScalarMult(ex, token.A())
	rhs := group.NewElement().Add(group.Generator(), kr)
	rhs.Add(rhs, group.NewElement().ScalarMult(testAmount, params.H2))
	assert.True(t, lhs.Equal(rhs))
}

func TestRequestForgery(t *testing.T) {
	params := DefaultParams()
	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	req, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)

	forgeries := map[string]*IssuanceRequest{
		"kr":  {KR: plusG(req.KR), C: req.C, RZ: req.RZ, KZ: req.KZ},
		"c":   {KR: req.KR, C: plusOne(req.C), RZ: req.RZ, KZ: req.KZ},
		"r_z": {KR: req.KR, C: req.C, RZ: plusOne(req.RZ), KZ: req.KZ},
		"k_z": {KR: req.KR, C: req.C, RZ: req.RZ, KZ: plusOne(req.KZ)},
		"nil": {KR: req.KR, C: req.C, RZ: req.RZ},
	}
	for name, forged := range forgeries {
		t.Run(name, func(t *testing.T) {
			assert.False(t, forged.Verify(params), "Forged IssuanceRequest verifies, whereas it should not.")
			_, err := testPrivK1.Issue(params, forged, testAmount, rand.Reader)
			assert.ErrorIs(t, err, ErrInvalidProof)
		})
	}

	_, err = testPrivK1.Issue(params, nil, testAmount, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = testPrivK1.Issue(params, req, nil, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)

	_, err = testPrivK1.Issue(params, req, testAmount, rand.Reader)
	assert.NoError(t, err)
}

func TestResponseForgery(t *testing.T) {
	params := DefaultParams()
	pre, req, resp := issue(t, params, testPrivK1)

	forgeries := map[string]*IssuanceResponse{
		"a":   {A: plusG(resp.A), E: resp.E, C: resp.C, Z: resp.Z, N: resp.N},
		"e":   {A: resp.A, E: plusOne(resp.E), C: resp.C, Z: resp.Z, N: resp.N},
		"c":   {A: resp.A, E: resp.E, C: plusOne(resp.C), Z: resp.Z, N: resp.N},
		"z":   {A: resp.A, E: resp.E, C: resp.C, Z: plusOne(resp.Z), N: resp.N},
		"n":   {A: resp.A, E: resp.E, C: resp.C, Z: resp.Z, N: plusOne(resp.N)},
		"nil": {A: resp.A, E: resp.E, C: resp.C, Z: resp.Z},
	}
	for name, forged := range forgeries {
		t.Run(name, func(t *testing.T) {
			_, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, forged)
			assert.ErrorIs(t, err, ErrInvalidProof)
		})
	}

	_, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	assert.NoError(t, err)
}

func TestWrongIssuerKey(t *testing.T) {
	params := DefaultParams()
	pre, req, resp := issue(t, params, testPrivK1)

	_, err := pre.ConstructCreditToken(params, testPrivK2.Public(), req, resp)
	assert.ErrorIs(t, err, ErrInvalidProof)

	token, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	require.NoError(t, err)
	assert.False(t, testPrivK2.VerifyCreditToken(params, token), "CreditToken verifies under another key, whereas it should not.")
}

func TestForeignRequest(t *testing.T) {
	params := DefaultParams()
	_, req, resp := issue(t, params, testPrivK1)

	other, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	_, err = other.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestParamsMismatch(t *testing.T) {
	other := NewParams([]byte("GUILT"))
	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	req, err := pre.Request(other, rand.Reader)
	require.NoError(t, err)

	_, err = testPrivK1.Issue(DefaultParams(), req, testAmount, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
}

// Changing returned keys and parameters leaves the issuer's state intact.
func TestPublicValuesAreCopies(t *testing.T) {
	sk, err := GenerateKey(rand.Reader)
	require.NoError(t, err)
	pk := sk.Public()
	pk.W.Add(pk.W, group.Generator())
	params := DefaultParams()
	params.H0.Add(params.H0, group.Generator())
	params.H2 = group.Generator()

	params = DefaultParams()
	pre, req, resp := issue(t, params, sk)
	token, err := pre.ConstructCreditToken(params, sk.Public(), req, resp)
	require.NoError(t, err)
	assert.True(t, sk.VerifyCreditToken(DefaultParams(), token))
}

func TestMissingInputs(t *testing.T) {
	params := DefaultParams()
	pre, req, resp := issue(t, params, testPrivK1)

	_, err := pre.Request(nil, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = pre.Request(&Params{H0: params.H0}, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = new(PreIssuance).Request(params, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)

	_, err = pre.ConstructCreditToken(nil, testPrivK1.Public(), req, resp)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = new(PreIssuance).ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = pre.ConstructCreditToken(params, nil, req, resp)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = pre.ConstructCreditToken(params, testPrivK1.Public(), req, nil)
	assert.ErrorIs(t, err, ErrInvalidProof)

	_, err = testPrivK1.Issue(nil, req, testAmount, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
	_, err = testPrivK1.Issue(params, nil, testAmount, rand.Reader)
	assert.ErrorIs(t, err, ErrInvalidProof)
}

func TestRetryIssuance(t *testing.T) {
	params := DefaultParams()
	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)

	req1, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)
	req2, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)
	assert.True(t, req1.KR.Equal(req2.KR))
	assert.False(t, req1.C.Equal(req2.C), "requests reuse proof randomizers")

	forged := *req1
	forged.RZ = plusOne(req1.RZ)
	_, err = testPrivK1.Issue(params, &forged, testAmount, rand.Reader)
	require.ErrorIs(t, err, ErrInvalidProof)

	resp, err := testPrivK1.Issue(params, req2, testAmount, rand.Reader)
	require.NoError(t, err)
	_, err = pre.ConstructCreditToken(params, testPrivK1.Public(), req2, resp)
	assert.NoError(t, err)
}

func TestDegenerateExponent(t *testing.T) {
	params := DefaultParams()
	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	req, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)

	// 64 bytes that reduce to e = -x
	negX := group.NewScalar().Neg(group.ScalarFromUint64(0x5ec1e7))
	rng := bytes.NewReader(append(negX.Bytes(), make([]byte, 32)...))
	_, err = testPrivK1.Issue(params, req, testAmount, rng)
	assert.ErrorIs(t, err, ErrDegenerateExponent)

	_, err = testPrivK1.Issue(params, req, testAmount, rand.Reader)
	assert.NoError(t, err)
}

func TestRandomnessFailure(t *testing.T) {
	params := DefaultParams()
	empty := bytes.NewReader(nil)

	_, err := GenerateKey(empty)
	assert.Error(t, err)
	_, err = NewPreIssuance(empty)
	assert.Error(t, err)

	pre, err := NewPreIssuance(rand.Reader)
	require.NoError(t, err)
	_, err = pre.Request(params, empty)
	assert.Error(t, err)

	req, err := pre.Request(params, rand.Reader)
	require.NoError(t, err)
	_, err = testPrivK1.Issue(params, req, testAmount, empty)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidProof)
}

func TestConcurrentIssuance(t *testing.T) {
	params := DefaultParams()
	rng := seededReader("concurrent")

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			pre, err := NewPreIssuance(rng)
			if err != nil {
				return err
			}
			req, err := pre.Request(params, rng)
			if err != nil {
				return err
			}
			resp, err := testPrivK1.Issue(params, req, testAmount, rng)
			if err != nil {
				return err
			}
			_, err = pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
			return err
		})
	}
	require.NoError(t, g.Wait())
}

func TestVerifyCreditToken(t *testing.T) {
	params := DefaultParams()
	pre, req, resp := issue(t, params, testPrivK1)
	token, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	require.NoError(t, err)
	require.True(t, testPrivK1.VerifyCreditToken(params, token))

	forged := *token
	forged.n = plusOne(token.n)
	assert.False(t, testPrivK1.VerifyCreditToken(params, &forged), "CreditToken with raised amount verifies, whereas it should not.")

	forged = *token
	forged.r = plusOne(token.r)
	assert.False(t, testPrivK1.VerifyCreditToken(params, &forged))

	assert.False(t, testPrivK1.VerifyCreditToken(params, &CreditToken{}))
}

func TestSpendNotImplemented(t *testing.T) {
	params := DefaultParams()
	pre, req, resp := issue(t, params, testPrivK1)
	token, err := pre.ConstructCreditToken(params, testPrivK1.Public(), req, resp)
	require.NoError(t, err)

	proof, prerefund, err := token.ProveSpend(params, group.ScalarFromUint64(5), testPrivK1.Public(), rand.Reader)
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Nil(t, proof)
	assert.Nil(t, prerefund)

	_, err = testPrivK1.Refund(params, &SpendProof{}, rand.Reader)
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = (&PreRefund{}).ConstructCreditToken(params, &SpendProof{}, &Refund{}, testPrivK1.Public())
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = (&SpendProof{}).Nonce()
	assert.ErrorIs(t, err, ErrNotImplemented)
	_, err = (&SpendProof{}).Charge()
	assert.ErrorIs(t, err, ErrNotImplemented)
}
