// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package credit implements anonymous credit tokens, issued blindly over the
// ristretto255 group. A client commits to two secret scalars r and k,
//
//	kr = h0^r h1^k,
//
// and proves knowledge of the opening to the issuer. The issuer, holding the
// private key x, certifies the commitment together with a credited amount n as
//
//	a = (G + kr + h2^n)^(1/(e+x))
//
// for a fresh random e, and proves that it used the key belonging to its
// public key w = G^x. The issuer never learns r and k, so it cannot link the
// resulting CreditToken to the issuance session.
//
// A session looks as follows (see credit_test.go):
//
//	params := credit.DefaultParams()
//	sk, _ := credit.GenerateKey(rand.Reader)
//	pre, _ := credit.NewPreIssuance(rand.Reader)
//	req, _ := pre.Request(params, rand.Reader)
//	resp, _ := sk.Issue(params, req, group.ScalarFromUint64(20), rand.Reader)
//	token, _ := pre.ConstructCreditToken(params, sk.Public(), req, resp)
//
// Spending and refunding tokens is not implemented yet; the corresponding
// types are declared and their operations return ErrNotImplemented.
package credit
