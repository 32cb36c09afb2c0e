// Copyright 2016 Maarten Everts. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package credit

import (
	"github.com/privacybydesign/credit/group"
)

// CreditToken represents an issued credit token: the issuer's certificate A
// with exponent e on the secrets r and k and the amount n. The secrets are
// only known to the holder.
type CreditToken struct {
	a          *group.Element
	e, r, k, n *group.Scalar
}

func (t *CreditToken) A() *group.Element { return group.NewElement().Set(t.a) }
func (t *CreditToken) E() *group.Scalar  { return group.NewScalar().Set(t.e) }
func (t *CreditToken) R() *group.Scalar  { return group.NewScalar().Set(t.r) }
func (t *CreditToken) K() *group.Scalar  { return group.NewScalar().Set(t.k) }

// N returns the credited amount.
func (t *CreditToken) N() *group.Scalar { return group.NewScalar().Set(t.n) }

// Commitment returns h0^r h1^k, as it was sent in the issuance request.
func (t *CreditToken) Commitment(params *Params) *group.Element {
	return params.commit(t.r, t.k)
}

func (t *CreditToken) complete() bool {
	return t != nil && t.a != nil && t.e != nil && t.r != nil && t.k != nil && t.n != nil
}
