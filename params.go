package credit

import (
	"sync"

	"github.com/privacybydesign/credit/group"
	"github.com/privacybydesign/credit/internal/common"
)

// DefaultParamsSeed is the seed from which DefaultParams are derived.
const DefaultParamsSeed = "INNOCENCE"

// Params holds the public generators h0, h1 and h2. Their discrete logarithms
// with respect to G and each other are unknown, as they are derived from a
// public seed by hashing to the group.
type Params struct {
	H0 *group.Element `json:"h0"`
	H1 *group.Element `json:"h1"`
	H2 *group.Element `json:"h2"`
}

var defaultParams struct {
	once   sync.Once
	params *Params
}

// NewParams derives a parameter set from seed. The same seed always yields the
// same parameters.
func NewParams(seed []byte) *Params {
	rng := common.NewCPRNG(common.HashSeed(seed))
	hs := make([]*group.Element, 3)
	for i := range hs {
		h, err := group.RandomElement(rng)
		if err != nil {
			panic(err) // a fresh CPRNG does not run out
		}
		hs[i] = h
	}
	return &Params{H0: hs[0], H1: hs[1], H2: hs[2]}
}

// DefaultParams returns the parameters derived from DefaultParamsSeed. They are
// computed once and every call returns a fresh copy.
func DefaultParams() *Params {
	defaultParams.once.Do(func() {
		defaultParams.params = NewParams([]byte(DefaultParamsSeed))
	})
	p := defaultParams.params
	return &Params{
		H0: group.NewElement().Set(p.H0),
		H1: group.NewElement().Set(p.H1),
		H2: group.NewElement().Set(p.H2),
	}
}

// Equal reports whether p and q hold the same generators.
func (p *Params) Equal(q *Params) bool {
	return p.H0.Equal(q.H0) && p.H1.Equal(q.H1) && p.H2.Equal(q.H2)
}

func (p *Params) complete() bool {
	return p != nil && p.H0 != nil && p.H1 != nil && p.H2 != nil
}

// commit computes h0^r h1^k.
func (p *Params) commit(r, k *group.Scalar) *group.Element {
	return group.NewElement().Add(
		group.NewElement().ScalarMult(r, p.H0),
		group.NewElement().ScalarMult(k, p.H1),
	)
}

// certificateBase computes G + kr + h2^n, the value that the issuer raises to
// 1/(e+x).
func (p *Params) certificateBase(kr *group.Element, n *group.Scalar) *group.Element {
	xA := group.NewElement().Add(group.Generator(), kr)
	return xA.Add(xA, group.NewElement().ScalarMult(n, p.H2))
}
