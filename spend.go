package credit

import (
	"io"

	"github.com/privacybydesign/credit/group"
)

// SpendProof is presented by a token holder to spend charge from a token.
type SpendProof struct {
	nonce  *group.Scalar
	charge *group.Scalar
}

// PreRefund holds the client's secrets for the token that replaces a spent
// one: fresh r and k, and the remaining amount m.
type PreRefund struct {
	r, k, m *group.Scalar
}

// Refund is the issuer's reply to a SpendProof.
type Refund struct{}

// Nonce returns the nonce that identifies the spent token.
func (p *SpendProof) Nonce() (*group.Scalar, error) {
	return nil, ErrNotImplemented
}

// Charge returns the amount being spent.
func (p *SpendProof) Charge() (*group.Scalar, error) {
	return nil, ErrNotImplemented
}

// ProveSpend spends charge from t.
func (t *CreditToken) ProveSpend(params *Params, charge *group.Scalar, pk *PublicKey, rnd io.Reader) (*SpendProof, *PreRefund, error) {
	return nil, nil, ErrNotImplemented
}

// Refund verifies proof and issues a token for the remaining amount.
func (privk *PrivateKey) Refund(params *Params, proof *SpendProof, rnd io.Reader) (*Refund, error) {
	return nil, ErrNotImplemented
}

// ConstructCreditToken turns the issuer's refund into the replacement token.
func (p *PreRefund) ConstructCreditToken(params *Params, proof *SpendProof, refund *Refund, pk *PublicKey) (*CreditToken, error) {
	return nil, ErrNotImplemented
}
