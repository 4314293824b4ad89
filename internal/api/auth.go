package api

import (
	"context"

	"github.com/tokenmart/tokenmart"
)

type signerKey struct{}

// Authenticator reads the signer condition that withSigner stored in the
// request context. It implements x.Authenticator for the HTTP transport.
//
// The signer is taken from a request header on trust. This is a development
// transport; real deployments put a signature verifying decorator in front.
type Authenticator struct{}

func (Authenticator) GetConditions(ctx tokenmart.Context) []tokenmart.Condition {
	val := ctx.Value(signerKey{})
	if val == nil {
		return nil
	}
	return []tokenmart.Condition{val.(tokenmart.Condition)}
}

func (a Authenticator) HasAddress(ctx tokenmart.Context, addr tokenmart.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}

// withSigner derives a condition from the signer name and attaches it to the
// context. The same name always maps to the same address.
func withSigner(ctx context.Context, name string) context.Context {
	cond := tokenmart.NewCondition("http", "sig", []byte(name))
	return context.WithValue(ctx, signerKey{}, cond)
}

// SignerAddress returns the address a signer name resolves to. Exposed so
// operators can compute genesis addresses for named accounts.
func SignerAddress(name string) tokenmart.Address {
	return tokenmart.NewCondition("http", "sig", []byte(name)).Address()
}
