package nft

import (
	"strconv"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/x"
)

const issueTokenCost int64 = 100

// RegisterRoutes will instantiate and register all handlers in this package.
func RegisterRoutes(r tokenmart.Registry, auth x.Authenticator, ctrl Controller) {
	r.Handle(pathIssueToken, IssueTokenHandler{auth: auth, ctrl: ctrl})
}

// IssueTokenHandler mints new tokens.
type IssueTokenHandler struct {
	auth x.Authenticator
	ctrl Controller
}

var _ tokenmart.Handler = IssueTokenHandler{}

// Check verifies the message and returns the cost of executing it.
func (h IssueTokenHandler) Check(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tokenmart.CheckResult{GasAllocated: issueTokenCost}, nil
}

// Deliver mints the token for the main signer.
func (h IssueTokenHandler) Deliver(ctx tokenmart.Context, db tokenmart.KVStore, tx tokenmart.Tx) (*tokenmart.DeliverResult, error) {
	msg, signer, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}

	id, err := h.ctrl.Mint(db, signer, msg.URI)
	if err != nil {
		return nil, err
	}

	res := &tokenmart.DeliverResult{Data: TokenKey(id)}
	return res.WithEvent("issue_token", map[string]string{
		"token_id": strconv.FormatInt(id, 10),
		"owner":    signer.String(),
		"uri":      msg.URI,
	}), nil
}

func (h IssueTokenHandler) validate(ctx tokenmart.Context, tx tokenmart.Tx) (*IssueTokenMsg, tokenmart.Address, error) {
	var msg IssueTokenMsg
	if err := tokenmart.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	signer, err := x.MainSigner(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, signer, nil
}
