package nft

import (
	"encoding/json"

	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
)

const pathIssueToken = "nft/issue"

var _ tokenmart.Msg = (*IssueTokenMsg)(nil)

// IssueTokenMsg mints a new token for the transaction signer. The metadata
// pointer cannot be changed afterwards.
type IssueTokenMsg struct {
	URI string `json:"uri"`
}

func (IssueTokenMsg) Path() string {
	return pathIssueToken
}

func (m *IssueTokenMsg) Marshal() ([]byte, error) {
	return json.Marshal(m)
}

func (m *IssueTokenMsg) Unmarshal(raw []byte) error {
	return json.Unmarshal(raw, m)
}

func (m *IssueTokenMsg) Validate() error {
	if len(m.URI) > maxURISize {
		return errors.Wrapf(errors.ErrInput, "uri longer than %d characters", maxURISize)
	}
	return nil
}
