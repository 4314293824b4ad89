package gconf

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenmart/tokenmart"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/markettest"
	"github.com/tokenmart/tokenmart/store"
)

type demoConf struct {
	Owner tokenmart.Address `json:"owner"`
	Rate  int64             `json:"rate"`
	Name  string            `json:"name"`
}

func (c *demoConf) Marshal() ([]byte, error)   { return json.Marshal(c) }
func (c *demoConf) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }
func (c *demoConf) Validate() error {
	if c.Rate < 0 {
		return errors.Wrap(errors.ErrState, "negative rate")
	}
	return nil
}
func (c *demoConf) GetOwner() tokenmart.Address { return c.Owner }

type demoUpdateMsg struct {
	Patch *demoConf `json:"patch"`
}

func (m *demoUpdateMsg) Path() string              { return "demo/update_configuration" }
func (m *demoUpdateMsg) Validate() error           { return nil }
func (m *demoUpdateMsg) Marshal() ([]byte, error)  { return json.Marshal(m) }
func (m *demoUpdateMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

// demoPatch uses a pointer field, so Rate can be explicitly set to zero.
type demoPatch struct {
	Rate *int64 `json:"rate"`
	Name string `json:"name"`
}

type demoPatchMsg struct {
	Patch *demoPatch `json:"patch"`
}

func (m *demoPatchMsg) Path() string               { return "demo/update_configuration" }
func (m *demoPatchMsg) Validate() error            { return nil }
func (m *demoPatchMsg) Marshal() ([]byte, error)   { return json.Marshal(m) }
func (m *demoPatchMsg) Unmarshal(raw []byte) error { return json.Unmarshal(raw, m) }

func TestSaveLoad(t *testing.T) {
	db := store.MemStore()
	owner := markettest.CondFromSeed("owner").Address()

	require.NoError(t, Save(db, "demo", &demoConf{Owner: owner, Rate: 7}))

	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int64(7), got.Rate)
	assert.True(t, owner.Equals(got.Owner))
}

func TestLoadMissing(t *testing.T) {
	db := store.MemStore()
	var got demoConf
	assert.True(t, errors.ErrNotFound.Is(Load(db, "demo", &got)))
}

func TestSaveInvalid(t *testing.T) {
	db := store.MemStore()
	err := Save(db, "demo", &demoConf{Rate: -1})
	assert.True(t, errors.ErrState.Is(err))
}

func TestInitConfig(t *testing.T) {
	db := store.MemStore()
	opts := tokenmart.Options{
		"conf": json.RawMessage(`{"demo": {"rate": 42, "name": "genesis"}}`),
	}
	var conf demoConf
	require.NoError(t, InitConfig(db, opts, "demo", &conf))

	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int64(42), got.Rate)
	assert.Equal(t, "genesis", got.Name)
}

func TestUpdateConfigurationHandler(t *testing.T) {
	db := store.MemStore()
	owner := markettest.CondFromSeed("owner")
	stranger := markettest.CondFromSeed("stranger")

	require.NoError(t, Save(db, "demo", &demoConf{
		Owner: owner.Address(),
		Rate:  7,
		Name:  "before",
	}))

	h := NewUpdateConfigurationHandler("demo", &demoConf{}, &markettest.Auth{Signer: owner})
	tx := &markettest.Tx{Msg: &demoUpdateMsg{Patch: &demoConf{Rate: 9}}}

	// A stranger cannot update.
	badH := NewUpdateConfigurationHandler("demo", &demoConf{}, &markettest.Auth{Signer: stranger})
	_, err := badH.Deliver(context.Background(), db, tx)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = h.Deliver(context.Background(), db, tx)
	require.NoError(t, err)

	// Only the non-zero patch fields were applied.
	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int64(9), got.Rate)
	assert.Equal(t, "before", got.Name)
	assert.True(t, owner.Address().Equals(got.Owner))
}

func TestUpdateConfigurationHandlerPointerFields(t *testing.T) {
	db := store.MemStore()
	owner := markettest.CondFromSeed("owner")

	require.NoError(t, Save(db, "demo", &demoConf{
		Owner: owner.Address(),
		Rate:  7,
		Name:  "before",
	}))

	h := NewUpdateConfigurationHandler("demo", &demoConf{}, &markettest.Auth{Signer: owner})

	// A nil pointer keeps the stored value.
	_, err := h.Deliver(context.Background(), db, &markettest.Tx{Msg: &demoPatchMsg{Patch: &demoPatch{}}})
	require.NoError(t, err)
	var got demoConf
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int64(7), got.Rate)

	// A non-nil pointer overwrites, even with a zero value.
	zero := int64(0)
	_, err = h.Deliver(context.Background(), db, &markettest.Tx{Msg: &demoPatchMsg{Patch: &demoPatch{Rate: &zero}}})
	require.NoError(t, err)
	require.NoError(t, Load(db, "demo", &got))
	assert.Equal(t, int64(0), got.Rate)
	assert.Equal(t, "before", got.Name)
}
