package orm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tokenmart/tokenmart/errors"
	"github.com/tokenmart/tokenmart/store"
)

// counter is a minimal model for bucket tests.
type counter struct {
	Count int64 `json:"count"`
}

func (c *counter) Marshal() ([]byte, error)  { return json.Marshal(c) }
func (c *counter) Unmarshal(raw []byte) error { return json.Unmarshal(raw, c) }

func (c *counter) Validate() error {
	if c.Count < 0 {
		return errors.Wrap(errors.ErrState, "negative counter")
	}
	return nil
}

func TestModelBucketPutOne(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 5}))

	var got counter
	require.NoError(t, b.One(db, []byte("a"), &got))
	assert.Equal(t, int64(5), got.Count)
}

func TestModelBucketOneMissing(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	var got counter
	err := b.One(db, []byte("unknown"), &got)
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketPutInvalid(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	err := b.Put(db, []byte("a"), &counter{Count: -1})
	assert.True(t, errors.ErrState.Is(err))
	assert.Error(t, b.Has(db, []byte("a")))
}

func TestModelBucketDelete(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 1}))
	require.NoError(t, b.Delete(db, []byte("a")))
	assert.True(t, errors.ErrNotFound.Is(b.Has(db, []byte("a"))))

	err := b.Delete(db, []byte("a"))
	assert.True(t, errors.ErrNotFound.Is(err))
}

func TestModelBucketIterate(t *testing.T) {
	db := store.MemStore()
	b := NewModelBucket("cnts", &counter{})
	other := NewModelBucket("others", &counter{})

	require.NoError(t, b.Put(db, []byte("a"), &counter{Count: 1}))
	require.NoError(t, b.Put(db, []byte("b"), &counter{Count: 2}))
	require.NoError(t, other.Put(db, []byte("zzz"), &counter{Count: 99}))

	var keys []string
	var total int64
	err := b.Iterate(db, func(key []byte, m Model) error {
		keys = append(keys, string(key))
		total += m.(*counter).Count
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)
	assert.Equal(t, int64(3), total)
}

func TestSequence(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("cnts", "id")

	latest, _, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(0), latest)

	for i := int64(1); i < 10; i++ {
		n, err := s.NextInt(db)
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}

	latest, raw, err := s.Latest(db)
	require.NoError(t, err)
	assert.Equal(t, int64(9), latest)
	assert.Equal(t, EncodeSequence(9), raw)
}
