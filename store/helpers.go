package store

// MemStore returns an in-memory store useful for tests and development.
// There is no persistence. The data lives in the cache btree; writes to the
// empty backing store are dropped instead of collected, so committing does
// not grow memory beyond the stored data.
func MemStore() CacheableKVStore {
	e := EmptyKVStore{}
	return NewBTreeCacheWrap(e, e.NewBatch())
}

//------------- empty store ---------------------

// EmptyKVStore never holds any data, used as a base layer to test caching.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

// Get always returns nil.
func (EmptyKVStore) Get(key []byte) ([]byte, error) { return nil, nil }

// Has always returns false.
func (EmptyKVStore) Has(key []byte) (bool, error) { return false, nil }

// Set is a noop.
func (EmptyKVStore) Set(key, value []byte) error { return nil }

// Delete is a noop.
func (EmptyKVStore) Delete(key []byte) error { return nil }

// Iterator is always empty.
func (EmptyKVStore) Iterator(start, end []byte) (Iterator, error) {
	return newSliceIterator(nil, false), nil
}

// ReverseIterator is always empty.
func (EmptyKVStore) ReverseIterator(start, end []byte) (Iterator, error) {
	return newSliceIterator(nil, true), nil
}

// NewBatch returns a batch that drops every operation. The store ignores
// writes, so there is nothing to collect or apply.
func (e EmptyKVStore) NewBatch() Batch { return discardBatch{} }

// discardBatch drops all operations instead of collecting them, for backing
// stores whose writes are no-ops.
type discardBatch struct{}

var _ Batch = discardBatch{}

func (discardBatch) Set(key, value []byte) error { return nil }
func (discardBatch) Delete(key []byte) error     { return nil }
func (discardBatch) Write() error                { return nil }

//------------- non-atomic batch ---------------------

// Op is either a set or a delete to be applied to a store.
type Op struct {
	delete bool
	key    []byte
	value  []byte
}

// Apply performs the stored operation on a writable store.
func (o Op) Apply(out KVStore) error {
	if o.delete {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// SetOp is a helper to create a set operation.
func SetOp(key, value []byte) Op {
	return Op{key: key, value: value}
}

// DelOp is a helper to create a del operation.
func DelOp(key []byte) Op {
	return Op{key: key, delete: true}
}

// NonAtomicBatch just piles up ops and applies them in order on Write. Only
// useful for in-memory backends where partial application cannot be observed
// from outside the cache wrap.
type NonAtomicBatch struct {
	out KVStore
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

// NewNonAtomicBatch creates an empty batch applying to the given store on
// Write.
func NewNonAtomicBatch(out KVStore) *NonAtomicBatch {
	return &NonAtomicBatch{
		out: out,
	}
}

// Set adds a set operation to the batch.
func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

// Delete adds a delete operation to the batch.
func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

// Write applies all operations in order and resets the batch.
func (b *NonAtomicBatch) Write() error {
	for _, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			return err
		}
	}
	b.ops = nil
	return nil
}
