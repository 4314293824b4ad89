package tokenmart

// ReadOnlyKVStore is a simple interface to query data.
type ReadOnlyKVStore interface {
	// Get returns nil iff key doesn't exist. Panics on nil key.
	Get(key []byte) ([]byte, error)

	// Has checks if a key exists. Panics on nil key.
	Has(key []byte) (bool, error)

	// Iterator over a domain of keys in ascending order. End is exclusive.
	// Start must be less than end, or the Iterator is invalid.
	// CONTRACT: No writes may happen within a domain while an iterator
	// exists over it.
	Iterator(start, end []byte) (Iterator, error)

	// ReverseIterator iterates over the same domain of keys as Iterator,
	// but in descending order.
	ReverseIterator(start, end []byte) (Iterator, error)
}

// KVStore is a simple interface to get/set data.
type KVStore interface {
	ReadOnlyKVStore

	// Set sets the key. Panics on nil key.
	Set(key, value []byte) error

	// Delete deletes the key. Panics on nil key.
	Delete(key []byte) error
}

// Iterator allows iteration over a set of keys within a range.
//
//	for {
//	    key, value, err := iter.Next()
//	    if errors.ErrIteratorDone.Is(err) {
//	        break
//	    } else if err != nil {
//	        return err
//	    }
//	    ...
//	}
//	iter.Release()
type Iterator interface {
	// Next moves the iterator to the next sequential key in the store, as
	// defined by order of iteration. Once the end of range is reached,
	// every call returns errors.ErrIteratorDone.
	Next() (key, value []byte, err error)

	// Release frees all resources held by the iterator. It is safe to
	// call it more than once.
	Release()
}

// CacheableKVStore is a KVStore that supports CacheWrapping.
//
// CacheWrap() should not return a Committer, since Commit() on cache-wraps
// makes no sense.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap is a scratch-pad of uncommitted writes that is visible to all
// queries through it. At the end, call Write to flush the writes to the
// underlying store, or Discard to drop them. This is the mechanism that makes
// every state transition all-or-nothing.
type KVCacheWrap interface {
	// CacheableKVStore allows usage of this cache recursively.
	CacheableKVStore

	// Write syncs with the underlying store.
	Write() error

	// Discard invalidates this CacheWrap and releases all data.
	Discard()
}

// Batch groups a set of writes to apply atomically to a KVStore.
type Batch interface {
	Set(key, value []byte) error
	Delete(key []byte) error
	Write() error
}
