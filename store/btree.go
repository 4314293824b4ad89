package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/tokenmart/tokenmart/errors"
)

// bTreeDegree is the branching factor of the cache btree.
const bTreeDegree = 2

// BTreeCacheable adds a btree-based CacheWrap strategy to any KVStore.
type BTreeCacheable struct {
	KVStore
}

var _ CacheableKVStore = BTreeCacheable{}

// CacheWrap returns a BTreeCacheWrap that can be later written to this store,
// or rolled back.
func (b BTreeCacheable) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b.KVStore, NewNonAtomicBatch(b.KVStore))
}

// BTreeCacheWrap places a btree cache over a KVStore. Reads check the cache
// first and fall through to the backing store. Writes go to the cache and are
// recorded in a batch that is applied to the backing store on Write.
type BTreeCacheWrap struct {
	bt    *btree.BTree
	back  ReadOnlyKVStore
	batch Batch
}

var _ KVCacheWrap = BTreeCacheWrap{}

// NewBTreeCacheWrap initializes a btree cache around the given store. All
// writes must go through the batch; ReadOnlyKVStore is used to emphasize
// that.
func NewBTreeCacheWrap(kv ReadOnlyKVStore, batch Batch) BTreeCacheWrap {
	return BTreeCacheWrap{
		bt:    btree.New(bTreeDegree),
		back:  kv,
		batch: batch,
	}
}

// CacheWrap layers another cache on top of this one. Don't change horses in
// mid-stream: writing the outer cache after discarding this one is undefined.
func (b BTreeCacheWrap) CacheWrap() KVCacheWrap {
	return NewBTreeCacheWrap(b, NewNonAtomicBatch(b))
}

// Write syncs with the underlying store and invalidates the cache.
func (b BTreeCacheWrap) Write() error {
	err := b.batch.Write()
	b.Discard()
	return err
}

// Discard invalidates this CacheWrap and releases all cached data.
func (b BTreeCacheWrap) Discard() {
	for stop := false; !stop; {
		rem := b.bt.DeleteMin()
		stop = (rem == nil)
	}
}

// Set writes to the btree and to the batch.
func (b BTreeCacheWrap) Set(key, value []byte) error {
	b.bt.ReplaceOrInsert(newSetItem(key, value))
	return b.batch.Set(key, value)
}

// Delete deletes from the btree and writes to the batch.
func (b BTreeCacheWrap) Delete(key []byte) error {
	b.bt.ReplaceOrInsert(newDeletedItem(key))
	return b.batch.Delete(key)
}

// Get reads from the btree if cached, else from the backing store.
func (b BTreeCacheWrap) Get(key []byte) ([]byte, error) {
	res := b.bt.Get(bkey{key})
	switch t := res.(type) {
	case setItem:
		return t.value, nil
	case deletedItem:
		return nil, nil
	case nil:
		return b.back.Get(key)
	default:
		return nil, errors.Wrapf(errors.ErrType, "unknown cache item: %T", t)
	}
}

// Has reads from the btree if cached, else from the backing store.
func (b BTreeCacheWrap) Has(key []byte) (bool, error) {
	res := b.bt.Get(bkey{key})
	switch t := res.(type) {
	case setItem:
		return true, nil
	case deletedItem:
		return false, nil
	case nil:
		return b.back.Has(key)
	default:
		return false, errors.Wrapf(errors.ErrType, "unknown cache item: %T", t)
	}
}

// Iterator over a domain of keys in ascending order.
func (b BTreeCacheWrap) Iterator(start, end []byte) (Iterator, error) {
	return b.iterator(start, end, false)
}

// ReverseIterator over a domain of keys in descending order.
func (b BTreeCacheWrap) ReverseIterator(start, end []byte) (Iterator, error) {
	return b.iterator(start, end, true)
}

// iterator merges the cached writes with the backing store content. Both
// ranges are materialized; the stores we support are in-memory so this is
// cheap enough.
func (b BTreeCacheWrap) iterator(start, end []byte, reverse bool) (Iterator, error) {
	merged := make(map[string][]byte)
	deleted := make(map[string]bool)

	var backIter Iterator
	var err error
	if reverse {
		backIter, err = b.back.ReverseIterator(start, end)
	} else {
		backIter, err = b.back.Iterator(start, end)
	}
	if err != nil {
		return nil, err
	}
	defer backIter.Release()
	for {
		key, value, err := backIter.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		merged[string(key)] = value
	}

	ascendRange(b.bt, start, end, func(i btree.Item) bool {
		switch t := i.(type) {
		case setItem:
			merged[string(t.key)] = t.value
		case deletedItem:
			delete(merged, string(t.key))
			deleted[string(t.key)] = true
		}
		return true
	})
	for key := range deleted {
		delete(merged, key)
	}

	return newSliceIterator(merged, reverse), nil
}

// ascendRange visits all cache items with start <= key < end. A nil bound
// means an open range on that side.
func ascendRange(bt *btree.BTree, start, end []byte, fn func(i btree.Item) bool) {
	wrapped := func(i btree.Item) bool {
		key := i.(keyer).Key()
		if end != nil && bytes.Compare(key, end) >= 0 {
			return false
		}
		return fn(i)
	}
	if start == nil {
		bt.Ascend(wrapped)
	} else {
		bt.AscendGreaterOrEqual(bkey{start}, wrapped)
	}
}

//------------------- btree items ------------------

// keyer is implemented by every item stored in the cache btree.
type keyer interface {
	Key() []byte
}

// bkey is a querying key, it never gets inserted.
type bkey struct {
	key []byte
}

// setItem is a cached write.
type setItem struct {
	key   []byte
	value []byte
}

// deletedItem marks a key as removed in the cache.
type deletedItem struct {
	key []byte
}

func newSetItem(key, value []byte) setItem {
	return setItem{key: key, value: value}
}

func newDeletedItem(key []byte) deletedItem {
	return deletedItem{key: key}
}

func (k bkey) Key() []byte        { return k.key }
func (i setItem) Key() []byte     { return i.key }
func (i deletedItem) Key() []byte { return i.key }

func (k bkey) Less(than btree.Item) bool {
	return bytes.Compare(k.key, than.(keyer).Key()) < 0
}

func (i setItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(keyer).Key()) < 0
}

func (i deletedItem) Less(than btree.Item) bool {
	return bytes.Compare(i.key, than.(keyer).Key()) < 0
}
