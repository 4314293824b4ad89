package store

import (
	"bytes"
	"sort"

	"github.com/tokenmart/tokenmart/errors"
)

// sliceIterator is a materialized iterator over a fixed set of key-value
// pairs.
type sliceIterator struct {
	kvs []keyValue
	cur int
}

type keyValue struct {
	key   []byte
	value []byte
}

var _ Iterator = (*sliceIterator)(nil)

func newSliceIterator(data map[string][]byte, reverse bool) *sliceIterator {
	kvs := make([]keyValue, 0, len(data))
	for key, value := range data {
		kvs = append(kvs, keyValue{key: []byte(key), value: value})
	}
	sort.Slice(kvs, func(i, j int) bool {
		res := bytes.Compare(kvs[i].key, kvs[j].key)
		if reverse {
			return res > 0
		}
		return res < 0
	})
	return &sliceIterator{kvs: kvs}
}

func (s *sliceIterator) Next() ([]byte, []byte, error) {
	if s.cur >= len(s.kvs) {
		return nil, nil, errors.ErrIteratorDone
	}
	kv := s.kvs[s.cur]
	s.cur++
	return kv.key, kv.value, nil
}

func (s *sliceIterator) Release() {
	s.cur = len(s.kvs)
}
