package markettest

import (
	"fmt"
	"sync/atomic"

	"github.com/tokenmart/tokenmart"
)

var conditionCounter int64

// NewCondition returns a mocked condition, unique within the process.
func NewCondition() tokenmart.Condition {
	n := atomic.AddInt64(&conditionCounter, 1)
	return tokenmart.NewCondition("test", "sig", []byte(fmt.Sprint(n)))
}

// CondFromSeed returns a deterministic condition derived from the seed.
// The same seed always produces the same condition and address.
func CondFromSeed(seed string) tokenmart.Condition {
	return tokenmart.NewCondition("test", "sig", []byte(seed))
}
