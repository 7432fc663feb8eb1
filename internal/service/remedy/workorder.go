package remedy

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// CounterGenerator issues date-stamped work-order ids from an atomic
// process-wide counter. Safe under concurrent plan creation; ids restart
// from the seed on process restart, so they are unique per process only.
type CounterGenerator struct {
	counter atomic.Int64
}

// NewCounterGenerator seeds the counter. The conventional seed is 1000 so
// ids read WO-<date>-1001 onward.
func NewCounterGenerator(seed int64) *CounterGenerator {
	g := &CounterGenerator{}
	g.counter.Store(seed)
	return g
}

func (g *CounterGenerator) Next() string {
	n := g.counter.Add(1)
	return fmt.Sprintf("WO-%s-%04d", time.Now().Format("20060102"), n)
}

// UUIDGenerator issues globally unique work-order ids. Preferred when
// plans are created from multiple processes.
type UUIDGenerator struct{}

func (UUIDGenerator) Next() string {
	return fmt.Sprintf("WO-%s-%s", time.Now().Format("20060102"), uuid.NewString()[:8])
}
