package catalog

import (
	"strconv"
	"sync"
	"time"
)

// idGenerator hands out millisecond timestamp ids that strictly increase
// within the process, skipping any id already taken.
type idGenerator struct {
	mu   sync.Mutex
	now  func() time.Time
	last int64
}

func newIDGenerator(now func() time.Time) *idGenerator {
	if now == nil {
		now = time.Now
	}
	return &idGenerator{now: now}
}

func (g *idGenerator) next(taken func(id string) bool) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	candidate := g.now().UnixMilli()
	if candidate <= g.last {
		candidate = g.last + 1
	}
	for taken != nil && taken(strconv.FormatInt(candidate, 10)) {
		candidate++
	}
	g.last = candidate
	return strconv.FormatInt(candidate, 10)
}
