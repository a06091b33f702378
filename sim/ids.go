package sim

// IDGenerator hands out monotonically increasing entity ids starting at zero.
// Each entity kind gets its own generator so that truck, mine and station ids are
// independent and reproducible for a given configuration.
//
// Thread-safety: NOT thread-safe. Owned by a single Coordinator.
type IDGenerator struct {
	next int
}

// NewIDGenerator returns a generator whose first id is start.
func NewIDGenerator(start int) *IDGenerator {
	return &IDGenerator{next: start}
}

// Next returns the next id and advances the generator.
func (g *IDGenerator) Next() int {
	id := g.next
	g.next++
	return id
}
