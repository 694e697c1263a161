// internal/game/memory.go
package game

import "sort"

// Memory is the opponent's record of which positions it has seen for each icon.
// Entries hold one or two unmatched positions and are dropped once their icon is matched.
type Memory struct {
	seen map[string]map[int]struct{}
}

func NewMemory() *Memory {
	return &Memory{seen: make(map[string]map[int]struct{})}
}

// Reset forgets everything.
func (m *Memory) Reset() {
	m.seen = make(map[string]map[int]struct{})
}

// Observe records that icon was revealed at index.
func (m *Memory) Observe(icon string, index int) {
	positions, ok := m.seen[icon]
	if !ok {
		positions = make(map[int]struct{}, 2)
		m.seen[icon] = positions
	}
	positions[index] = struct{}{}
}

// Forget drops the entry for a matched icon.
func (m *Memory) Forget(icon string) {
	delete(m.seen, icon)
}

// Positions returns the known positions of icon in ascending order.
func (m *Memory) Positions(icon string) []int {
	positions := m.seen[icon]
	out := make([]int, 0, len(positions))
	for idx := range positions {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Icons returns the remembered icons in a stable order so seeded strategies are reproducible.
func (m *Memory) Icons() []string {
	out := make([]string, 0, len(m.seen))
	for icon := range m.seen {
		out = append(out, icon)
	}
	sort.Strings(out)
	return out
}

// Knows reports whether icon has an entry.
func (m *Memory) Knows(icon string) bool {
	_, ok := m.seen[icon]
	return ok
}

func (m *Memory) Len() int {
	return len(m.seen)
}

// Snapshot returns icon -> positions for serialization.
func (m *Memory) Snapshot() map[string][]int {
	out := make(map[string][]int, len(m.seen))
	for icon := range m.seen {
		if positions := m.Positions(icon); len(positions) > 0 {
			out[icon] = positions
		}
	}
	return out
}

// MemoryFromSnapshot rebuilds a memory from its serialized form.
func MemoryFromSnapshot(snapshot map[string][]int) *Memory {
	m := NewMemory()
	for icon, positions := range snapshot {
		for _, idx := range positions {
			m.Observe(icon, idx)
		}
	}
	return m
}
