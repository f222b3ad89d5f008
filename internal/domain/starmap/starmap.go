package starmap

import (
	"sort"
	"strings"
)

// Starmap is the immutable, process-lifetime root aggregate: a catalog of
// systems, their gate adjacency, and a name index for resolution. It is
// constructed once by a loader and never mutated afterward, so it requires
// no locking to share across concurrent requests.
type Starmap struct {
	systems   map[SystemID]*System
	adjacency map[SystemID]map[SystemID]struct{}
	nameIndex map[string]SystemID // normalized name -> id
}

// Build validates and assembles a Starmap from raw systems and gate jumps.
// It enforces the load-time invariants from spec §4.1: adjacency symmetry,
// no self-loops, every adjacent id resolves to a known system, and names
// are unique after normalization. Any violation fails the whole load -
// the core never patches silently.
func Build(systems []System, jumps []GateJump) (*Starmap, error) {
	m := &Starmap{
		systems:   make(map[SystemID]*System, len(systems)),
		adjacency: make(map[SystemID]map[SystemID]struct{}, len(systems)),
		nameIndex: make(map[string]SystemID, len(systems)),
	}

	for i := range systems {
		sys := systems[i]
		if _, exists := m.systems[sys.ID]; exists {
			return nil, NewLoadError(Corrupt, "duplicate system id %d", sys.ID)
		}
		m.systems[sys.ID] = &sys
		m.adjacency[sys.ID] = make(map[SystemID]struct{})

		normalized := normalize(sys.Name)
		if other, exists := m.nameIndex[normalized]; exists {
			return nil, NewLoadError(NameCollision, "name %q used by both %d and %d", sys.Name, other, sys.ID)
		}
		m.nameIndex[normalized] = sys.ID
	}

	for _, j := range jumps {
		if j.From == j.To {
			return nil, NewLoadError(Corrupt, "self-loop gate jump at system %d", j.From)
		}
		if _, ok := m.systems[j.From]; !ok {
			return nil, NewLoadError(Corrupt, "gate jump references unknown system %d", j.From)
		}
		if _, ok := m.systems[j.To]; !ok {
			return nil, NewLoadError(Corrupt, "gate jump references unknown system %d", j.To)
		}
		m.adjacency[j.From][j.To] = struct{}{}
		m.adjacency[j.To][j.From] = struct{}{}
	}

	// Symmetry is structural by construction above, but verify it anyway
	// as a defense against a future change that builds adjacency another
	// way; a failure here is a bug, not bad input.
	for a, neighbors := range m.adjacency {
		for b := range neighbors {
			if _, ok := m.adjacency[b][a]; !ok {
				return nil, NewLoadError(Corrupt, "adjacency asymmetry between %d and %d", a, b)
			}
		}
	}

	return m, nil
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// System returns the system for id. The id is assumed valid; callers must
// only pass ids that originated from this Starmap (resolve, neighbors, or
// spatial index results). Returns nil if unknown - an internal invariant
// violation that callers should treat as a bug, not user input.
func (m *Starmap) System(id SystemID) *System {
	return m.systems[id]
}

// Systems returns every system in the map. The returned slice is a fresh
// copy; callers may not assume stable ordering across calls other than
// ascending SystemID.
func (m *Starmap) Systems() []*System {
	out := make([]*System, 0, len(m.systems))
	for _, s := range m.systems {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len reports the number of systems in the map.
func (m *Starmap) Len() int {
	return len(m.systems)
}

// Neighbors returns the gate-adjacent system ids for id. A missing id
// yields an empty set, not an error.
func (m *Starmap) Neighbors(id SystemID) []SystemID {
	set, ok := m.adjacency[id]
	if !ok {
		return nil
	}
	out := make([]SystemID, 0, len(set))
	for n := range set {
		out = append(out, n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// HasGate reports whether a and b are gate-connected.
func (m *Starmap) HasGate(a, b SystemID) bool {
	_, ok := m.adjacency[a][b]
	return ok
}

// Resolve looks up a system by display name, case-insensitively. On a
// miss it returns a *NotFound carrying up to 5 suggestions ranked by
// ascending normalized Damerau-Levenshtein distance, then lexicographic
// order.
func (m *Starmap) Resolve(name string) (SystemID, error) {
	normalized := normalize(name)
	if id, ok := m.nameIndex[normalized]; ok {
		return id, nil
	}
	return 0, &NotFound{Name: name, Suggestions: m.suggest(normalized, 5)}
}

// Name returns the display name originally recorded for id, or "" if the
// id is unknown.
func (m *Starmap) Name(id SystemID) string {
	if s, ok := m.systems[id]; ok {
		return s.Name
	}
	return ""
}

type candidate struct {
	name string
	dist int
}

func (m *Starmap) suggest(normalizedQuery string, limit int) []string {
	candidates := make([]candidate, 0, len(m.systems))
	for _, s := range m.systems {
		candidates = append(candidates, candidate{
			name: s.Name,
			dist: damerauLevenshtein(normalizedQuery, normalize(s.Name)),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return candidates[i].name < candidates[j].name
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	out := make([]string, len(candidates))
	for i, c := range candidates {
		out[i] = c.name
	}
	return out
}

// damerauLevenshtein computes the optimal-string-alignment Damerau-
// Levenshtein edit distance between a and b: insertions, deletions,
// substitutions, and adjacent transpositions each cost 1.
func damerauLevenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)

	d := make([][]int, la+1)
	for i := range d {
		d[i] = make([]int, lb+1)
		d[i][0] = i
	}
	for j := 0; j <= lb; j++ {
		d[0][j] = j
	}

	for i := 1; i <= la; i++ {
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			sub := d[i-1][j-1] + cost
			best := del
			if ins < best {
				best = ins
			}
			if sub < best {
				best = sub
			}
			if i > 1 && j > 1 && ra[i-1] == rb[j-2] && ra[i-2] == rb[j-1] {
				if trans := d[i-2][j-2] + 1; trans < best {
					best = trans
				}
			}
			d[i][j] = best
		}
	}
	return d[la][lb]
}
