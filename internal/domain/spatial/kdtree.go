// Package spatial implements the KD-tree spatial index over system
// positions: k-NN and radius queries with a temperature filter, and the
// versioned binary serialization format from spec §4.3.
package spatial

import (
	"sort"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// leafBucketSize bounds how many entries a leaf node may hold before the
// tree splits again. Spec §4.3 recommends ~16.
const leafBucketSize = 16

// entry is a single indexed point: a system id, its position, and its
// denormalized minimum temperature for in-tree filtering.
type entry struct {
	id      starmap.SystemID
	pos     starmap.Position
	minTemp float64 // meaningful only when hasTemp; written as NaN on disk when unknown
	hasTemp bool
}

// node is either an internal split node (axis < 3) or a leaf bucket
// (axis == axisLeaf).
type node struct {
	axis  uint8 // 0=x,1=y,2=z, axisLeaf=leaf
	split float64
	left  *node
	right *node
	bucket []entry
}

const axisLeaf = 3

// Index is a balanced KD-tree over system positions, built once from a
// Starmap and shared read-only thereafter.
type Index struct {
	root       *node
	population int
}

// Build constructs a balanced KD-tree over every system in m. Construction
// is deterministic for a given input set: ties at the median are broken
// by ascending SystemID.
func Build(m *starmap.Starmap) *Index {
	systems := m.Systems() // already sorted by ascending SystemID
	entries := make([]entry, len(systems))
	for i, s := range systems {
		e := entry{id: s.ID, pos: s.Pos}
		if t, ok := s.Temperature(); ok {
			e.minTemp, e.hasTemp = t, true
		}
		entries[i] = e
	}
	return &Index{root: build(entries, 0), population: len(entries)}
}

func build(entries []entry, depth int) *node {
	if len(entries) <= leafBucketSize {
		bucket := make([]entry, len(entries))
		copy(bucket, entries)
		sort.Slice(bucket, func(i, j int) bool { return bucket[i].id < bucket[j].id })
		return &node{axis: axisLeaf, bucket: bucket}
	}

	axis := depth % 3
	sort.Slice(entries, func(i, j int) bool {
		vi, vj := axisValue(entries[i].pos, axis), axisValue(entries[j].pos, axis)
		if vi != vj {
			return vi < vj
		}
		return entries[i].id < entries[j].id
	})

	mid := len(entries) / 2
	splitVal := axisValue(entries[mid].pos, axis)

	return &node{
		axis:  uint8(axis),
		split: splitVal,
		left:  build(entries[:mid], depth+1),
		right: build(entries[mid:], depth+1),
	}
}

func axisValue(p starmap.Position, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// Population returns the number of systems indexed.
func (idx *Index) Population() int {
	return idx.population
}
