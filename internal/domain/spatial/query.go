package spatial

import (
	"container/heap"
	"math"

	"github.com/Scetrov/evefrontier-routecore/internal/domain/starmap"
)

// Hit is a single query result: a system id and its distance, in
// light-years, from the query origin.
type Hit struct {
	ID       starmap.SystemID
	Distance float64
}

// Filter narrows a k-NN or radius query before a candidate is admitted,
// per spec §4.3: an optional hard radius, an optional maximum
// temperature, and whether to exclude the system exactly at the origin.
type Filter struct {
	Radius     *float64
	MaxTempK   *float64
	ExcludeID  *starmap.SystemID
}

func (f Filter) admits(e entry, distance float64) bool {
	if f.Radius != nil && distance > *f.Radius {
		return false
	}
	if f.MaxTempK != nil && e.hasTemp && e.minTemp > *f.MaxTempK {
		return false
	}
	if f.ExcludeID != nil && e.id == *f.ExcludeID {
		return false
	}
	return true
}

// maxHeap keeps the current k-best candidates ordered so the worst is at
// the top, letting QueryKNN evict it in O(log k) when a closer candidate
// arrives.
type maxHeap []Hit

func (h maxHeap) Len() int { return len(h) }
func (h maxHeap) Less(i, j int) bool {
	if h[i].Distance != h[j].Distance {
		return h[i].Distance > h[j].Distance // max-heap: worst (largest) on top
	}
	return h[i].ID > h[j].ID // stable tie-break: ascending id wins eviction order
}
func (h maxHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *maxHeap) Push(x interface{}) { *h = append(*h, x.(Hit)) }
func (h *maxHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// QueryKNN performs a best-first search for the k nearest systems to
// origin, subject to filter, pruning subtrees whose partition bound
// exceeds the current worst retained candidate. Results are ordered by
// ascending distance, stably tie-broken by ascending SystemID.
func (idx *Index) QueryKNN(origin starmap.Position, k int, filter Filter) []Hit {
	if k <= 0 || idx.root == nil {
		return nil
	}
	h := &maxHeap{}
	heap.Init(h)
	searchKNN(idx.root, origin, k, filter, h)

	out := make([]Hit, h.Len())
	copy(out, *h)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	// heap order is "worst first" only at the root; sort explicitly for a
	// deterministic ascending-distance, ascending-id result.
	sortHits(out)
	return out
}

func searchKNN(n *node, origin starmap.Position, k int, filter Filter, h *maxHeap) {
	if n == nil {
		return
	}
	if n.axis == axisLeaf {
		for _, e := range n.bucket {
			d := origin.DistanceTo(e.pos)
			if !filter.admits(e, d) {
				continue
			}
			considerCandidate(h, k, Hit{ID: e.id, Distance: d})
		}
		return
	}

	originVal := axisValue(origin, int(n.axis))
	diff := originVal - n.split

	near, far := n.left, n.right
	if diff > 0 {
		near, far = n.right, n.left
	}

	searchKNN(near, origin, k, filter, h)

	// Prune: only descend into far if the hyperplane distance could still
	// beat the current worst retained candidate (or we don't have k yet).
	if h.Len() < k || math.Abs(diff) < worst(h) {
		searchKNN(far, origin, k, filter, h)
	}
}

func worst(h *maxHeap) float64 {
	if h.Len() == 0 {
		return math.Inf(1)
	}
	return (*h)[0].Distance
}

func considerCandidate(h *maxHeap, k int, hit Hit) {
	if h.Len() < k {
		heap.Push(h, hit)
		return
	}
	if hit.Distance < worst(h) || (hit.Distance == worst(h) && hit.ID < (*h)[0].ID) {
		heap.Pop(h)
		heap.Push(h, hit)
	}
}

func sortHits(hits []Hit) {
	// Small result sets (k is bounded, typically <= a few hundred);
	// insertion sort keeps this allocation-free and the tie-break simple.
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && less(hits[j], hits[j-1]); j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
}

func less(a, b Hit) bool {
	if a.Distance != b.Distance {
		return a.Distance < b.Distance
	}
	return a.ID < b.ID
}

// QueryRadius returns every system within radius of origin, ordered by
// ascending distance then ascending SystemID.
func (idx *Index) QueryRadius(origin starmap.Position, radius float64) []Hit {
	var out []Hit
	r := radius
	f := Filter{Radius: &r}
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		if n.axis == axisLeaf {
			for _, e := range n.bucket {
				d := origin.DistanceTo(e.pos)
				if f.admits(e, d) {
					out = append(out, Hit{ID: e.id, Distance: d})
				}
			}
			return
		}
		diff := axisValue(origin, int(n.axis)) - n.split
		if diff <= 0 {
			walk(n.left)
			if math.Abs(diff) <= radius {
				walk(n.right)
			}
		} else {
			walk(n.right)
			if math.Abs(diff) <= radius {
				walk(n.left)
			}
		}
	}
	walk(idx.root)
	sortHits(out)
	return out
}
