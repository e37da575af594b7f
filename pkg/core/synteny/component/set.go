package component

// Set is a disjoint-set forest over string IDs.
//
// IDs are mapped once to dense indices; parent and rank live in plain slices
// indexed by those. The zero value is an empty set; use [New].
// Set is not safe for concurrent mutation.
type Set struct {
	index  map[string]int
	ids    []string
	parent []int
	rank   []uint8
}

// New creates a set in which every distinct ID is its own singleton.
// Repeated IDs share one element.
func New(ids []string) *Set {
	s := &Set{
		index:  make(map[string]int, len(ids)),
		ids:    make([]string, 0, len(ids)),
		parent: make([]int, 0, len(ids)),
		rank:   make([]uint8, 0, len(ids)),
	}
	for _, id := range ids {
		if _, ok := s.index[id]; ok {
			continue
		}
		i := len(s.ids)
		s.index[id] = i
		s.ids = append(s.ids, id)
		s.parent = append(s.parent, i)
		s.rank = append(s.rank, 0)
	}
	return s
}

// Len returns the number of distinct IDs.
func (s *Set) Len() int { return len(s.ids) }

// Has reports whether id is an element of the set.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// Find returns the root ID of id's component, or false if id is unknown.
func (s *Set) Find(id string) (string, bool) {
	i, ok := s.index[id]
	if !ok {
		return "", false
	}
	return s.ids[s.find(i)], true
}

// Root is Find for callers that only handle known IDs. Unknown IDs are their
// own root.
func (s *Set) Root(id string) string {
	if r, ok := s.Find(id); ok {
		return r
	}
	return id
}

// Same reports whether a and b are known and in the same component.
func (s *Set) Same(a, b string) bool {
	ra, okA := s.Find(a)
	rb, okB := s.Find(b)
	return okA && okB && ra == rb
}

// Union merges the components of a and b. It returns true if two distinct
// components were merged; unknown IDs are ignored.
//
// The higher-rank root wins; on equal rank the root of a wins and its rank
// grows.
func (s *Set) Union(a, b string) bool {
	ia, okA := s.index[a]
	ib, okB := s.index[b]
	if !okA || !okB {
		return false
	}
	ra, rb := s.find(ia), s.find(ib)
	if ra == rb {
		return false
	}
	switch {
	case s.rank[ra] > s.rank[rb]:
		s.parent[rb] = ra
	case s.rank[ra] < s.rank[rb]:
		s.parent[ra] = rb
	default:
		s.parent[rb] = ra
		s.rank[ra]++
	}
	return true
}

// Members returns every ID in id's component, in insertion order.
func (s *Set) Members(id string) []string {
	root, ok := s.Find(id)
	if !ok {
		return nil
	}
	var out []string
	for i, other := range s.ids {
		if s.ids[s.find(i)] == root {
			out = append(out, other)
		}
	}
	return out
}

// IDs returns the elements in insertion order.
func (s *Set) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// find walks to the root, compressing the path behind it.
func (s *Set) find(i int) int {
	root := i
	for s.parent[root] != root {
		root = s.parent[root]
	}
	for s.parent[i] != root {
		next := s.parent[i]
		s.parent[i] = root
		i = next
	}
	return root
}
