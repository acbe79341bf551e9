package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Delete removes v if present.
func (s Set[T]) Delete(v T) { delete(s, v) }

// Len returns the number of members.
func (s Set[T]) Len() int { return len(s) }

// Clone returns a shallow copy.
func (s Set[T]) Clone() Set[T] {
	out := make(Set[T], len(s))
	for k := range s {
		out[k] = struct{}{}
	}
	return out
}

// Difference returns the members of s that are not in o.
func (s Set[T]) Difference(o Set[T]) Set[T] {
	out := make(Set[T])
	for k := range s {
		if !o.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}

// Union returns the members of either set.
func (s Set[T]) Union(o Set[T]) Set[T] {
	out := s.Clone()
	for k := range o {
		out[k] = struct{}{}
	}
	return out
}

// Intersect returns the members present in both sets.
func (s Set[T]) Intersect(o Set[T]) Set[T] {
	out := make(Set[T])
	for k := range s {
		if o.Has(k) {
			out[k] = struct{}{}
		}
	}
	return out
}
