package internal

// OrderedSet is a set that remembers insertion order.
// Snapshots list members in that order, which keeps traces deterministic.
type OrderedSet[T comparable] struct {
	index   map[T]int
	members []T
}

// NewOrderedSet returns an empty set.
func NewOrderedSet[T comparable]() *OrderedSet[T] {
	return &OrderedSet[T]{index: make(map[T]int)}
}

// Add inserts value and reports whether it was absent.
func (set *OrderedSet[T]) Add(value T) bool {
	if _, exists := set.index[value]; exists {
		return false
	}
	set.index[value] = len(set.members)
	set.members = append(set.members, value)
	return true
}

// Remove deletes value and reports whether it was present.
func (set *OrderedSet[T]) Remove(value T) bool {
	position, exists := set.index[value]
	if !exists {
		return false
	}
	delete(set.index, value)
	copy(set.members[position:], set.members[position+1:])
	set.members = set.members[:len(set.members)-1]
	for i := position; i < len(set.members); i++ {
		set.index[set.members[i]] = i
	}
	return true
}

// Has reports membership.
func (set *OrderedSet[T]) Has(value T) bool {
	_, exists := set.index[value]
	return exists
}

// Len returns the number of members.
func (set *OrderedSet[T]) Len() int { return len(set.members) }

// Snapshot returns an independent copy of the members in insertion order.
// The result is never nil so empty snapshots compare equal.
func (set *OrderedSet[T]) Snapshot() []T {
	out := make([]T, len(set.members))
	copy(out, set.members)
	return out
}

// CloneSlice copies a slice so the caller owns the result.
func CloneSlice[T any](values []T) []T {
	if values == nil {
		return nil
	}
	out := make([]T, len(values))
	copy(out, values)
	return out
}

// Extend returns a new slice holding path followed by next.
// The input is never aliased.
func Extend[T any](path []T, next T) []T {
	out := make([]T, len(path), len(path)+1)
	copy(out, path)
	return append(out, next)
}
