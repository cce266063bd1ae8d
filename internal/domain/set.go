package domain

// Set is an insertion-ordered collection of unique tags. The zero value is an
// empty set and marshals as an omitted field.
type Set[T ~string] []T

// NewSet builds a set from values, dropping empty strings and duplicates while
// keeping first-seen order.
func NewSet[T ~string](values ...T) Set[T] {
	var out Set[T]
	for _, v := range values {
		out = out.add(v)
	}
	return out
}

// Len returns the number of members.
func (s Set[T]) Len() int {
	return len(s)
}

// Contains reports whether v is a member.
func (s Set[T]) Contains(v T) bool {
	for _, item := range s {
		if item == v {
			return true
		}
	}
	return false
}

// Union returns a new set holding the members of s followed by the members of
// other not already present. It returns nil when both are empty.
func (s Set[T]) Union(other Set[T]) Set[T] {
	var out Set[T]
	for _, v := range s {
		out = out.add(v)
	}
	for _, v := range other {
		out = out.add(v)
	}
	return out
}

// Clone returns a copy that shares no backing array with s.
func (s Set[T]) Clone() Set[T] {
	if len(s) == 0 {
		return nil
	}
	return append(Set[T](nil), s...)
}

// Strings returns the members as plain strings.
func (s Set[T]) Strings() []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		out = append(out, string(v))
	}
	return out
}

func (s Set[T]) add(v T) Set[T] {
	if v == "" || s.Contains(v) {
		return s
	}
	return append(s, v)
}
