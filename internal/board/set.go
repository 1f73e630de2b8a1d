package board

type void struct{}

type set[T comparable] map[T]void

func (s set[T]) has(v T) bool {
	_, ok := s[v]
	return ok
}

func (s set[T]) add(v T) {
	s[v] = void{}
}

func (s set[T]) remove(v T) {
	delete(s, v)
}

// keys returns the members in no particular order.
func (s set[T]) keys() []T {
	result := make([]T, 0, len(s))
	for k := range s {
		result = append(result, k)
	}
	return result
}
