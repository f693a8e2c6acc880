package ecs

// SafeList is an ordered collection that tolerates Add and Remove while a ForEach
// pass is running. Elements added during a pass are first visited by the next pass;
// elements removed during a pass are skipped for the rest of it and never seen again.
//
// Not safe for concurrent use. ForEach must not be called from inside ForEach.
type SafeList[T comparable] struct {
	items     []T
	addQueue  []T
	removeSet map[T]struct{}
	iterating bool
}

func NewSafeList[T comparable]() *SafeList[T] {
	return &SafeList[T]{
		items:     make([]T, 0, 16),
		addQueue:  make([]T, 0, 8),
		removeSet: make(map[T]struct{}),
	}
}

// Add queues e for the next pass.
func (l *SafeList[T]) Add(e T) {
	l.addQueue = append(l.addQueue, e)
}

// Remove hides e immediately and drops it at the next flush.
func (l *SafeList[T]) Remove(e T) {
	l.removeSet[e] = struct{}{}
}

// ForEach flushes pending mutations, then calls fn for every committed element
// that has not been removed. Mutations made by fn are flushed before returning,
// except adds, which wait for the next pass.
func (l *SafeList[T]) ForEach(fn func(T)) {
	if l.iterating {
		panic("ecs: nested SafeList.ForEach")
	}
	l.iterating = true
	defer func() { l.iterating = false }()

	l.flushAdds()
	l.flushRemoves()
	for _, e := range l.items {
		if _, gone := l.removeSet[e]; gone {
			continue
		}
		fn(e)
	}
	l.flushRemoves()
}

// Items returns a copy of the committed elements, minus pending removals.
func (l *SafeList[T]) Items() []T {
	out := make([]T, 0, len(l.items))
	for _, e := range l.items {
		if _, gone := l.removeSet[e]; !gone {
			out = append(out, e)
		}
	}
	return out
}

// Len counts committed elements, pending adds excluded.
func (l *SafeList[T]) Len() int {
	return len(l.items)
}

// Empty reports whether there is nothing committed and nothing queued.
func (l *SafeList[T]) Empty() bool {
	return len(l.items)+len(l.addQueue) == 0
}

func (l *SafeList[T]) flushAdds() {
	if len(l.addQueue) == 0 {
		return
	}
	l.items = append(l.items, l.addQueue...)
	l.addQueue = l.addQueue[:0]
}

// flushRemoves also cancels queued adds so an element added and removed within
// one pass never surfaces.
func (l *SafeList[T]) flushRemoves() {
	if len(l.removeSet) == 0 {
		return
	}
	l.items = filterOut(l.items, l.removeSet)
	l.addQueue = filterOut(l.addQueue, l.removeSet)
	clear(l.removeSet)
}

func filterOut[T comparable](s []T, drop map[T]struct{}) []T {
	kept := s[:0]
	for _, e := range s {
		if _, gone := drop[e]; !gone {
			kept = append(kept, e)
		}
	}
	var zero T
	for i := len(kept); i < len(s); i++ {
		s[i] = zero
	}
	return kept
}
