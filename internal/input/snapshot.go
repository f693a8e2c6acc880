// Package input samples platform key and pointer events into a per-frame snapshot.
package input

import "sync"

// KeyState is the sampled state of one logical key.
// JustPressed is true only for the frame on which the key went down.
type KeyState struct {
	Held        bool
	JustPressed bool
}

// Snapshot holds the current key and pointer state. The platform source writes it
// from its own goroutines; the frame loop reads it during the update pass and calls
// Update exactly once per frame, after every behavior has read it.
type Snapshot struct {
	mu       sync.Mutex
	codes    KeyTable
	keys     map[string]*KeyState
	pointerX float64
	pointerY float64
}

func NewSnapshot(table KeyTable) *Snapshot {
	s := &Snapshot{
		codes: make(KeyTable, len(table)),
		keys:  make(map[string]*KeyState, len(table)),
	}
	for code, name := range table {
		s.codes[code] = name
		s.keys[name] = &KeyState{}
	}
	return s
}

// SetKey records a key transition for a raw key code. Unmapped codes are ignored.
func (s *Snapshot) SetKey(code int, pressed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	name, ok := s.codes[code]
	if !ok {
		return
	}
	k := s.keys[name]
	// keep an unconsumed edge when auto-repeat or a release lands in the same frame
	k.JustPressed = k.JustPressed || (pressed && !k.Held)
	k.Held = pressed
}

// SetPointer normalizes screen coordinates into [-1, 1] with Y pointing up.
func (s *Snapshot) SetPointer(x, y, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointerX = clampUnit(x/width*2 - 1)
	s.pointerY = clampUnit(-(y/height)*2 + 1)
}

// Key returns the state of a logical key. Unknown names read as released.
func (s *Snapshot) Key(name string) KeyState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k, ok := s.keys[name]; ok {
		return *k
	}
	return KeyState{}
}

// Held reports whether any of the named keys is down.
func (s *Snapshot) Held(names ...string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		if k, ok := s.keys[n]; ok && k.Held {
			return true
		}
	}
	return false
}

// Pointer returns the latest normalized pointer position.
func (s *Snapshot) Pointer() (x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointerX, s.pointerY
}

// Update clears every JustPressed edge. Call once per frame.
func (s *Snapshot) Update() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.keys {
		k.JustPressed = false
	}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
