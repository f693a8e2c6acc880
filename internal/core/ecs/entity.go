package ecs

// EntityID encodes a 32-bit index in the lower bits and a 32-bit generation
// in the upper bits. Generation increments on destroy to invalidate stale refs.
type EntityID uint64

func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

func (id EntityID) Index() uint32      { return uint32(id) }
func (id EntityID) Generation() uint32 { return uint32(id >> 32) }

// EntityPool hands out generational IDs and recycles destroyed indices.
type EntityPool struct {
	generations []uint32
	freeList    []uint32
	nextIndex   uint32
}

func NewEntityPool() *EntityPool {
	return &EntityPool{
		generations: make([]uint32, 0, 64),
		freeList:    make([]uint32, 0, 16),
	}
}

func (p *EntityPool) Create() EntityID {
	if len(p.freeList) > 0 {
		idx := p.freeList[len(p.freeList)-1]
		p.freeList = p.freeList[:len(p.freeList)-1]
		return NewEntityID(idx, p.generations[idx])
	}
	idx := p.nextIndex
	p.nextIndex++
	if int(idx) >= len(p.generations) {
		p.generations = append(p.generations, 0)
	}
	return NewEntityID(idx, p.generations[idx])
}

func (p *EntityPool) Alive(id EntityID) bool {
	idx := id.Index()
	if idx >= p.nextIndex {
		return false
	}
	return p.generations[idx] == id.Generation()
}

func (p *EntityPool) Destroy(id EntityID) {
	if !p.Alive(id) {
		return // already destroyed (stale reference)
	}
	idx := id.Index()
	p.generations[idx]++
	p.freeList = append(p.freeList, idx)
}

// Entity is a named container of behaviors sharing one transform.
// Behaviors run in insertion order. Accessed only from the frame loop.
type Entity struct {
	ID        EntityID
	Name      string
	Transform Transform

	behaviors []Behavior
}

func newEntity(id EntityID, name string) *Entity {
	return &Entity{
		ID:        id,
		Name:      name,
		Transform: NewTransform(),
		behaviors: make([]Behavior, 0, 4),
	}
}

// AddBehavior appends b to the update list and returns it.
// Variant constructors call this after binding b to the entity.
func (e *Entity) AddBehavior(b Behavior) Behavior {
	e.behaviors = append(e.behaviors, b)
	return b
}

// RemoveBehavior detaches b. Unknown behaviors are ignored.
func (e *Entity) RemoveBehavior(b Behavior) {
	for i, c := range e.behaviors {
		if c == b {
			e.behaviors = append(e.behaviors[:i], e.behaviors[i+1:]...)
			return
		}
	}
}

// Behavior returns the first attached behavior of the given kind.
func (e *Entity) Behavior(kind Kind) (Behavior, bool) {
	for _, b := range e.behaviors {
		if b.Kind() == kind {
			return b, true
		}
	}
	return nil, false
}

// Behaviors returns the attached behaviors in update order.
func (e *Entity) Behaviors() []Behavior {
	return e.behaviors
}

// Update runs every behavior once, in order.
func (e *Entity) Update(frame *FrameContext) {
	for _, b := range e.behaviors {
		b.Update(frame)
	}
}
