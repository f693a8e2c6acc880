package ecs

// Manager owns every live entity. Creation and removal go through a SafeList, so
// behaviors may spawn or destroy entities from inside their own Update.
// IDs of removed entities are recycled after the pass that drops them.
type Manager struct {
	pool         *EntityPool
	entities     *SafeList[*Entity]
	destroyQueue []EntityID
}

func NewManager() *Manager {
	return &Manager{
		pool:         NewEntityPool(),
		entities:     NewSafeList[*Entity](),
		destroyQueue: make([]EntityID, 0, 8),
	}
}

// CreateEntity allocates an entity that joins the next update pass.
func (m *Manager) CreateEntity(name string) *Entity {
	e := newEntity(m.pool.Create(), name)
	m.entities.Add(e)
	return e
}

// RemoveEntity hides e from the current pass and queues its ID for recycling.
func (m *Manager) RemoveEntity(e *Entity) {
	if !m.pool.Alive(e.ID) {
		return
	}
	m.entities.Remove(e)
	m.destroyQueue = append(m.destroyQueue, e.ID)
}

// Alive reports whether e has not been removed.
func (m *Manager) Alive(e *Entity) bool {
	if !m.pool.Alive(e.ID) {
		return false
	}
	for _, id := range m.destroyQueue {
		if id == e.ID {
			return false
		}
	}
	return true
}

// Update runs one full pass over every entity.
func (m *Manager) Update(frame *FrameContext) {
	m.entities.ForEach(func(e *Entity) {
		e.Update(frame)
	})
	m.flushDestroyQueue()
}

// Each walks the committed entities without running behaviors. Entities removed
// since the last pass are skipped.
func (m *Manager) Each(fn func(*Entity)) {
	for _, e := range m.entities.Items() {
		fn(e)
	}
}

// Find returns the first committed entity with the given name.
func (m *Manager) Find(name string) (*Entity, bool) {
	for _, e := range m.entities.Items() {
		if e.Name == name {
			return e, true
		}
	}
	return nil, false
}

// Len counts committed entities.
func (m *Manager) Len() int {
	return m.entities.Len()
}

func (m *Manager) flushDestroyQueue() {
	for _, id := range m.destroyQueue {
		m.pool.Destroy(id)
	}
	m.destroyQueue = m.destroyQueue[:0]
}
