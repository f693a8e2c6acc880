package ecs

// Kind enumerates the behavior variants the simulation knows about.
type Kind uint8

const (
	KindShape Kind = iota + 1
	KindPlanet
	KindPlayer
	KindCamera
)

func (k Kind) String() string {
	switch k {
	case KindShape:
		return "shape"
	case KindPlanet:
		return "planet"
	case KindPlayer:
		return "player"
	case KindCamera:
		return "camera"
	}
	return "unknown"
}

// Behavior is a unit of per-frame logic bound to exactly one Entity.
type Behavior interface {
	Kind() Kind
	Entity() *Entity
	Update(frame *FrameContext)
}

// BaseBehavior carries the owner back-reference and a no-op Update.
// Variants embed it and override what they need.
type BaseBehavior struct {
	owner *Entity
}

func NewBaseBehavior(owner *Entity) BaseBehavior {
	return BaseBehavior{owner: owner}
}

func (b *BaseBehavior) Entity() *Entity        { return b.owner }
func (b *BaseBehavior) Update(_ *FrameContext) {}

// GetBehavior returns the first behavior attached to e whose concrete type is T.
func GetBehavior[T Behavior](e *Entity) (T, bool) {
	for _, b := range e.behaviors {
		if t, ok := b.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
