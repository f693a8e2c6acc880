package input

// Logical key names read by behaviors.
const (
	KeyLeft     = "left"
	KeyRight    = "right"
	KeyUp       = "up"
	KeyDown     = "down"
	KeyA        = "a"
	KeyD        = "d"
	KeyW        = "w"
	KeyS        = "s"
	KeySpacebar = "spacebar"
)

// KeyTable maps raw platform key codes to logical names.
type KeyTable map[int]string

// DefaultKeyTable returns the browser keyCode bindings for arrows, WASD and space.
func DefaultKeyTable() KeyTable {
	return KeyTable{
		37: KeyLeft,
		39: KeyRight,
		38: KeyUp,
		40: KeyDown,
		65: KeyA,
		68: KeyD,
		87: KeyW,
		83: KeyS,
		32: KeySpacebar,
	}
}
