package viewer

// Inbound message types sent by the viewer client.
const (
	MsgKey     = "key"
	MsgPointer = "pointer"
)

// InboundMessage is a platform input event forwarded by the client.
// Key events use Code/Pressed; pointer events use raw screen coordinates plus
// the viewport size.
type InboundMessage struct {
	Type    string  `json:"type"`
	Code    int     `json:"code,omitempty"`
	Pressed bool    `json:"pressed,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Height  float64 `json:"height,omitempty"`
}

// EntityState is one entity as the renderer needs it. Rotation is [w, x, y, z].
type EntityState struct {
	ID       uint64     `json:"id"`
	Name     string     `json:"name"`
	Model    string     `json:"model,omitempty"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
	Up       [3]float64 `json:"up"`
}

// CameraState is the eased camera placement.
type CameraState struct {
	Position [3]float64 `json:"position"`
	Look     [3]float64 `json:"look"`
	Up       [3]float64 `json:"up"`
}

// ArrowState is a debug direction indicator.
type ArrowState struct {
	Origin    [3]float64 `json:"origin"`
	Direction [3]float64 `json:"direction"`
}

// FrameState is the full per-frame hand-off to the renderer.
type FrameState struct {
	Frame    uint64        `json:"frame"`
	Time     float64       `json:"time"`
	Entities []EntityState `json:"entities"`
	Camera   *CameraState  `json:"camera,omitempty"`
	Arrows   []ArrowState  `json:"arrows,omitempty"`
}
