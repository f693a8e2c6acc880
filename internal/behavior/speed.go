package behavior

// SpeedModel turns the frame's base move speed into the player's actual speed.
type SpeedModel interface {
	MoveSpeed(base float64, boosting bool) float64
}

// DefaultBoostMultiplier is the spacebar speed-up when no SpeedModel is given.
const DefaultBoostMultiplier = 3.0

// BoostModel multiplies the base speed while boosting.
type BoostModel struct {
	Multiplier float64
}

func (m BoostModel) MoveSpeed(base float64, boosting bool) float64 {
	if boosting {
		return base * m.Multiplier
	}
	return base
}
