package components

// Aim limits.
const (
	MinPower = 0.0
	MaxPower = 100.0
)

// Aim is a player's firing direction and strength.
type Aim struct {
	Angle float64 // Radians
	Power float64 // Kept in [MinPower, MaxPower]
}

// NewAim returns an aim at angle with full power.
func NewAim(angle float64) Aim {
	return Aim{Angle: angle, Power: MaxPower}
}

// SetPower stores p clamped to the valid range.
func (a *Aim) SetPower(p float64) {
	switch {
	case p < MinPower:
		p = MinPower
	case p > MaxPower:
		p = MaxPower
	}
	a.Power = p
}
