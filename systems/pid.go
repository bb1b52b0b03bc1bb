package systems

import "github.com/jakecoffman/cp"

// PID is a scalar PID controller. The reaction drives sensor toward target.
type PID struct {
	Kp, Ki, Kd float64

	proportional float64
	integral     float64
}

// NewPID creates a controller with the given gains.
func NewPID(kp, ki, kd float64) PID {
	return PID{Kp: kp, Ki: ki, Kd: kd}
}

// Reaction returns the control output for one sample.
func (p *PID) Reaction(sensor, target float64) float64 {
	last := p.proportional
	p.proportional = sensor - target
	p.integral += p.proportional
	derivative := p.proportional - last
	return p.proportional*p.Kp + p.integral*p.Ki + derivative*p.Kd
}

// PIDVec is a PID controller over 2D vectors.
type PIDVec struct {
	Kp, Ki, Kd float64

	proportional cp.Vector
	integral     cp.Vector
}

// NewPIDVec creates a vector controller with the given gains.
func NewPIDVec(kp, ki, kd float64) PIDVec {
	return PIDVec{Kp: kp, Ki: ki, Kd: kd}
}

// Reaction returns the control output for one sample.
func (p *PIDVec) Reaction(sensor, target cp.Vector) cp.Vector {
	last := p.proportional
	p.proportional = sensor.Sub(target)
	p.integral = p.integral.Add(p.proportional)
	derivative := p.proportional.Sub(last)
	return p.proportional.Mult(p.Kp).Add(p.integral.Mult(p.Ki)).Add(derivative.Mult(p.Kd))
}

// Reset clears accumulated state.
func (p *PIDVec) Reset() {
	p.proportional = cp.Vector{}
	p.integral = cp.Vector{}
}
