// Package components defines the plain data shared by the simulation packages.
package components

// ID uniquely identifies a simulated body within one game state.
// Clones keep the IDs of the bodies they were built from.
type ID uint64

// NoID is the zero ID; no body is ever assigned it.
const NoID ID = 0

// Kind identifies what a physics shape belongs to.
type Kind uint8

const (
	KindPlanet Kind = iota
	KindVehicle
	KindWarhead
	KindParticle
	KindShield
	KindBorder
)

// Gravity reports whether bodies of this kind take part in N-body gravity.
func (k Kind) Gravity() bool {
	return k == KindPlanet || k == KindVehicle || k == KindWarhead
}

// Trailed reports whether bodies of this kind record a position trail.
func (k Kind) Trailed() bool {
	return k == KindVehicle || k == KindWarhead
}
