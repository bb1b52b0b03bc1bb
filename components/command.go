package components

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// CommandKind tags a deferred command.
type CommandKind uint8

const (
	CmdFire          CommandKind = iota // Subject: vehicle
	CmdDetonate                         // Subject: warhead, Other: impacted body (optional)
	CmdDisintegrate                     // Subject: warhead
	CmdSpawnParticle                    // Particle
	CmdKnock                            // Subject: body, Vector: impulse
	CmdDampSpin                         // Subject: warhead
	CmdLaser                            // Subject: shielded vehicle, Other: warhead, Amount: damage
	CmdEscape                           // Subject: vehicle
)

var commandNames = [...]string{"fire", "detonate", "disintegrate", "spawn_particle", "knock", "damp_spin", "laser", "escape"}

// String returns the command kind name.
func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "unknown"
}

// ParticleSpec describes a cosmetic particle to spawn.
type ParticleSpec struct {
	Name     string
	Position cp.Vector
	Velocity cp.Vector
	Radius   float64 // Full radius, reached over the lifetime
	Duration float64 // Lifetime in ms
}

// Command is a mutation recorded while the physics step is running and
// executed afterwards. Commands are plain values so a queue can be
// inspected and compared in tests.
type Command struct {
	Kind     CommandKind
	Subject  ID
	Other    ID
	Vector   cp.Vector
	Amount   float64
	Particle ParticleSpec
}

func (c Command) String() string {
	switch c.Kind {
	case CmdSpawnParticle:
		return fmt.Sprintf("%s(%s r=%.2f)", c.Kind, c.Particle.Name, c.Particle.Radius)
	case CmdKnock:
		return fmt.Sprintf("%s(%d %.3f,%.3f)", c.Kind, c.Subject, c.Vector.X, c.Vector.Y)
	default:
		return fmt.Sprintf("%s(%d,%d)", c.Kind, c.Subject, c.Other)
	}
}

// Fire launches a warhead from a vehicle using its player's aim.
func Fire(vehicle ID) Command {
	return Command{Kind: CmdFire, Subject: vehicle}
}

// Detonate blows up a warhead. impacted may be NoID.
func Detonate(warhead, impacted ID) Command {
	return Command{Kind: CmdDetonate, Subject: warhead, Other: impacted}
}

// Disintegrate removes a warhead without a blast.
func Disintegrate(warhead ID) Command {
	return Command{Kind: CmdDisintegrate, Subject: warhead}
}

// SpawnParticle adds a cosmetic particle.
func SpawnParticle(spec ParticleSpec) Command {
	return Command{Kind: CmdSpawnParticle, Particle: spec}
}

// Knock applies an impulse at the center of a body.
func Knock(body ID, impulse cp.Vector) Command {
	return Command{Kind: CmdKnock, Subject: body, Vector: impulse}
}

// DampSpin removes most of a warhead's angular velocity.
func DampSpin(warhead ID) Command {
	return Command{Kind: CmdDampSpin, Subject: warhead}
}

// Laser raycasts from a vehicle to a warhead and damages it on a clear hit.
func Laser(vehicle, warhead ID, damage float64) Command {
	return Command{Kind: CmdLaser, Subject: vehicle, Other: warhead, Amount: damage}
}

// Escape knocks a vehicle away from its strongest gravity source.
func Escape(vehicle ID) Command {
	return Command{Kind: CmdEscape, Subject: vehicle}
}
