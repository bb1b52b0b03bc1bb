package systems

import "github.com/jakecoffman/cp"

// Category is a collision layer bit.
type Category = uint

// Collision layers. Each body type has one bit; "on turn" variants are used
// while a player's own shot is in flight so it cannot hit the shooter's shield.
const (
	CatShield Category = 1 << iota
	CatPlanet
	CatVehicle
	CatWarhead
	CatBorder
	CatOnTurnShield
	CatOnTurnVehicle
	CatOnTurnWarhead

	CatPlanetVehicleWarhead = CatPlanet | CatVehicle | CatWarhead
	CatAnyWarhead           = CatWarhead | CatOnTurnWarhead
	CatAll                  = ^uint(0)
)

// NoGroup puts a shape in no collision group.
const NoGroup uint = 0

// CollisionTypeBody is the single collision type given to every shape;
// the contact listener sorts out roles from shape user data.
const CollisionTypeBody cp.CollisionType = 1

// PlanetFilter returns the filter for planet shapes.
func PlanetFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(NoGroup, CatPlanet, CatPlanetVehicleWarhead|CatOnTurnWarhead|CatBorder)
}

// VehicleFilter returns the filter for a vehicle's hull. group is shared
// with the vehicle's shield.
func VehicleFilter(group uint) cp.ShapeFilter {
	return cp.NewShapeFilter(group, CatVehicle, CatPlanetVehicleWarhead|CatOnTurnWarhead|CatBorder)
}

// WarheadFilter returns the filter for a warhead. onTurn marks a warhead
// fired during the current turn.
func WarheadFilter(onTurn bool) cp.ShapeFilter {
	if onTurn {
		return cp.NewShapeFilter(NoGroup, CatOnTurnWarhead, CatPlanetVehicleWarhead|CatOnTurnWarhead|CatShield|CatBorder)
	}
	return cp.NewShapeFilter(NoGroup, CatWarhead, CatPlanetVehicleWarhead|CatOnTurnWarhead|CatShield|CatOnTurnShield|CatBorder)
}

// ShieldFilter returns the filter for a shield. An on-turn shield ignores
// warheads fired during the current turn.
func ShieldFilter(group uint, onTurn bool) cp.ShapeFilter {
	if onTurn {
		return cp.NewShapeFilter(group, CatOnTurnShield, CatWarhead)
	}
	return cp.NewShapeFilter(group, CatShield, CatAnyWarhead)
}

// BorderFilter returns the filter for the map border.
func BorderFilter() cp.ShapeFilter {
	return cp.NewShapeFilter(NoGroup, CatBorder, CatPlanetVehicleWarhead|CatOnTurnWarhead)
}

// RaycastFilter returns a query filter that sees solid bodies but skips
// shields and anything in group.
func RaycastFilter(group uint) cp.ShapeFilter {
	return cp.NewShapeFilter(group, CatAll, CatPlanetVehicleWarhead|CatOnTurnWarhead|CatBorder)
}

// Collides reports whether shapes with filters a and b may touch.
func Collides(a, b cp.ShapeFilter) bool {
	if a.Group != NoGroup && a.Group == b.Group {
		return false
	}
	return a.Categories&b.Mask != 0 && b.Categories&a.Mask != 0
}
