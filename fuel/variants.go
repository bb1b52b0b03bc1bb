package fuel

import (
	"fmt"
	"sort"

	"github.com/pthm-cable/orbital/systems"
)

// Kind selects a propellant variant.
type Kind uint8

const (
	Hydrazine Kind = iota
	RP1
	Xenon
	NitrogenTetroxide
)

// Spec holds the tunables of one propellant variant.
type Spec struct {
	Name        string
	Description string
	Price       int

	RampUpTime     float64 // ms until full throttle
	UpdateInterval float64 // ms between burn samples
	Efficiency     float64 // momentum per unit of fuel
	ThrustMax      float64
	JumpStrength   float64

	// Timing maps ramp progress in [0, 1] to throttle amplitude.
	Timing func(float64) float64

	ExhaustSize     float64 // particle radius at full throttle
	ExhaustDuration float64 // particle lifetime in ms
}

var registry = map[Kind]Spec{
	Hydrazine: {
		Name:            "Breeze",
		Description:     "Free fuel, but only provides low thrust with bad fuel efficiency",
		Price:           0,
		RampUpTime:      500,
		UpdateInterval:  300,
		Efficiency:      .55,
		ThrustMax:       1.1,
		JumpStrength:    .75,
		Timing:          systems.EaseIn,
		ExhaustSize:     .8,
		ExhaustDuration: 400,
	},
	RP1: {
		Name:            "Typhoon",
		Description:     "High thrust and medium efficiency, can easily launch into planetary orbit",
		Price:           600,
		RampUpTime:      500,
		UpdateInterval:  70,
		Efficiency:      1.4,
		ThrustMax:       6,
		JumpStrength:    .9,
		Timing:          systems.EaseIn,
		ExhaustSize:     1.8,
		ExhaustDuration: 700,
	},
	Xenon: {
		Name:            "Zephyr",
		Description:     "Terrible thrust but excellent efficiency, can cruise to any destination given some time",
		Price:           800,
		RampUpTime:      200,
		UpdateInterval:  40,
		Efficiency:      4,
		ThrustMax:       .75,
		JumpStrength:    .6,
		Timing:          systems.EaseIn,
		ExhaustSize:     .5,
		ExhaustDuration: 300,
	},
	NitrogenTetroxide: {
		Name:            "Gust",
		Description:     "Medium thrust and medium efficiency, can reliably move around moons",
		Price:           400,
		RampUpTime:      700,
		UpdateInterval:  100,
		Efficiency:      1.2,
		ThrustMax:       2,
		JumpStrength:    .8,
		Timing:          systems.EaseIn,
		ExhaustSize:     1.2,
		ExhaustDuration: 500,
	},
}

// Register adds or replaces a variant.
func Register(kind Kind, spec Spec) {
	if spec.Timing == nil {
		spec.Timing = systems.EaseIn
	}
	registry[kind] = spec
}

// Lookup returns the spec for kind. Panics on an unregistered kind.
func Lookup(kind Kind) Spec {
	spec, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("fuel: no variant registered for kind %d", kind))
	}
	return spec
}

// Kinds returns all registered kinds in ascending order.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

// String returns the variant's display name.
func (k Kind) String() string {
	if spec, ok := registry[k]; ok {
		return spec.Name
	}
	return fmt.Sprintf("Fuel(%d)", k)
}
