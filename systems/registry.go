package systems

// SystemInfo describes one step of the simulation tick.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this system does
	Category    string // Grouping (e.g., "core", "physics", "visual")
}

// Tick step IDs, in execution order.
const (
	SysPhysics   = "physics"
	SysCommands  = "commands"
	SysGravity   = "gravity"
	SysTrails    = "trails"
	SysVehicles  = "vehicles"
	SysWarheads  = "warheads"
	SysParticles = "particles"
	SysBorder    = "border"
)

// SystemRegistry holds metadata about all tick steps.
// This centralizes naming so logging and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known systems.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds the tick steps in execution order.
// Update this when adding new systems.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: SysPhysics, Name: "Physics", Description: "Steps the rigid-body space", Category: "physics"})
	r.Register(SystemInfo{ID: SysCommands, Name: "Commands", Description: "Runs mutations deferred out of contact callbacks", Category: "core"})
	r.Register(SystemInfo{ID: SysGravity, Name: "Gravity", Description: "Applies pairwise attraction for the next step", Category: "physics"})
	r.Register(SystemInfo{ID: SysTrails, Name: "Trails", Description: "Samples vehicle and warhead positions", Category: "visual"})
	r.Register(SystemInfo{ID: SysVehicles, Name: "Vehicles", Description: "Burns fuel and decays shields", Category: "core"})
	r.Register(SystemInfo{ID: SysWarheads, Name: "Warheads", Description: "Stabilizes, ages and fuses warheads", Category: "core"})
	r.Register(SystemInfo{ID: SysParticles, Name: "Particles", Description: "Fades and prunes effect particles", Category: "visual"})
	r.Register(SystemInfo{ID: SysBorder, Name: "Border", Description: "Keeps the map border on the center planet", Category: "visual"})
}

// Register adds a system to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns system info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a system ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered systems.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// ByCategory returns systems filtered by category.
func (r *SystemRegistry) ByCategory(category string) []SystemInfo {
	var result []SystemInfo
	for _, info := range r.systems {
		if info.Category == category {
			result = append(result, info)
		}
	}
	return result
}

// IDs returns all system IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
