// Package telemetry records match timing, turns and rounds, and writes
// them as CSV.
package telemetry

// Action is what a player did with a turn.
type Action string

const (
	ActionFire Action = "fire"
	ActionJump Action = "jump"
	ActionNone Action = "none" // Turn ran out without input
)

// TurnRecord summarizes one player's turn.
type TurnRecord struct {
	Round       int     `csv:"round"`
	Turn        int     `csv:"turn"`
	Player      string  `csv:"player"`
	Action      Action  `csv:"action"`
	Angle       float64 `csv:"angle"`
	Power       float64 `csv:"power"`
	StartMS     float64 `csv:"start_ms"`
	EndMS       float64 `csv:"end_ms"`
	Ticks       int     `csv:"ticks"`
	DamageDealt float64 `csv:"damage_dealt"` // To other players' vehicles
	SelfDamage  float64 `csv:"self_damage"`
	Kills       int     `csv:"kills"`
	Score       float64 `csv:"score"` // Totals after the turn
	Cash        float64 `csv:"cash"`
}

// RoundRecord summarizes a finished round.
type RoundRecord struct {
	Round          int     `csv:"round"`
	Seed           uint64  `csv:"seed"`
	Players        int     `csv:"players"`
	Turns          int     `csv:"turns"`
	DurationMS     float64 `csv:"duration_ms"`
	Ticks          int     `csv:"ticks"`
	Winner         string  `csv:"winner"` // Empty on a draw
	TopScore       float64 `csv:"top_score"`
	TurnDamageMean float64 `csv:"turn_damage_mean"`
	TurnDamageStd  float64 `csv:"turn_damage_std"`
	TurnTicksMean  float64 `csv:"turn_ticks_mean"`
	HitRate        float64 `csv:"hit_rate"` // Share of shots that damaged an opponent
}

// Damage is a single blast hit between players.
type Damage struct {
	From   string
	To     string
	Amount float64
	Kill   bool
}
