package telemetry

import "gonum.org/v1/gonum/stat"

// Collector accumulates turn records for the current round and produces
// a RoundRecord when the round ends.
type Collector struct {
	seed  uint64
	round int

	turns      []TurnRecord
	current    *TurnRecord
	startTicks int
}

// NewCollector creates a collector for matches started from seed.
func NewCollector(seed uint64) *Collector {
	return &Collector{seed: seed}
}

// BeginRound starts a new round and drops any unfinished turn.
func (c *Collector) BeginRound() {
	c.round++
	c.turns = nil
	c.current = nil
}

// Round returns the current round number, starting at 1.
func (c *Collector) Round() int {
	return c.round
}

// BeginTurn opens a turn record. An open turn is closed first with its
// last known totals.
func (c *Collector) BeginTurn(player string, action Action, angle, power, now float64, ticks int) {
	if c.current != nil {
		c.EndTurn(now, ticks, c.current.Score, c.current.Cash)
	}
	c.current = &TurnRecord{
		Round:   c.round,
		Turn:    len(c.turns) + 1,
		Player:  player,
		Action:  action,
		Angle:   angle,
		Power:   power,
		StartMS: now,
	}
	c.startTicks = ticks
}

// InTurn reports whether a turn is open.
func (c *Collector) InTurn() bool {
	return c.current != nil
}

// CurrentPlayer returns the player of the open turn, or "".
func (c *Collector) CurrentPlayer() string {
	if c.current == nil {
		return ""
	}
	return c.current.Player
}

// RecordDamage credits damage to the open turn. Damage outside a turn is
// ignored.
func (c *Collector) RecordDamage(d Damage) {
	if c.current == nil || d.From != c.current.Player {
		return
	}
	if d.To == d.From {
		c.current.SelfDamage += d.Amount
		return
	}
	c.current.DamageDealt += d.Amount
	if d.Kill {
		c.current.Kills++
	}
}

// EndTurn closes the open turn with the player's totals and returns it.
// Returns false when no turn is open.
func (c *Collector) EndTurn(now float64, ticks int, score, cash float64) (TurnRecord, bool) {
	if c.current == nil {
		return TurnRecord{}, false
	}
	rec := *c.current
	rec.EndMS = now
	rec.Ticks = ticks - c.startTicks
	rec.Score = score
	rec.Cash = cash
	c.turns = append(c.turns, rec)
	c.current = nil
	return rec, true
}

// Turns returns the closed turns of the current round.
func (c *Collector) Turns() []TurnRecord {
	return c.turns
}

// EndRound summarizes the current round.
func (c *Collector) EndRound(players int, durationMS float64, ticks int, winner string, topScore float64) RoundRecord {
	rec := RoundRecord{
		Round:      c.round,
		Seed:       c.seed,
		Players:    players,
		Turns:      len(c.turns),
		DurationMS: durationMS,
		Ticks:      ticks,
		Winner:     winner,
		TopScore:   topScore,
	}
	if len(c.turns) == 0 {
		return rec
	}

	damage := make([]float64, len(c.turns))
	turnTicks := make([]float64, len(c.turns))
	var shots, hits int
	for i, t := range c.turns {
		damage[i] = t.DamageDealt
		turnTicks[i] = float64(t.Ticks)
		if t.Action == ActionFire {
			shots++
			if t.DamageDealt > 0 {
				hits++
			}
		}
	}

	rec.TurnDamageMean = stat.Mean(damage, nil)
	if len(damage) > 1 {
		rec.TurnDamageStd = stat.StdDev(damage, nil)
	}
	rec.TurnTicksMean = stat.Mean(turnTicks, nil)
	if shots > 0 {
		rec.HitRate = float64(hits) / float64(shots)
	}
	return rec
}
