package game

import (
	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

// supplyScheduler spawns supply drops on a jittered countdown. Unused
// allowance from one level rolls forward to the next.
type supplyScheduler struct {
	countdown int
	allowance int
}

// reset draws the next interval: IntervalTicks plus up to JitterTicks.
func (sc *supplyScheduler) reset(s *Session) {
	sc.countdown = s.cfg.Supply.IntervalTicks + s.rng.IntN(s.cfg.Supply.JitterTicks+1)
}

func (sc *supplyScheduler) startLevel(s *Session) {
	sc.allowance += s.levelCfg.Drops
	sc.reset(s)
}

// advance counts down one tick and spawns a drop on the tick the countdown
// reaches zero. A drop that cannot be placed keeps its allowance for the
// next attempt.
func (sc *supplyScheduler) advance(s *Session) {
	sc.countdown--
	if sc.countdown > 0 {
		return
	}
	sc.reset(s)
	if sc.allowance > 0 && s.spawnDrop() {
		sc.allowance--
	}
}

// spawnDrop places a drop of a random stocked weapon away from every ship.
func (s *Session) spawnDrop() bool {
	sp := s.cfg.Supply

	var kinds []object.WeaponKind
	for _, w := range object.Weapons() {
		if sp.Stocks.Get(w).Max > 0 {
			kinds = append(kinds, w)
		}
	}
	if len(kinds) == 0 {
		return false
	}

	pos, ok := s.dropPosition(sp.Radius, sp.SafeDistance)
	if !ok {
		return false
	}

	kind := kinds[s.rng.IntN(len(kinds))]
	r := sp.Stocks.Get(kind)
	qty := r.Min + s.rng.IntN(r.Max-r.Min+1)

	e := object.NewDrop(s.newID(), pos, sp.Radius, kind, qty, sp.CollectableInTicks, sp.LifetimeTicks)
	s.spawn(e)
	s.emit(Event{Kind: EventDropSpawned, Player: NoPlayer, Entity: e.ID, Pos: pos, Weapon: kind, Quantity: qty})
	return true
}

func (s *Session) dropPosition(radius, safe float64) (physics.Vec2, bool) {
	for range placementAttempts {
		pos := physics.V(
			radius+s.rng.Float64()*(s.bounds.Width-2*radius),
			radius+s.rng.Float64()*(s.bounds.Height-2*radius),
		)
		if s.clearOfShips(pos, safe) {
			return pos, true
		}
	}
	return physics.Vec2{}, false
}
