package game

import "github.com/tomz197/radroids/internal/object"

// exposureRate returns the per-tick exposure for a ship at e's position.
func (s *Session) exposureRate(e *object.Entity) float64 {
	r := s.levelCfg.Radiation
	if s.bounds.Inset(e.Pos, r.Border) {
		return r.NaturalRate
	}
	return r.HighRate
}

// applyRadiation accrues exposure on every ship still in play. Shields do
// not protect against radiation. Reaching the limit destroys the ship
// through the same path as a collision.
func (s *Session) applyRadiation() {
	r := s.levelCfg.Radiation
	for _, p := range s.players {
		e := p.liveShip()
		if e == nil {
			continue
		}
		sh := e.Ship
		sh.Exposure += s.exposureRate(e)
		invariant(sh.Exposure >= 0, "ship %d exposure went negative", e.ID)

		if !sh.Warned && sh.Exposure >= r.WarnAt*r.Limit && sh.Exposure < r.Limit {
			sh.Warned = true
			s.emit(Event{Kind: EventRadiationWarning, Player: p.ID, Entity: e.ID, Pos: e.Pos})
		}
		if sh.Exposure >= r.Limit {
			s.destroyShip(e, CauseRadiation)
		}
	}
}
