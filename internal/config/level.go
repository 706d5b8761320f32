package config

// Level returns the setup for level n (1-based). Levels past the configured
// list repeat the last entry with Growth applied once per extra level.
func (c Config) Level(n int) Level {
	if n < 1 {
		n = 1
	}
	if n <= len(c.Levels) {
		return c.Levels[n-1]
	}
	lvl := c.Levels[len(c.Levels)-1]
	for range n - len(c.Levels) {
		lvl.Asteroids += c.Growth.Asteroids
		lvl.AsteroidSpeed *= c.Growth.SpeedFactor
		lvl.Radiation.NaturalRate *= c.Growth.RadiationFactor
		lvl.Radiation.HighRate *= c.Growth.RadiationFactor
	}
	return lvl
}
