package game

import (
	"testing"

	"github.com/tomz197/radroids/internal/object"
	"github.com/tomz197/radroids/internal/physics"
)

func TestFireWithoutStockIsNoop(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.HighVelocity.InitialStock = 0
	s := newTestSession(t, cfg)

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.HighVelocity})
	evs := s.Tick(dt)
	s.Tick(dt)

	if count(evs, EventProjectileFired) != 0 {
		t.Error("fired with empty stock")
	}
	if n := countKind(s, object.KindProjectile); n != 0 {
		t.Errorf("%d projectiles spawned", n)
	}
	if got := ship(s, 0).Ship.Stock[object.HighVelocity]; got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
}

func TestStockNeverNegative(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.HighVelocity.InitialStock = 2
	cfg.Weapons.HighVelocity.ReloadTicks = 0
	s := newTestSession(t, cfg)

	fired := 0
	for range 30 {
		s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.HighVelocity})
		s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.HighVelocity})
		fired += count(s.Tick(dt), EventProjectileFired)
		if got := ship(s, 0).Ship.Stock[object.HighVelocity]; got < 0 {
			t.Fatalf("stock went negative: %d", got)
		}
	}
	if fired != 2 {
		t.Errorf("fired %d times with a stock of 2", fired)
	}
}

func TestReloadCooldown(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.Cannon.ReloadTicks = 9
	s := newTestSession(t, cfg)

	var firedAt []int
	for tick := 1; tick <= 20; tick++ {
		s.IssueCommand(0, Command{Kind: Fire})
		if count(s.Tick(dt), EventProjectileFired) > 0 {
			firedAt = append(firedAt, tick)
		}
	}
	want := []int{1, 10, 19}
	if len(firedAt) != len(want) {
		t.Fatalf("fired at ticks %v, want %v", firedAt, want)
	}
	for i := range want {
		if firedAt[i] != want[i] {
			t.Fatalf("fired at ticks %v, want %v", firedAt, want)
		}
	}
	if got := ship(s, 0).Ship.Stock[object.Cannon]; got != 0 {
		t.Errorf("unlimited cannon stock changed to %d", got)
	}
}

func TestCooldownIsPerWeapon(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.IssueCommand(0, Command{Kind: Fire})
	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.HighVelocity})
	evs := s.Tick(dt)
	if got := count(evs, EventProjectileFired); got != 2 {
		t.Errorf("fired %d weapons in one tick, want 2", got)
	}
}

func TestProjectileKinematics(t *testing.T) {
	cfg := testConfig()
	s := newTestSession(t, cfg)
	e := ship(s, 0)

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.HighVelocity})
	s.Tick(dt)

	var bullet EntityView
	for v := range s.Entities() {
		if v.Kind == object.KindProjectile {
			bullet = v
		}
	}
	if bullet.Projectile != object.HVBullet || bullet.Owner != 0 {
		t.Fatalf("bullet = %+v", bullet)
	}
	want := physics.FromAngle(e.Heading, cfg.Weapons.HighVelocity.Speed)
	if physics.Distance(bullet.Vel, want) > 1e-9 {
		t.Errorf("bullet velocity = %v, want %v", bullet.Vel, want)
	}
	if physics.Distance(bullet.Pos, e.Pos) <= e.Radius {
		t.Error("bullet spawned inside the ship")
	}
}

func TestSuperLaserRing(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.SuperLaser.Burst = 8
	s := newTestSession(t, cfg)
	before := ship(s, 0).Ship.Stock[object.SuperLaser]

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.SuperLaser})
	evs := s.Tick(dt)

	ev, ok := find(evs, EventProjectileFired)
	if !ok || ev.Quantity != 8 {
		t.Fatalf("fired event = %+v", ev)
	}
	if n := countKind(s, object.KindProjectile); n != 8 {
		t.Errorf("%d projectiles, want 8", n)
	}
	if got := ship(s, 0).Ship.Stock[object.SuperLaser]; got != before-1 {
		t.Errorf("stock = %d, want %d", got, before-1)
	}
}

func TestSwitchWeapon(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.HighVelocity.InitialStock = 0
	cfg.Weapons.Mine.InitialStock = 1
	s := newTestSession(t, cfg)
	sh := ship(s, 0).Ship

	s.IssueCommand(0, Command{Kind: SwitchWeapon, Weapon: object.HighVelocity})
	s.Tick(dt)
	if sh.Selected != object.Cannon {
		t.Errorf("switched to empty weapon %v", sh.Selected)
	}

	s.IssueCommand(0, Command{Kind: SwitchWeapon, Weapon: object.Shield})
	s.Tick(dt)
	if sh.Selected != object.Cannon {
		t.Errorf("switched to shield")
	}

	s.IssueCommand(0, Command{Kind: SwitchWeapon, Weapon: object.Mine})
	s.IssueCommand(0, Command{Kind: Fire})
	evs := s.Tick(dt)
	if sh.Selected != object.Mine {
		t.Fatalf("selected = %v, want mine", sh.Selected)
	}
	if ev, ok := find(evs, EventProjectileFired); !ok || ev.Weapon != object.Mine {
		t.Errorf("fire after switch = %+v", ev)
	}
	if sh.Stock[object.Mine] != 0 {
		t.Errorf("mine stock = %d", sh.Stock[object.Mine])
	}
}

func TestShield(t *testing.T) {
	cfg := testConfig()
	cfg.Shield.DurationTicks = 5
	cfg.Weapons.Shield.InitialStock = 2
	s := newTestSession(t, cfg)
	e := ship(s, 0)

	s.IssueCommand(0, Command{Kind: RaiseShield})
	evs := s.Tick(dt)
	if count(evs, EventShieldRaised) != 1 || e.Ship.Stock[object.Shield] != 1 {
		t.Fatalf("shield not raised: events %v stock %d", evs, e.Ship.Stock[object.Shield])
	}

	// Only one shield at a time; cannons cannot fire through it, mines can
	s.IssueCommand(0, Command{Kind: RaiseShield})
	s.IssueCommand(0, Command{Kind: Fire})
	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.Mine})
	rock := addAsteroid(s, e.Pos, 0, 0)
	evs = s.Tick(dt)
	if count(evs, EventShieldRaised) != 0 || e.Ship.Stock[object.Shield] != 1 {
		t.Error("second shield raised while the first was up")
	}
	if ev, ok := find(evs, EventProjectileFired); !ok || ev.Weapon != object.Mine || count(evs, EventProjectileFired) != 1 {
		t.Errorf("fire under shield: %v", evs)
	}
	if !e.Alive || count(evs, EventShipDestroyed) != 0 {
		t.Fatal("shielded ship destroyed by asteroid")
	}
	if rock.Alive {
		t.Error("shielded ship should break the asteroid")
	}
	if got := s.Players()[0].Score; got != cfg.Tiers[0].Score {
		t.Errorf("score = %d, want %d", got, cfg.Tiers[0].Score)
	}

	lowered := 0
	for tick := 3; tick <= 8; tick++ {
		if count(s.Tick(dt), EventShieldLowered) > 0 {
			lowered++
			if tick != 5 {
				t.Errorf("shield lowered on tick %d, want 5", tick)
			}
		}
	}
	if lowered != 1 {
		t.Errorf("shield lowered %d times", lowered)
	}
	if e.Ship.ShieldUp() {
		t.Error("shield still up")
	}
}

func TestShieldFromFireWeapon(t *testing.T) {
	s := newTestSession(t, testConfig())
	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.Shield})
	if evs := s.Tick(dt); count(evs, EventShieldRaised) != 1 {
		t.Errorf("firing the shield should raise it: %v", evs)
	}
}

func TestMineArmsAndDetonates(t *testing.T) {
	cfg := testConfig()
	cfg.Mine.ArmTicks = 2
	cfg.Mine.TriggerRadius = 8
	cfg.Weapons.Mine.BlastRadius = 12
	s := newTestSession(t, cfg)
	e := ship(s, 0)

	rock := addAsteroid(s, e.Pos.Add(physics.V(10, 0)), 0, 0)

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.Mine})
	if evs := s.Tick(dt); count(evs, EventProjectileFired) != 1 {
		t.Fatalf("mine not laid: %v", evs)
	}
	if evs := s.Tick(dt); count(evs, EventMineDetonated) != 0 {
		t.Fatal("mine detonated before arming")
	}
	if !rock.Alive {
		t.Fatal("asteroid destroyed before the mine armed")
	}

	evs := s.Tick(dt)
	if count(evs, EventMineDetonated) != 1 {
		t.Fatalf("armed mine did not detonate: %v", evs)
	}
	ev, ok := find(evs, EventAsteroidDestroyed)
	if !ok || ev.Player != 0 || rock.Alive {
		t.Fatalf("blast did not destroy the asteroid in the same tick: %v", evs)
	}
	if !e.Alive {
		t.Error("own blast destroyed the ship")
	}
	for v := range s.Entities() {
		if v.Kind == object.KindProjectile {
			t.Errorf("projectile %v left after detonation", v.Projectile)
		}
	}
}

func TestMineFuse(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.Mine.TTLTicks = 4
	cfg.Weapons.Mine.Speed = 0
	s := newTestSession(t, cfg)

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.Mine})
	for tick := 1; tick <= 6; tick++ {
		n := count(s.Tick(dt), EventMineDetonated)
		if tick == 5 && n != 1 {
			t.Errorf("mine did not detonate on tick 5")
		}
		if tick != 5 && n != 0 {
			t.Errorf("mine detonated on tick %d", tick)
		}
	}
}

func TestFireworkBurstsOnFuse(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.Firework.TTLTicks = 3
	s := newTestSession(t, cfg)

	s.IssueCommand(0, Command{Kind: FireWeapon, Weapon: object.Firework})
	var burstAt []int
	for tick := 1; tick <= 6; tick++ {
		if count(s.Tick(dt), EventShellBurst) > 0 {
			burstAt = append(burstAt, tick)
		}
	}
	if len(burstAt) != 1 || burstAt[0] != 4 {
		t.Errorf("shell burst at ticks %v, want [4]", burstAt)
	}
	if n := countKind(s, object.KindProjectile); n != 0 {
		t.Errorf("%d projectiles left", n)
	}
}

func TestFireworkBurstsOnHit(t *testing.T) {
	cfg := testConfig()
	cfg.Weapons.Firework.BlastRadius = 10
	s := newTestSession(t, cfg)

	target := addAsteroid(s, physics.V(30, 20), 0, 0)
	near := addAsteroid(s, physics.V(30, 28), 0, 0)
	shell := object.NewProjectile(s.newID(), 0, object.Shell, object.Firework, target.Pos, physics.Vec2{}, 0.8, 30)
	s.entities = append(s.entities, shell)

	evs := s.Tick(dt)
	if count(evs, EventShellBurst) != 1 || target.Alive {
		t.Fatalf("shell did not burst on hit: %v", evs)
	}
	if !near.Alive {
		t.Fatal("blast joined the world before the end of the tick")
	}
	s.Tick(dt)
	if near.Alive {
		t.Error("blast should hit the neighbouring asteroid on the next tick")
	}
}
