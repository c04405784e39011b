package weaponsys

import (
	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/geo"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

// SelectBestWeapon scores every carried weapon's desirability against the
// current engagement distance and makes the highest-scoring one current.
// Without an active target the current weapon is left unchanged; a target
// out of sight is scored at its last sensed position.
//
// Ties break toward acquisition order: a later weapon never displaces an
// earlier equal maximum. The running maximum starts below zero so that a
// sole weapon scoring zero is still selected rather than leaving a stale
// reference.
func (s *System) SelectBestWeapon() {
	info, ok := s.tracker.Target()
	if !ok {
		return
	}
	// With line of sight broken the live position is not perceivable, so the
	// engagement distance is scored against the last sensed position, the
	// same point the aim controller tracks.
	pos := info.Position
	if !info.Shootable {
		pos = info.LastSensedPosition
	}
	dist := geo.Distance(s.carrier.Position(), pos)

	best := -1.0
	var pick *weapon.Weapon
	for _, e := range s.arsenal {
		if d := s.score(e.weapon, dist); d > best {
			best = d
			pick = e.weapon
		}
	}
	if pick == nil || pick == s.current {
		return
	}
	s.logger.Debug("switching weapon",
		zap.String("to", string(pick.Type())),
		zap.Float64("distance", dist),
		zap.Float64("desirability", best),
	)
	s.current = pick
}

// AimAndShoot is the per-frame aim and fire decision:
//
//   - no target: face the movement heading (a stationary agent keeps its
//     facing) and never fire;
//   - target visible and shootable: turn toward it and fire at its
//     hit-volume center once the facing is within tolerance AND the target
//     has been visible at least the reaction time;
//   - target known but line of sight broken: turn toward the last sensed
//     position and never fire.
//
// Rotation is always rate-limited by dt; the facing never snaps.
func (s *System) AimAndShoot(dt float64) {
	info, ok := s.tracker.Target()
	switch {
	case !ok:
		dir := s.carrier.Velocity().Normalize()
		if dir.IsZero() {
			return
		}
		s.carrier.TurnToward(s.carrier.Position().Add(dir), dt, s.tolerance)

	case info.Shootable:
		onTarget := s.carrier.TurnToward(info.Position, dt, s.tolerance)
		if onTarget && info.VisibleFor >= s.reactionSeconds {
			s.shoot(info.Center)
		}

	default:
		s.carrier.TurnToward(info.LastSensedPosition, dt, s.tolerance)
	}
}

// shoot dispatches fire control on the current weapon's status: an empty
// weapon reloads, a ready weapon fires at aim, and a weapon mid-action is
// skipped this step. The system owns no timers of its own; all reload and
// cooldown bookkeeping lives in the weapon and advances on the carrier's
// tick.
func (s *System) shoot(aim geo.Vec3) {
	cur := s.current
	if cur == nil {
		return
	}
	switch cur.Status() {
	case weapon.StatusEmpty:
		cur.Reload()
	case weapon.StatusReady:
		if err := cur.Shoot(s.carrier.Position(), aim); err != nil {
			// Unreachable while the status contract holds; never fatal.
			s.logger.Warn("fire dispatch failed", zap.Error(err))
		}
	default:
		// Mid-reload or cooling down; skip this step.
	}
}
