// Package weaponsys is the combat decision core: it owns an agent's weapon
// arsenal, selects the best weapon for the current engagement, aims the
// agent, gates reactions, and dispatches fire control.
package weaponsys

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/skirmish/internal/game/agent"
	"github.com/cory-johannsen/skirmish/internal/game/assets"
	"github.com/cory-johannsen/skirmish/internal/game/geo"
	"github.com/cory-johannsen/skirmish/internal/game/weapon"
)

const (
	// DefaultReactionSeconds is how long a target must be continuously
	// visible before a shot is permitted.
	DefaultReactionSeconds = 0.3
	// DefaultFacingTolerance is the angular tolerance in radians within
	// which the facing counts as on target.
	DefaultFacingTolerance = 0.05
	// DefaultWeaponType is granted on every reset.
	DefaultWeaponType = weapon.TypeBlaster
)

// ErrNotCarried reports a change request for a known weapon type that is not
// in the arsenal.
var ErrNotCarried = errors.New("weaponsys: weapon type not carried")

// Carrier is the owning agent as seen by the weapon system: position,
// movement, rate-limited turning, and per-step component registration.
type Carrier interface {
	Position() geo.Vec3
	Velocity() geo.Vec3
	// TurnToward rotates the facing toward point over dt and reports
	// whether the facing is within tolerance of it.
	TurnToward(point geo.Vec3, dt, tolerance float64) bool
	Register(t agent.Ticker)
	Deregister(t agent.Ticker)
}

// Params are the tunables of a System. Zero values fall back to the package
// defaults.
type Params struct {
	// ReactionSeconds gates shots on continuous target visibility.
	ReactionSeconds float64
	// FacingTolerance is the on-target angular tolerance in radians.
	FacingTolerance float64
	// DefaultType is the weapon granted on reset.
	DefaultType weapon.Type
	// OnShot receives every fired round. May be nil.
	OnShot func(weapon.Shot)
	// Score overrides the desirability model used by selection. Nil scores
	// each weapon with its own curve.
	Score func(w *weapon.Weapon, dist float64) float64
}

// entry pairs an owned weapon with its mounted representation.
type entry struct {
	weapon *weapon.Weapon
	prop   assets.Prop
}

// System owns one agent's weapons and drives its per-frame combat decisions.
//
// Invariant: arsenal holds at most one weapon per type, in acquisition
// order; it is the single source of truth, and lookups derive from it.
// Invariant: current is nil iff the arsenal is empty; otherwise it points at
// a weapon present in the arsenal.
//
// A System is mutated only by its own agent's update step; it is not safe
// for concurrent use and does not need to be.
type System struct {
	carrier  Carrier
	tracker  agent.TargetTracker
	registry *weapon.Registry
	mounter  assets.Mounter
	logger   *zap.Logger

	reactionSeconds float64
	tolerance       float64
	defaultType     weapon.Type
	onShot          func(weapon.Shot)
	score           func(w *weapon.Weapon, dist float64) float64

	arsenal []entry
	current *weapon.Weapon
}

// NewSystem constructs a System. Init must be called before the per-frame
// methods.
//
// Precondition: carrier, tracker, and registry must not be nil (panics
// otherwise). A nil mounter gets the headless implementation; a nil logger
// gets a no-op logger.
func NewSystem(carrier Carrier, tracker agent.TargetTracker, registry *weapon.Registry, mounter assets.Mounter, params Params, logger *zap.Logger) *System {
	if carrier == nil {
		panic("weaponsys: NewSystem: carrier must not be nil")
	}
	if tracker == nil {
		panic("weaponsys: NewSystem: tracker must not be nil")
	}
	if registry == nil {
		panic("weaponsys: NewSystem: registry must not be nil")
	}
	if mounter == nil {
		mounter = assets.Headless{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if params.ReactionSeconds <= 0 {
		params.ReactionSeconds = DefaultReactionSeconds
	}
	if params.FacingTolerance <= 0 {
		params.FacingTolerance = DefaultFacingTolerance
	}
	if params.DefaultType == "" {
		params.DefaultType = DefaultWeaponType
	}
	if params.Score == nil {
		params.Score = (*weapon.Weapon).Desirability
	}
	return &System{
		carrier:         carrier,
		tracker:         tracker,
		registry:        registry,
		mounter:         mounter,
		logger:          logger,
		reactionSeconds: params.ReactionSeconds,
		tolerance:       params.FacingTolerance,
		defaultType:     params.DefaultType,
		onShot:          params.OnShot,
		score:           params.Score,
	}
}

// Init equips the starting arsenal.
//
// Postcondition: exactly the default weapon is carried and current.
func (s *System) Init() error {
	return s.Reset()
}

// Reset removes every carried weapon and grants a fresh default weapon.
// Used at initialization and on respawn.
//
// Postcondition: the arsenal holds exactly the default weapon with default
// ammo, and it is the current weapon.
func (s *System) Reset() error {
	for _, e := range s.arsenal {
		s.carrier.Deregister(e.weapon)
		if e.prop != nil {
			e.prop.Release()
		}
	}
	s.arsenal = nil
	s.current = nil

	if err := s.AddWeapon(s.defaultType); err != nil {
		return fmt.Errorf("weaponsys: System.Reset: granting default weapon: %w", err)
	}
	return nil
}

// AddWeapon acquires a weapon of type t. A duplicate acquisition never
// creates a second instance: the new instance's starting ammunition merges
// into the one already carried.
//
// Postcondition: on success exactly one weapon of type t is carried; the
// current weapon changes only when the arsenal was previously empty.
func (s *System) AddWeapon(t weapon.Type) error {
	def, ok := s.registry.Def(t)
	if !ok {
		err := fmt.Errorf("%w: %q", weapon.ErrUnknownType, t)
		s.logger.Warn("add weapon refused", zap.Error(err))
		return err
	}

	fresh := weapon.New(def, s.onShot, s.logger)
	if existing := s.find(t); existing != nil {
		existing.AddRounds(fresh.Rounds())
		s.logger.Debug("merged ammo from duplicate pickup",
			zap.String("weapon", string(t)),
			zap.Int("rounds", existing.Rounds()),
		)
		return nil
	}

	prop, err := s.mounter.Mount(t, def.MountOffset)
	if err != nil {
		// Presentation failures never block the acquisition.
		s.logger.Warn("mounting weapon representation failed",
			zap.String("weapon", string(t)),
			zap.Error(err),
		)
		prop = nil
	}

	s.arsenal = append(s.arsenal, entry{weapon: fresh, prop: prop})
	s.carrier.Register(fresh)
	if s.current == nil {
		s.current = fresh
	}
	s.checkInvariant()
	return nil
}

// RemoveWeapon unequips the weapon of type t. A type not carried is a no-op.
// When the current weapon is removed, the oldest remaining weapon becomes
// current, so the current reference is never left dangling.
func (s *System) RemoveWeapon(t weapon.Type) {
	for i, e := range s.arsenal {
		if e.weapon.Type() != t {
			continue
		}
		s.carrier.Deregister(e.weapon)
		if e.prop != nil {
			e.prop.Release()
		}
		s.arsenal = append(s.arsenal[:i], s.arsenal[i+1:]...)
		if s.current == e.weapon {
			if len(s.arsenal) > 0 {
				s.current = s.arsenal[0].weapon
			} else {
				s.current = nil
			}
		}
		s.checkInvariant()
		return
	}
}

// RemainingAmmo returns the remaining rounds for the weapon of type t, or
// zero when t is not carried. Never fails.
func (s *System) RemainingAmmo(t weapon.Type) int {
	if w := s.find(t); w != nil {
		return w.Rounds()
	}
	return 0
}

// ChangeWeapon makes the carried weapon of type t current.
//
// Postcondition: returns nil and switches, or returns ErrUnknownType /
// ErrNotCarried and leaves the current weapon unchanged.
func (s *System) ChangeWeapon(t weapon.Type) error {
	if _, err := weapon.ParseType(string(t)); err != nil {
		s.logger.Warn("change weapon refused", zap.Error(err))
		return err
	}
	w := s.find(t)
	if w == nil {
		return fmt.Errorf("%w: %q", ErrNotCarried, t)
	}
	s.current = w
	s.checkInvariant()
	return nil
}

// CurrentWeapon returns the currently selected weapon, or nil when the
// arsenal is empty.
func (s *System) CurrentWeapon() *weapon.Weapon {
	return s.current
}

// Weapons returns the carried weapons in acquisition order.
func (s *System) Weapons() []*weapon.Weapon {
	out := make([]*weapon.Weapon, 0, len(s.arsenal))
	for _, e := range s.arsenal {
		out = append(out, e.weapon)
	}
	return out
}

// find returns the carried weapon of type t, or nil. Lookup derives from
// the arsenal list; there is no parallel index.
func (s *System) find(t weapon.Type) *weapon.Weapon {
	for _, e := range s.arsenal {
		if e.weapon.Type() == t {
			return e.weapon
		}
	}
	return nil
}

// checkInvariant asserts that the current weapon is carried. A violation is
// a bug in this package, never a recoverable condition.
func (s *System) checkInvariant() {
	if s.current == nil {
		if len(s.arsenal) != 0 {
			panic("weaponsys: invariant violated: no current weapon with a non-empty arsenal")
		}
		return
	}
	for _, e := range s.arsenal {
		if e.weapon == s.current {
			return
		}
	}
	panic("weaponsys: invariant violated: current weapon not in arsenal")
}
