package agent

import "github.com/cory-johannsen/skirmish/internal/game/geo"

// TargetInfo is the read-only per-step view of the current target supplied
// by the perception collaborator.
type TargetInfo struct {
	// Position is the target's origin point.
	Position geo.Vec3
	// Center is the target's hit-volume center. Shots aim here, not at
	// Position.
	Center geo.Vec3
	// Shootable reports confirmed line of sight this step.
	Shootable bool
	// VisibleFor is how long the target has been continuously visible, in
	// seconds. Zero whenever Shootable is false.
	VisibleFor float64
	// LastSensedPosition is where the target was last perceived. Valid even
	// when line of sight is currently broken.
	LastSensedPosition geo.Vec3
}

// TargetTracker is the perception collaborator consumed by the weapon
// system. Implementations decide what is targeted and whether it can be
// shot; the weapon system only reads.
type TargetTracker interface {
	// Target returns the current target view and whether a target exists.
	Target() (TargetInfo, bool)
}

// Sighted is the subject observed by a StockTracker.
type Sighted interface {
	Position() geo.Vec3
}

// CenterOffset lifts a target's origin to its hit-volume center.
var CenterOffset = geo.Vec3{Y: 0.9}

// StockTracker is the stock TargetTracker implementation: it watches a
// single subject, checks line of sight through a caller-supplied test, and
// accumulates continuous visibility time.
type StockTracker struct {
	observer    *Body
	subject     Sighted
	lineOfSight func(from, to geo.Vec3) bool

	visibleFor float64
	everSensed bool
	lastSensed geo.Vec3
}

// NewStockTracker creates a tracker for observer watching subject.
//
// Precondition: observer, subject, and lineOfSight must be non-nil (panics
// otherwise).
func NewStockTracker(observer *Body, subject Sighted, lineOfSight func(from, to geo.Vec3) bool) *StockTracker {
	if observer == nil || subject == nil || lineOfSight == nil {
		panic("agent: NewStockTracker: observer, subject, and lineOfSight must not be nil")
	}
	return &StockTracker{observer: observer, subject: subject, lineOfSight: lineOfSight}
}

// Tick advances visibility accounting by dt seconds. Continuous visibility
// accumulates while line of sight holds and resets the moment it breaks, so
// the reaction gate always measures from the instant the target became
// visible again.
//
// Precondition: dt >= 0.
func (s *StockTracker) Tick(dt float64) {
	pos := s.subject.Position()
	if s.lineOfSight(s.observer.Position(), pos) {
		s.visibleFor += dt
		s.everSensed = true
		s.lastSensed = pos
	} else {
		s.visibleFor = 0
	}
}

// Target implements TargetTracker. A subject that has never been sensed is
// not a target at all.
func (s *StockTracker) Target() (TargetInfo, bool) {
	if !s.everSensed {
		return TargetInfo{}, false
	}
	pos := s.subject.Position()
	shootable := s.visibleFor > 0
	info := TargetInfo{
		Position:           pos,
		Center:             pos.Add(CenterOffset),
		Shootable:          shootable,
		LastSensedPosition: s.lastSensed,
	}
	if shootable {
		info.VisibleFor = s.visibleFor
	}
	return info, true
}
