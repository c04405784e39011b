// Package weapon provides weapon definitions, the registry of loaded
// definitions, and the live weapon entity with its firing state machine.
package weapon

import (
	"errors"
	"fmt"
)

// Type identifies a weapon kind. The set is closed but extensible: new types
// require a curve entry in curveTable and a definition in the content
// directory (or the compiled-in defaults).
type Type string

const (
	// TypeBlaster is the fallback sidearm granted on reset.
	TypeBlaster Type = "blaster"
	// TypeShotgun is the close-quarters weapon.
	TypeShotgun Type = "shotgun"
	// TypeAssaultRifle is the mid-to-long range weapon.
	TypeAssaultRifle Type = "assault_rifle"
)

// ErrUnknownType reports a request for a weapon type that is not part of the
// closed type set. Callers in the per-frame path log and continue; the error
// is never fatal.
var ErrUnknownType = errors.New("weapon: unknown weapon type")

// ParseType validates raw against the closed type set.
//
// Postcondition: returns a known Type, or ErrUnknownType wrapped with raw.
func ParseType(raw string) (Type, error) {
	switch t := Type(raw); t {
	case TypeBlaster, TypeShotgun, TypeAssaultRifle:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownType, raw)
	}
}

// Status is the externally visible state of a live weapon. Fire control only
// distinguishes Empty and Ready; the remaining states are internal to the
// weapon and pass through fire control untouched.
type Status string

const (
	// StatusReady means the weapon has rounds and can fire.
	StatusReady Status = "ready"
	// StatusEmpty means the weapon has no rounds and must reload.
	StatusEmpty Status = "empty"
	// StatusReloading means a reload is in progress.
	StatusReloading Status = "reloading"
	// StatusCoolingDown means the weapon is between shots.
	StatusCoolingDown Status = "cooling_down"
)
