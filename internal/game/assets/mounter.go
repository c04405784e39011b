// Package assets is the presentation collaborator boundary. The combat core
// requests a visual and audio representation for a weapon exactly once, at
// acquisition time, and never inspects it afterward.
package assets

import "github.com/cory-johannsen/skirmish/internal/game/weapon"

// Prop is an opaque handle to a mounted representation. The core holds it
// only to release it when the weapon is removed.
type Prop interface {
	// Release detaches the representation from its rig.
	Release()
}

// Mounter attaches a weapon's visual and positional-audio representation to
// an agent's rig at the definition's fixed mount offset.
type Mounter interface {
	// Mount obtains and attaches the representation for the given weapon
	// type. Errors are presentation-local: the combat core logs them and
	// carries on without a representation.
	Mount(t weapon.Type, offset weapon.MountOffset) (Prop, error)
}

// Headless is a Mounter for simulations with no rendering or audio backend.
type Headless struct{}

type headlessProp struct{}

func (headlessProp) Release() {}

// Mount returns an inert Prop.
func (Headless) Mount(weapon.Type, weapon.MountOffset) (Prop, error) {
	return headlessProp{}, nil
}
