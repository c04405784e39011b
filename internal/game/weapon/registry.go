package weapon

import "fmt"

// Registry holds all loaded weapon definitions indexed by Type.
type Registry struct {
	defs map[Type]*Def
}

// NewRegistry returns an empty Registry.
//
// Postcondition: the internal map is initialised.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[Type]*Def)}
}

// Register adds d to the registry.
//
// Precondition:  d must not be nil and must satisfy d.Validate().
// Postcondition: Def(Type(d.Type)) returns d; returns error if the type is
// already registered or the definition is invalid.
func (r *Registry) Register(d *Def) error {
	if err := d.Validate(); err != nil {
		return err
	}
	t := Type(d.Type)
	if _, exists := r.defs[t]; exists {
		return fmt.Errorf("weapon: Registry.Register: type %q already registered", d.Type)
	}
	r.defs[t] = d
	return nil
}

// Def returns the Def for the given type and whether it was found.
//
// Postcondition: ok is true iff the type is registered.
func (r *Registry) Def(t Type) (*Def, bool) {
	d, ok := r.defs[t]
	return d, ok
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	return len(r.defs)
}

// DefaultRegistry returns a Registry populated with DefaultDefs.
//
// Postcondition: every known Type resolves.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, d := range DefaultDefs() {
		if err := r.Register(d); err != nil {
			panic("weapon: DefaultRegistry: " + err.Error())
		}
	}
	return r
}
