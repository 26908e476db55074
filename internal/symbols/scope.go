package symbols

// Scope maps variable names to storage slots during one function's code
// generation. yot has a single flat scope per function: parameters are
// pre-bound by the generator, and redeclaring a bound name rebinds it to
// a fresh slot (shadow-and-rebind).
type Scope struct {
	slots map[string]string
}

// NewScope creates an empty per-function scope.
func NewScope() *Scope {
	return &Scope{slots: make(map[string]string)}
}

// Bind associates a variable name with a storage slot, replacing any
// previous binding of the same name.
func (s *Scope) Bind(name, slot string) {
	s.slots[name] = slot
}

// Lookup returns the slot bound to name.
func (s *Scope) Lookup(name string) (string, bool) {
	slot, ok := s.slots[name]
	return slot, ok
}
