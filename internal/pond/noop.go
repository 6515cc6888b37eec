package pond

// Noop ignores writes and never finds anything.
type Noop struct{}

// NewNoop returns a store with no observable effects.
func NewNoop() Noop { return Noop{} }

func (Noop) ID() string                  { return "noop" }
func (Noop) Lookup(string) (Value, bool) { return None, false }
func (Noop) Put(string, Value)           {}
func (Noop) Remove(string)               {}
func (Noop) Contains(string) bool        { return false }
func (Noop) RemoveAll()                  {}
func (Noop) Keys() []string              { return nil }
