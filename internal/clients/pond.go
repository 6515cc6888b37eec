package clients

import (
	"github.com/alexisbeaulieu97/pond/internal/dependency"
	"github.com/alexisbeaulieu97/pond/internal/failure"
	"github.com/alexisbeaulieu97/pond/internal/pond"
)

// PondKey resolves to a process-wide in-memory store unless overridden.
var PondKey = dependency.NewKey("pond", func() pond.Store {
	return LivePond()
})

// LivePond returns a fresh in-memory store. Applications that need
// persistence install a preferences, secure or blob store instead.
func LivePond() pond.Store {
	return pond.NewMemory()
}

// NoopPond returns a store with no observable effects.
func NoopPond() pond.Store {
	return pond.NewNoop()
}

// UnimplementedPond returns a store that fails the running test on every
// call and otherwise behaves like NoopPond.
func UnimplementedPond() pond.Store {
	return unimplementedPond{}
}

type unimplementedPond struct{}

func (unimplementedPond) ID() string { return "unimplemented" }

func (unimplementedPond) Lookup(string) (pond.Value, bool) {
	failure.Unimplemented("Pond.Lookup")
	return pond.None, false
}

func (unimplementedPond) Put(string, pond.Value) {
	failure.Unimplemented("Pond.Put")
}

func (unimplementedPond) Remove(string) {
	failure.Unimplemented("Pond.Remove")
}

func (unimplementedPond) Contains(string) bool {
	failure.Unimplemented("Pond.Contains")
	return false
}

func (unimplementedPond) RemoveAll() {
	failure.Unimplemented("Pond.RemoveAll")
}

func (unimplementedPond) Keys() []string {
	failure.Unimplemented("Pond.Keys")
	return nil
}
