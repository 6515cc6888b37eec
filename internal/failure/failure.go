// Package failure signals that an unimplemented capability variant ran.
//
// Inside tests the signal always fails the running test: through the
// installed Reporter (usually the *testing.T) when there is one, otherwise by
// panicking. Outside tests the signal is logged in debug builds and ignored
// in release builds.
package failure

import (
	"fmt"
	"sync"
	"testing"

	"github.com/alexisbeaulieu97/pond/internal/buildmode"
	"github.com/alexisbeaulieu97/pond/internal/logger"
)

// Reporter receives failure signals. testing.TB satisfies it.
type Reporter interface {
	Errorf(format string, args ...any)
}

var (
	mu       sync.RWMutex
	reporter Reporter
	log      *logger.Logger
	debug    = buildmode.Debug
	inTest   = testing.Testing
)

// Install makes r the active reporter until the returned func is called.
func Install(r Reporter) (restore func()) {
	mu.Lock()
	prev := reporter
	reporter = r
	mu.Unlock()

	return func() {
		mu.Lock()
		reporter = prev
		mu.Unlock()
	}
}

// SetLogger sets the logger used for debug builds when no reporter is installed.
func SetLogger(l *logger.Logger) {
	mu.Lock()
	defer mu.Unlock()
	log = l
}

// Unimplemented reports that the named capability variant was invoked.
func Unimplemented(name string) {
	Reportf("%s is unimplemented", name)
}

// Reportf sends a formatted failure to the active reporter. Under go test
// with no reporter installed it panics so the running test fails.
func Reportf(format string, args ...any) {
	mu.RLock()
	r, l, dbg, underTest := reporter, log, debug, inTest
	mu.RUnlock()

	if r != nil {
		if h, ok := r.(interface{ Helper() }); ok {
			h.Helper()
		}
		r.Errorf(format, args...)
		return
	}

	msg := fmt.Sprintf(format, args...)
	if underTest() {
		panic(msg)
	}
	if dbg {
		l.Error(nil, msg)
	}
}
