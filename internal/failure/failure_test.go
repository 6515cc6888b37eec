package failure

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alexisbeaulieu97/pond/internal/logger"
)

type recorder struct {
	messages []string
}

func (r *recorder) Errorf(format string, args ...any) {
	r.messages = append(r.messages, fmt.Sprintf(format, args...))
}

func withDebug(t *testing.T, enabled bool) {
	t.Helper()
	mu.Lock()
	prev := debug
	debug = enabled
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		debug = prev
		mu.Unlock()
	})
}

// outsideTests makes the package behave as it does in a regular binary.
func outsideTests(t *testing.T) {
	t.Helper()
	mu.Lock()
	prev := inTest
	inTest = func() bool { return false }
	mu.Unlock()
	t.Cleanup(func() {
		mu.Lock()
		inTest = prev
		mu.Unlock()
	})
}

func TestUnimplementedReportsToInstalledReporter(t *testing.T) {
	rec := &recorder{}
	restore := Install(rec)
	defer restore()

	Unimplemented("Pasteboard")

	require.Equal(t, []string{"Pasteboard is unimplemented"}, rec.messages)
}

func TestRestoreReinstatesPreviousReporter(t *testing.T) {
	outer := &recorder{}
	inner := &recorder{}

	restoreOuter := Install(outer)
	defer restoreOuter()

	restoreInner := Install(inner)
	Unimplemented("inner")
	restoreInner()
	Unimplemented("outer")

	require.Equal(t, []string{"inner is unimplemented"}, inner.messages)
	require.Equal(t, []string{"outer is unimplemented"}, outer.messages)
}

func TestUnimplementedWithoutReporterFailsRunningTest(t *testing.T) {
	for _, enabled := range []bool{true, false} {
		withDebug(t, enabled)
		require.PanicsWithValue(t, "Pond is unimplemented", func() { Unimplemented("Pond") })
	}
}

func TestDebugBuildLogsWithoutReporter(t *testing.T) {
	outsideTests(t)
	withDebug(t, true)

	buf := &bytes.Buffer{}
	l, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	Unimplemented("Pond")

	require.Contains(t, buf.String(), "Pond is unimplemented")
}

func TestReleaseBuildIsSilentWithoutReporter(t *testing.T) {
	outsideTests(t)
	withDebug(t, false)

	buf := &bytes.Buffer{}
	l, err := logger.New(logger.Options{Writer: buf})
	require.NoError(t, err)
	SetLogger(l)
	t.Cleanup(func() { SetLogger(nil) })

	require.NotPanics(t, func() { Unimplemented("Pond") })
	require.Empty(t, buf.String())
}
