// Package clients declares the capabilities pond resolves through the
// dependency registry. Each one ships live, noop and unimplemented variants.
package clients

import (
	"github.com/atotto/clipboard"

	"github.com/alexisbeaulieu97/pond/internal/dependency"
	"github.com/alexisbeaulieu97/pond/internal/failure"
	"github.com/alexisbeaulieu97/pond/internal/logger"
)

// Pasteboard copies text to the system clipboard.
type Pasteboard struct {
	write func(text string)
}

// NewPasteboard builds a Pasteboard from a copy function.
func NewPasteboard(write func(text string)) Pasteboard {
	return Pasteboard{write: write}
}

// Copy places text on the pasteboard.
func (p Pasteboard) Copy(text string) {
	if p.write != nil {
		p.write(text)
	}
}

// LivePasteboard writes to the system clipboard. Failures, such as a
// missing xclip on Linux, are logged.
func LivePasteboard(log *logger.Logger) Pasteboard {
	log = log.Component("pasteboard")
	return NewPasteboard(func(text string) {
		if err := clipboard.WriteAll(text); err != nil {
			log.Error(err, "failed to write clipboard")
		}
	})
}

// NoopPasteboard discards everything.
func NoopPasteboard() Pasteboard {
	return NewPasteboard(func(string) {})
}

// UnimplementedPasteboard fails the running test when used.
func UnimplementedPasteboard() Pasteboard {
	return NewPasteboard(func(string) {
		failure.Unimplemented("Pasteboard")
	})
}

// PasteboardKey resolves to the live pasteboard unless overridden.
var PasteboardKey = dependency.NewKey("pasteboard", func() Pasteboard {
	return LivePasteboard(nil)
})
