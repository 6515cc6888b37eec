// Package buildmode exposes the debug/release switch selected at build time
// with the "debug" tag.
package buildmode
