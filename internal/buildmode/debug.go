//go:build debug

package buildmode

// Debug reports whether the binary was built with the debug tag.
const Debug = true
