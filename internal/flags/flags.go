// Package flags holds the static feature switches for the web client.
// Values are fixed at process start; they never change at runtime.
package flags

// Flags controls feature visibility across views.
type Flags struct {
	// DealsEnabled gates the whole deals subsystem. When false, views must
	// skip deal fetches entirely rather than fetch and hide.
	DealsEnabled bool
}

// IsDealsEnabled reports whether the deals subsystem is visible.
func (f Flags) IsDealsEnabled() bool { return f.DealsEnabled }
