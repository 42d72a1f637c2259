package editor

// Config holds editor configuration options.
type Config struct {
	// Seed for random number generation. Used for reproducible generated layouts.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// LayoutWidth and LayoutDepth size generated layouts, in cells.
	// Zero uses the world defaults.
	LayoutWidth int
	LayoutDepth int
}
