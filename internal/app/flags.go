package app

import "flag"

// Flags represents the command-line parameters shared by the world binaries.
type Flags struct {
	Width   int
	Height  int
	Spacing float64
	Seed    int64
}

// NewFlags returns a Flags populated with sensible defaults.
func NewFlags() *Flags {
	return &Flags{Width: 800, Height: 600, Spacing: 8, Seed: 42}
}

// Bind attaches the configuration to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.IntVar(&f.Width, "width", f.Width, "map width in pixels")
	fs.IntVar(&f.Height, "height", f.Height, "map height in pixels")
	fs.Float64Var(&f.Spacing, "spacing", f.Spacing, "minimum distance between cell sites")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "seed for world generation")
}
