//go:build debug

package debug

// Guard assertions that do work themselves (like the rasterizer's bounding
// box check) with `if debug.Enabled{...}`, otherwise they can't be removed
// in release builds.
const Enabled = true

func Assert(b bool, message string) {
	if !b {
		panic(message)
	}
}

func AssertErrNil(err error) {
	if err != nil {
		panic(err)
	}
}
