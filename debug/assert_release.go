//go:build !debug

// Package debug provides assertions that can be enabled with the debug build
// tag or will otherwise compile to no-ops.
//
// The pipeline models hardware that has no error path. Where a stage would
// otherwise corrupt SDRAM silently, like a fragment landing outside the
// render target, it asserts instead.
package debug

// Guard assertions that do work themselves (like the rasterizer's bounding
// box check) with `if debug.Enabled{...}`, otherwise they can't be removed
// in release builds.
const Enabled = false

// Assert panics if b is false.
func Assert(b bool, message string) {}

// AssertErrNil panics if err is not nil.
func AssertErrNil(err error) {}
