// Package bake transforms a resolved source description plus decoded source
// bytes into a canonical model entity, per spec §4.5-§4.7. Each bake
// function is pure: given the same source bytes and description it always
// produces the same entity, so the worker pool in internal/workerpool can
// run them concurrently with no shared state.
package bake
