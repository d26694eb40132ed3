// Package resolve expands a parsed content document into an ordered list of
// bake work items: it globs asset groups, infers each file's asset kind,
// resolves src fields against the rules in spec §4.4, follows embedded
// references (material -> bitmap, scene -> mesh/material, model ->
// mesh/materials) to enlist assets the content document never named
// directly, and topologically sorts the result so a referent always bakes
// before anything that references it.
package resolve
