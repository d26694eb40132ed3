package model

import "github.com/forgekit/forge/format"

// Channel is one animated property of one joint: a strictly increasing time
// track and matching keyframe values, whose per-keyframe component count
// depends on Kind (3 for translation/scale, 4 for rotation, Components for
// weights, spec §3.2).
type Channel struct {
	JointName  string
	Kind       format.KeyframeKind
	Times      []float64
	Values     []float32
	Components int // only meaningful when Kind == KeyframeWeights
}

// Animation is the canonical baked form of a skeletal animation clip (spec
// §3.2).
type Animation struct {
	Name     string
	Duration float64
	Channels []Channel
}
