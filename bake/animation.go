package bake

import (
	"fmt"

	"github.com/forgekit/forge/errs"
	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/model"
	"github.com/forgekit/forge/sourcecfg"
)

// AnimationSource is the bake stage's external-collaborator contract for
// reading an animation clip from its source file (spec §4.7). A glTF
// document supplies one animation per named clip, keyed by name.
type AnimationSource interface {
	// ClipNames lists every animation clip name the source declares, in
	// document order (the first is the default per spec §4.7).
	ClipNames() []string
	// Channels returns the named clip's channels.
	Channels(clipName string) ([]AnimationChannel, error)
}

// AnimationChannel is one source channel's raw keyframe track, before
// exclusion filtering or monotonicity validation.
type AnimationChannel struct {
	JointName  string
	Kind       format.KeyframeKind
	Times      []float64
	Values     []float32
	Components int
}

// Animation bakes an animation document into its canonical form per spec
// §4.7: selects the named clip (or the source's first), drops every
// (joint, path) channel listed in exclude, and validates strict time
// monotonicity per channel.
func Animation(src AnimationSource, doc *sourcecfg.AnimationDoc) (*model.Animation, error) {
	clipName := doc.Name
	if clipName == "" {
		names := src.ClipNames()
		if len(names) == 0 {
			return nil, fmt.Errorf("%w: animation source declares no clips", errs.ErrPipeline)
		}
		clipName = names[0]
	}

	channels, err := src.Channels(clipName)
	if err != nil {
		return nil, err
	}

	excluded := make(map[[2]string]struct{}, len(doc.Exclude))
	for _, e := range doc.Exclude {
		excluded[[2]string{e.Joint, keyframePathName(e.Path)}] = struct{}{}
	}

	var duration float64
	out := make([]model.Channel, 0, len(channels))
	for _, ch := range channels {
		if _, skip := excluded[[2]string{ch.JointName, keyframePathNameForKind(ch.Kind)}]; skip {
			continue
		}

		if err := validateMonotone(ch.Times); err != nil {
			return nil, fmt.Errorf("%w: channel %s/%s: %v", errs.ErrPipeline, ch.JointName, keyframePathNameForKind(ch.Kind), err)
		}

		if n := len(ch.Times); n > 0 && ch.Times[n-1] > duration {
			duration = ch.Times[n-1]
		}

		out = append(out, model.Channel{
			JointName:  ch.JointName,
			Kind:       ch.Kind,
			Times:      ch.Times,
			Values:     ch.Values,
			Components: ch.Components,
		})
	}

	return &model.Animation{Name: clipName, Duration: duration, Channels: out}, nil
}

func keyframePathName(path string) string {
	return path
}

func keyframePathNameForKind(kind format.KeyframeKind) string {
	switch kind {
	case format.KeyframeTranslation:
		return "translation"
	case format.KeyframeRotation:
		return "rotation"
	case format.KeyframeScale:
		return "scale"
	case format.KeyframeWeights:
		return "weights"
	default:
		return ""
	}
}

// validateMonotone rejects a timeline that is not strictly increasing
// (spec §4.7, §9 edge case).
func validateMonotone(times []float64) error {
	for i := 1; i < len(times); i++ {
		if times[i] <= times[i-1] {
			return fmt.Errorf("time %g at index %d does not strictly increase from %g", times[i], i, times[i-1])
		}
	}
	return nil
}
