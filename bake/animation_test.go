package bake

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/format"
	"github.com/forgekit/forge/sourcecfg"
)

type fakeAnimSource struct {
	clips map[string][]AnimationChannel
	order []string
}

func (f fakeAnimSource) ClipNames() []string { return f.order }

func (f fakeAnimSource) Channels(clip string) ([]AnimationChannel, error) {
	return f.clips[clip], nil
}

func TestAnimation_SelectsFirstClipWhenNameOmitted(t *testing.T) {
	src := fakeAnimSource{
		order: []string{"Walk"},
		clips: map[string][]AnimationChannel{
			"Walk": {{JointName: "hip", Kind: format.KeyframeTranslation, Times: []float64{0, 1}, Values: []float32{0, 0, 0, 1, 0, 0}}},
		},
	}

	anim, err := Animation(src, &sourcecfg.AnimationDoc{})
	require.NoError(t, err)
	require.Equal(t, "Walk", anim.Name)
	require.Equal(t, 1.0, anim.Duration)
	require.Len(t, anim.Channels, 1)
}

func TestAnimation_ExcludesNamedChannel(t *testing.T) {
	src := fakeAnimSource{
		order: []string{"Walk"},
		clips: map[string][]AnimationChannel{
			"Walk": {
				{JointName: "hip", Kind: format.KeyframeTranslation, Times: []float64{0, 1}, Values: []float32{0, 0, 0, 1, 0, 0}},
				{JointName: "spine", Kind: format.KeyframeRotation, Times: []float64{0, 1}, Values: []float32{0, 0, 0, 1, 0, 0, 0, 1}},
			},
		},
	}

	anim, err := Animation(src, &sourcecfg.AnimationDoc{
		Exclude: []sourcecfg.ExcludeDoc{{Joint: "spine", Path: "rotation"}},
	})
	require.NoError(t, err)
	require.Len(t, anim.Channels, 1)
	require.Equal(t, "hip", anim.Channels[0].JointName)
}

func TestAnimation_NonMonotoneTimelineErrors(t *testing.T) {
	src := fakeAnimSource{
		order: []string{"Walk"},
		clips: map[string][]AnimationChannel{
			"Walk": {{JointName: "hip", Kind: format.KeyframeTranslation, Times: []float64{0, 1, 1}, Values: []float32{0, 0, 0, 1, 0, 0, 2, 0, 0}}},
		},
	}

	_, err := Animation(src, &sourcecfg.AnimationDoc{})
	require.Error(t, err)
}

func TestAnimation_SelectsNamedClip(t *testing.T) {
	src := fakeAnimSource{
		order: []string{"Walk", "Run"},
		clips: map[string][]AnimationChannel{
			"Walk": {{JointName: "hip", Kind: format.KeyframeTranslation, Times: []float64{0, 1}, Values: []float32{0, 0, 0, 1, 0, 0}}},
			"Run":  {{JointName: "hip", Kind: format.KeyframeTranslation, Times: []float64{0, 2}, Values: []float32{0, 0, 0, 2, 0, 0}}},
		},
	}

	anim, err := Animation(src, &sourcecfg.AnimationDoc{Name: "Run"})
	require.NoError(t, err)
	require.Equal(t, "Run", anim.Name)
	require.Equal(t, 2.0, anim.Duration)
}

func TestAnimation_NoClipsErrors(t *testing.T) {
	src := fakeAnimSource{}
	_, err := Animation(src, &sourcecfg.AnimationDoc{})
	require.Error(t, err)
}
