package model

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgekit/forge/format"
)

func TestAnimation_RoundTrip(t *testing.T) {
	a := &Animation{
		Name:     "walk",
		Duration: 1.5,
		Channels: []Channel{
			{
				JointName: "hip",
				Kind:      format.KeyframeTranslation,
				Times:     []float64{0, 0.5, 1.5},
				Values:    []float32{0, 0, 0, 0, 1, 0, 0, 2, 0},
			},
			{
				JointName:  "jaw",
				Kind:       format.KeyframeWeights,
				Components: 2,
				Times:      []float64{0, 1.5},
				Values:     []float32{0, 0, 1, 0.5},
			},
		},
	}

	parsed, err := DecodeAnimation(a.Encode())
	require.NoError(t, err)
	require.Equal(t, a, parsed)
}

func TestAnimation_TimesStrictlyIncreasing(t *testing.T) {
	times := []float64{0, 0.2, 0.8, 1.5}
	for i := 1; i < len(times); i++ {
		require.Greater(t, times[i], times[i-1])
	}
}
