package tiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// predictForward applies horizontal differencing to row in place (the
// inverse of reversePredictor), used only to build round-trip fixtures.
func predictForward(row []uint32, cols, bands int, mod uint64) {
	for x := cols - 1; x >= 1; x-- {
		for b := 0; b < bands; b++ {
			cur := x*bands + b
			prev := cur - bands
			row[cur] = uint32((uint64(row[cur]) - uint64(row[prev]) + mod) % mod)
		}
	}
}

func TestReversePredictorIdentity(t *testing.T) {
	original := []uint32{10, 30, 70, 140, 5, 250}
	cols, bands := 3, 2
	mod := uint64(256)

	row := append([]uint32(nil), original...)
	predictForward(row, cols, bands, mod)
	err := reversePredictor(prHorizontal, row, cols, bands, mod)
	require.NoError(t, err)
	assert.Equal(t, original, row)
}

// TestReversePredictorGradientScenario is the LZW+predictor gradient
// scenario: the predicted row [0,1,1,1,1,1,1,1] un-predicts to
// [0,1,2,3,4,5,6,7].
func TestReversePredictorGradientScenario(t *testing.T) {
	predicted := []uint32{0, 1, 1, 1, 1, 1, 1, 1}
	want := []uint32{0, 1, 2, 3, 4, 5, 6, 7}
	err := reversePredictor(prHorizontal, predicted, len(predicted), 1, 256)
	require.NoError(t, err)
	assert.Equal(t, want, predicted)
}

func TestReversePredictorNoneIsIdentity(t *testing.T) {
	row := []uint32{1, 2, 3}
	err := reversePredictor(prNone, row, 3, 1, 256)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2, 3}, row)
}

func TestReversePredictorUnsupported(t *testing.T) {
	row := []uint32{1, 2, 3}
	err := reversePredictor(prFloatingPoint, row, 3, 1, 256)
	assert.Error(t, err)
	_, ok := err.(UnsupportedPredictorError)
	assert.True(t, ok)
}
