package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDBSCANTwoGroups(t *testing.T) {
	// Two tight groups plus one outlier.
	vectors := [][]float32{
		{1, 0, 0},
		{0.99, 0.05, 0},
		{0.98, 0.08, 0},
		{0, 1, 0},
		{0.05, 0.99, 0},
		{0.5, 0.5, 0.7},
	}

	labels, err := dbscan(vectors, 0.3, 2)
	require.NoError(t, err)
	require.Len(t, labels, 6)

	assert.Equal(t, labels[0], labels[1])
	assert.Equal(t, labels[1], labels[2])
	assert.Equal(t, labels[3], labels[4])
	assert.NotEqual(t, labels[0], labels[3])
	assert.NotEqual(t, NoiseLabel, labels[0])
	assert.NotEqual(t, NoiseLabel, labels[3])
}

func TestDBSCANAllNoise(t *testing.T) {
	// Mutually orthogonal vectors share no dense region at eps 0.3.
	vectors := [][]float32{
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	}

	labels, err := dbscan(vectors, 0.3, 2)
	require.NoError(t, err)

	for i, label := range labels {
		assert.Equal(t, NoiseLabel, label, "vector %d", i)
	}
}

func TestDBSCANSinglePointIsNoise(t *testing.T) {
	labels, err := dbscan([][]float32{{1, 0}}, 0.3, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{NoiseLabel}, labels)
}

func TestDBSCANDeterministicLabels(t *testing.T) {
	vectors := [][]float32{
		{0, 1, 0},
		{0.02, 0.99, 0},
		{1, 0, 0},
		{0.99, 0.02, 0},
	}

	first, err := dbscan(vectors, 0.3, 2)
	require.NoError(t, err)
	second, err := dbscan(vectors, 0.3, 2)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	// Labels are assigned in scan order.
	assert.Equal(t, 0, first[0])
	assert.Equal(t, 1, first[2])
}

func TestDBSCANEmpty(t *testing.T) {
	labels, err := dbscan(nil, 0.3, 2)
	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestDBSCANMalformedVector(t *testing.T) {
	vectors := [][]float32{
		{1, 0},
		{1, 0, 0},
	}

	_, err := dbscan(vectors, 0.3, 2)
	assert.Error(t, err)
}
