package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a    []float32
		b    []float32
		want float32
	}{
		{
			name: "identical vectors",
			a:    []float32{1, 2, 3},
			b:    []float32{1, 2, 3},
			want: 1.0,
		},
		{
			name: "orthogonal vectors",
			a:    []float32{1, 0},
			b:    []float32{0, 1},
			want: 0.0,
		},
		{
			name: "opposite vectors clamp to zero",
			a:    []float32{1, 0},
			b:    []float32{-1, 0},
			want: 0.0,
		},
		{
			name: "scaled vectors are identical",
			a:    []float32{1, 2, 3},
			b:    []float32{2, 4, 6},
			want: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Cosine(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-6)
		})
	}
}

func TestCosine_Symmetric(t *testing.T) {
	pairs := [][2][]float32{
		{{0.3, 0.2, 0.9}, {0.1, 0.8, 0.4}},
		{{1, 0, 0}, {0.5, 0.5, 0}},
		{{0.7, 0.7}, {0.7, 0.1}},
	}

	for _, pair := range pairs {
		ab, err := Cosine(pair[0], pair[1])
		require.NoError(t, err)
		ba, err := Cosine(pair[1], pair[0])
		require.NoError(t, err)
		assert.Equal(t, ab, ba)
	}
}

func TestCosine_SelfSimilarity(t *testing.T) {
	v := []float32{0.12, 0.4, 0.9, 0.3}
	got, err := Cosine(v, v)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, got, 1e-6)
}

func TestCosine_Errors(t *testing.T) {
	t.Run("empty vector", func(t *testing.T) {
		_, err := Cosine(nil, []float32{1, 2})
		assert.ErrorIs(t, err, ErrEmptyVector)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := Cosine([]float32{1, 2}, []float32{1, 2, 3})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("zero magnitude", func(t *testing.T) {
		_, err := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3})
		assert.ErrorIs(t, err, ErrZeroMagnitude)
	})
}

func TestRank(t *testing.T) {
	query := []float32{1, 0}
	candidates := []Candidate{
		{Id: 1, Vector: []float32{0, 1}},        // score 0
		{Id: 2, Vector: []float32{1, 0}},        // score 1
		{Id: 3, Vector: []float32{1, 1}},        // score ~0.707
		{Id: 4, Vector: []float32{0.9, 0.1}},    // score ~0.994
		{Id: 5, Vector: []float32{0.05, 0.95}},  // score ~0.05
	}

	t.Run("sorted descending and thresholded", func(t *testing.T) {
		matches, err := Rank(query, candidates, 0.5, 10)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, uint64(2), matches[0].Id)
		assert.Equal(t, uint64(4), matches[1].Id)
		assert.Equal(t, uint64(3), matches[2].Id)
	})

	t.Run("limit truncates", func(t *testing.T) {
		matches, err := Rank(query, candidates, 0.0, 2)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, uint64(2), matches[0].Id)
		assert.Equal(t, uint64(4), matches[1].Id)
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		tied := []Candidate{
			{Id: 10, Vector: []float32{2, 0}},
			{Id: 11, Vector: []float32{3, 0}},
			{Id: 12, Vector: []float32{1, 0}},
		}
		matches, err := Rank(query, tied, 0.9, 10)
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Equal(t, uint64(10), matches[0].Id)
		assert.Equal(t, uint64(11), matches[1].Id)
		assert.Equal(t, uint64(12), matches[2].Id)
	})

	t.Run("malformed candidate fails", func(t *testing.T) {
		bad := []Candidate{{Id: 20, Vector: []float32{1, 2, 3}}}
		_, err := Rank(query, bad, 0.0, 10)
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})

	t.Run("empty candidates", func(t *testing.T) {
		matches, err := Rank(query, nil, 0.5, 10)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

// Results at a higher threshold must be an ordered prefix of results at a
// lower threshold with the same limit.
func TestRank_MonotonicThreshold(t *testing.T) {
	query := []float32{1, 0, 0}
	candidates := []Candidate{
		{Id: 1, Vector: []float32{1, 0, 0}},
		{Id: 2, Vector: []float32{0.8, 0.2, 0}},
		{Id: 3, Vector: []float32{0.5, 0.5, 0}},
		{Id: 4, Vector: []float32{0.2, 0.8, 0}},
		{Id: 5, Vector: []float32{0, 1, 0}},
	}

	strict, err := Rank(query, candidates, 0.8, 10)
	require.NoError(t, err)
	loose, err := Rank(query, candidates, 0.3, 10)
	require.NoError(t, err)

	require.LessOrEqual(t, len(strict), len(loose))
	for i, match := range strict {
		assert.Equal(t, match.Id, loose[i].Id)
		assert.Equal(t, match.Score, loose[i].Score)
	}
}

func TestNormalize(t *testing.T) {
	t.Run("unit length result", func(t *testing.T) {
		normalized := Normalize([]float32{3, 4})
		assert.InDelta(t, 0.6, normalized[0], 1e-6)
		assert.InDelta(t, 0.8, normalized[1], 1e-6)
	})

	t.Run("zero vector stays zero", func(t *testing.T) {
		normalized := Normalize([]float32{0, 0})
		assert.Equal(t, []float32{0, 0}, normalized)
	})

	t.Run("empty vector", func(t *testing.T) {
		assert.Empty(t, Normalize(nil))
	})
}
