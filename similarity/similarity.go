// Package similarity provides cosine similarity and vector ranking primitives.
//
// Every component that compares vectors (duplicate resolution, clustering,
// semantic search) goes through this package, so similarity semantics are
// identical across the system. All functions are pure and side-effect free.
package similarity

import (
	"fmt"
	"math"
	"sort"
)

// Candidate is an identified vector to be ranked against a query.
type Candidate struct {
	Id     uint64
	Vector []float32
}

// Match is a candidate that scored at or above the ranking threshold.
type Match struct {
	Id    uint64
	Score float32
}

// Cosine computes the cosine similarity of two vectors, clamped to [0,1].
// It fails loudly on empty or mismatched-dimension vectors and on zero
// magnitude, since those indicate corrupt embeddings rather than low
// similarity.
func Cosine(a, b []float32) (float32, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, ErrEmptyVector
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}

	var dot, magA, magB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		magA += float64(a[i]) * float64(a[i])
		magB += float64(b[i]) * float64(b[i])
	}

	if magA == 0 || magB == 0 {
		return 0, ErrZeroMagnitude
	}

	score := dot / (math.Sqrt(magA) * math.Sqrt(magB))

	// Clamp: floating point drift can push the ratio slightly outside [-1,1],
	// and negative similarity carries no meaning for this corpus.
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return float32(score), nil
}

// Distance returns the cosine distance 1 - Cosine(a, b).
func Distance(a, b []float32) (float32, error) {
	score, err := Cosine(a, b)
	if err != nil {
		return 0, err
	}
	return 1 - score, nil
}

// Rank scores every candidate against the query vector and returns matches
// with score >= threshold, sorted by descending score and truncated to limit.
// Ties keep candidate insertion order (stable sort). Candidates with
// malformed vectors produce an error rather than being silently dropped;
// callers own the decision to skip bad data before ranking.
// A limit <= 0 means no truncation.
func Rank(query []float32, candidates []Candidate, threshold float32, limit int) ([]Match, error) {
	matches := make([]Match, 0, len(candidates))
	for _, c := range candidates {
		score, err := Cosine(query, c.Vector)
		if err != nil {
			return nil, fmt.Errorf("candidate %d: %w", c.Id, err)
		}
		if score >= threshold {
			matches = append(matches, Match{Id: c.Id, Score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Normalize normalizes a vector to unit length.
// Returns a new vector. If the input is a zero vector, returns a zero vector.
func Normalize(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var magnitude float32
	for _, val := range v {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude == 0 {
		result := make([]float32, len(v))
		return result
	}

	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / magnitude
	}
	return result
}
