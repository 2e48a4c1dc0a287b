// Copyright 2025 Joblens Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package cluster

import "github.com/joblens/joblens/similarity"

// NoiseLabel marks points that belong to no cluster.
const NoiseLabel = -1

// dbscan assigns a cluster label to every vector using density-based
// clustering over cosine distance. Points in no dense region get NoiseLabel.
// minPts counts the point itself, so minPts=2 means one neighbor within eps
// suffices to form a cluster. Labels are assigned in scan order, which makes
// the output deterministic for a fixed input order.
func dbscan(vectors [][]float32, eps float32, minPts int) ([]int, error) {
	n := len(vectors)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = NoiseLabel
	}
	visited := make([]bool, n)

	neighborsOf := func(i int) ([]int, error) {
		var neighbors []int
		for j := 0; j < n; j++ {
			d, err := similarity.Distance(vectors[i], vectors[j])
			if err != nil {
				return nil, err
			}
			if d <= eps {
				neighbors = append(neighbors, j)
			}
		}
		return neighbors, nil
	}

	next := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors, err := neighborsOf(i)
		if err != nil {
			return nil, err
		}
		if len(neighbors) < minPts {
			continue
		}

		label := next
		next++
		labels[i] = label

		// Expand the cluster through density-reachable points.
		queue := append([]int(nil), neighbors...)
		for len(queue) > 0 {
			j := queue[0]
			queue = queue[1:]

			if labels[j] == NoiseLabel {
				labels[j] = label
			}
			if visited[j] {
				continue
			}
			visited[j] = true

			reachable, err := neighborsOf(j)
			if err != nil {
				return nil, err
			}
			if len(reachable) >= minPts {
				queue = append(queue, reachable...)
			}
		}
	}

	return labels, nil
}
