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


package storage

import (
	"github.com/joblens/joblens/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalListing serializes a Listing to bytes.
func MarshalListing(listing *core.Listing) []byte {
	buf := make([]byte, core.ListingMUS.Size(*listing))
	core.ListingMUS.Marshal(*listing, buf)
	return buf
}

// UnmarshalListing deserializes a Listing from bytes.
func UnmarshalListing(data []byte) (*core.Listing, error) {
	listing, _, err := core.ListingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// MarshalEmbedding serializes an Embedding to bytes.
func MarshalEmbedding(embedding *core.Embedding) []byte {
	buf := make([]byte, core.EmbeddingMUS.Size(*embedding))
	core.EmbeddingMUS.Marshal(*embedding, buf)
	return buf
}

// UnmarshalEmbedding deserializes an Embedding from bytes.
func UnmarshalEmbedding(data []byte) (*core.Embedding, error) {
	embedding, _, err := core.EmbeddingMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &embedding, nil
}

// MarshalCluster serializes a Cluster to bytes.
func MarshalCluster(cluster *core.Cluster) []byte {
	buf := make([]byte, core.ClusterMUS.Size(*cluster))
	core.ClusterMUS.Marshal(*cluster, buf)
	return buf
}

// UnmarshalCluster deserializes a Cluster from bytes.
func UnmarshalCluster(data []byte) (*core.Cluster, error) {
	cluster, _, err := core.ClusterMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &cluster, nil
}

// MarshalClusterSummary serializes a ClusterSummary to bytes.
func MarshalClusterSummary(summary *core.ClusterSummary) []byte {
	buf := make([]byte, core.ClusterSummaryMUS.Size(*summary))
	core.ClusterSummaryMUS.Marshal(*summary, buf)
	return buf
}

// UnmarshalClusterSummary deserializes a ClusterSummary from bytes.
func UnmarshalClusterSummary(data []byte) (*core.ClusterSummary, error) {
	summary, _, err := core.ClusterSummaryMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &summary, nil
}

// MarshalUpdateReport serializes an UpdateReport to bytes.
func MarshalUpdateReport(report *core.UpdateReport) []byte {
	buf := make([]byte, core.UpdateReportMUS.Size(*report))
	core.UpdateReportMUS.Marshal(*report, buf)
	return buf
}

// UnmarshalUpdateReport deserializes an UpdateReport from bytes.
func UnmarshalUpdateReport(data []byte) (*core.UpdateReport, error) {
	report, _, err := core.UpdateReportMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &report, nil
}
