package badger

import (
	"context"
	"errors"
	"testing"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

func TestReplaceClusters(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	first, err := repos.Clusters.ReplaceClusters(ctx,
		&core.Cluster{Label: 0, Name: "Backend Jobs", ListingIds: []core.ID{1, 2, 3}},
		&core.Cluster{Label: 1, Name: "Frontend Jobs", ListingIds: []core.ID{4, 5}},
	)
	if err != nil {
		t.Fatalf("Failed to replace clusters: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("Expected 2 clusters, got %d", len(first))
	}
	if first[0].Id == 0 || first[0].Size != 3 {
		t.Fatalf("Expected assigned ID and size 3, got %+v", first[0])
	}

	if _, err := repos.Clusters.UpsertSummary(ctx, &core.ClusterSummary{
		ClusterId: first[0].Id,
		Name:      first[0].Name,
		Summary:   "Server side roles.",
	}); err != nil {
		t.Fatalf("Failed to upsert summary: %v", err)
	}

	// A second replacement drops the old clusters and their summaries.
	second, err := repos.Clusters.ReplaceClusters(ctx,
		&core.Cluster{Label: 0, Name: "Data Jobs", ListingIds: []core.ID{6}},
	)
	if err != nil {
		t.Fatalf("Failed to replace clusters again: %v", err)
	}
	if len(second) != 1 {
		t.Fatalf("Expected 1 cluster, got %d", len(second))
	}

	count, err := repos.Clusters.CountClusters(ctx)
	if err != nil {
		t.Fatalf("Failed to count clusters: %v", err)
	}
	if count != 1 {
		t.Fatalf("Expected 1 cluster after replacement, got %d", count)
	}

	if _, err := repos.Clusters.GetCluster(ctx, first[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected old cluster to be gone, got %v", err)
	}
	if _, err := repos.Clusters.GetSummary(ctx, first[0].Id); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected old summary to be gone, got %v", err)
	}

	summaries, err := repos.Clusters.ListSummaries(ctx)
	if err != nil {
		t.Fatalf("Failed to list summaries: %v", err)
	}
	if len(summaries) != 0 {
		t.Fatalf("Expected no summaries after replacement, got %d", len(summaries))
	}
}

func TestSummaryUpsert(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	clusters, err := repos.Clusters.ReplaceClusters(ctx,
		&core.Cluster{Label: 0, Name: "Backend Jobs", ListingIds: []core.ID{1, 2}},
	)
	if err != nil {
		t.Fatalf("Failed to replace clusters: %v", err)
	}
	id := clusters[0].Id

	first, err := repos.Clusters.UpsertSummary(ctx, &core.ClusterSummary{
		ClusterId: id,
		Summary:   "Draft.",
	})
	if err != nil {
		t.Fatalf("Failed to upsert summary: %v", err)
	}

	second, err := repos.Clusters.UpsertSummary(ctx, &core.ClusterSummary{
		ClusterId: id,
		Summary:   "Final.",
	})
	if err != nil {
		t.Fatalf("Failed to upsert summary again: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatal("Expected creation time to survive the upsert")
	}

	retrieved, err := repos.Clusters.GetSummary(ctx, id)
	if err != nil {
		t.Fatalf("Failed to get summary: %v", err)
	}
	if retrieved.Summary != "Final." {
		t.Fatalf("Expected 'Final.', got '%s'", retrieved.Summary)
	}

	if _, err := repos.Clusters.UpsertSummary(ctx, &core.ClusterSummary{}); err == nil {
		t.Fatal("Expected error for summary without a cluster reference")
	}
}

func TestListClustersOrdered(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	clusters := make([]*core.Cluster, 0, 12)
	for i := 0; i < 12; i++ {
		clusters = append(clusters, &core.Cluster{Label: i, ListingIds: []core.ID{core.ID(i + 1)}})
	}
	stored, err := repos.Clusters.ReplaceClusters(ctx, clusters...)
	if err != nil {
		t.Fatalf("Failed to replace clusters: %v", err)
	}
	if len(stored) != 12 {
		t.Fatalf("Expected 12 clusters, got %d", len(stored))
	}

	listed, err := repos.Clusters.ListClusters(ctx)
	if err != nil {
		t.Fatalf("Failed to list clusters: %v", err)
	}
	if len(listed) != 12 {
		t.Fatalf("Expected 12 clusters, got %d", len(listed))
	}
	for i := 1; i < len(listed); i++ {
		if listed[i-1].Id >= listed[i].Id {
			t.Fatal("Expected clusters ordered by ID")
		}
	}
}
