package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

func TestReportLifecycle(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	if _, err := repos.Reports.GetLatestReport(ctx); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound with no reports, got %v", err)
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		_, err := repos.Reports.AddReport(ctx, &core.UpdateReport{
			UpdateTime:     now.Add(time.Duration(i) * time.Hour),
			CollectedCount: i,
		})
		if err != nil {
			t.Fatalf("Failed to add report: %v", err)
		}
	}

	latest, err := repos.Reports.GetLatestReport(ctx)
	if err != nil {
		t.Fatalf("Failed to get latest report: %v", err)
	}
	if latest.CollectedCount != 2 {
		t.Fatalf("Expected the last report, got collected=%d", latest.CollectedCount)
	}

	reports, err := repos.Reports.ListReports(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list reports: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}
	if reports[0].CollectedCount != 2 || reports[1].CollectedCount != 1 {
		t.Fatal("Expected reports most recent first")
	}
}
