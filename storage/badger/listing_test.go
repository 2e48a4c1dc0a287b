package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

func testListing(url, title string, createdAt time.Time) *core.Listing {
	return &core.Listing{
		URL:       url,
		Source:    "boards.example.com",
		Title:     title,
		Company:   "Acme",
		Content:   "We are hiring a " + title + ".",
		CreatedAt: createdAt,
	}
}

func TestListingBasics(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Listings.AddListings(ctx, testListing("https://jobs.example.com/1", "Backend Engineer", time.Time{}))
	if err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}
	if len(added) != 1 {
		t.Fatalf("Expected 1 listing, got %d", len(added))
	}
	if added[0].Id == 0 {
		t.Fatal("Expected non-zero ID")
	}
	if added[0].Id != core.IDFromContent("https://jobs.example.com/1") {
		t.Fatal("Expected content-derived ID")
	}

	retrieved, err := repos.Listings.GetListing(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if retrieved.Title != "Backend Engineer" {
		t.Fatalf("Expected 'Backend Engineer', got '%s'", retrieved.Title)
	}

	byURL, err := repos.Listings.GetListingByURL(ctx, "https://jobs.example.com/1")
	if err != nil {
		t.Fatalf("Failed to get listing by URL: %v", err)
	}
	if byURL.Id != added[0].Id {
		t.Fatalf("Expected ID %d, got %d", added[0].Id, byURL.Id)
	}

	_, err = repos.Listings.GetListing(ctx, core.ID(424242))
	if !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestListingURLUpsert(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	first, err := repos.Listings.AddListings(ctx, testListing("https://jobs.example.com/1", "Old Title", time.Time{}))
	if err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	second, err := repos.Listings.AddListings(ctx, testListing("https://jobs.example.com/1", "New Title", time.Time{}))
	if err != nil {
		t.Fatalf("Failed to re-add listing: %v", err)
	}

	if first[0].Id != second[0].Id {
		t.Fatal("Expected same ID for same URL")
	}
	if !second[0].CreatedAt.Equal(first[0].CreatedAt) {
		t.Fatal("Expected creation time to be preserved across upserts")
	}

	counts, err := repos.Listings.CountListings(ctx)
	if err != nil {
		t.Fatalf("Failed to count listings: %v", err)
	}
	if counts.Total != 1 {
		t.Fatalf("Expected 1 listing, got %d", counts.Total)
	}

	retrieved, err := repos.Listings.GetListing(ctx, first[0].Id)
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if retrieved.Title != "New Title" {
		t.Fatalf("Expected 'New Title', got '%s'", retrieved.Title)
	}
}

func TestListingUpdate(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()

	added, err := repos.Listings.AddListings(ctx, testListing("https://jobs.example.com/1", "Engineer", time.Time{}))
	if err != nil {
		t.Fatalf("Failed to add listing: %v", err)
	}

	dup := *added[0]
	dup.IsDuplicate = true
	dup.DuplicateOf = core.ID(99)
	if _, err := repos.Listings.UpdateListings(ctx, &dup); err != nil {
		t.Fatalf("Failed to update listing: %v", err)
	}

	retrieved, err := repos.Listings.GetListing(ctx, added[0].Id)
	if err != nil {
		t.Fatalf("Failed to get listing: %v", err)
	}
	if !retrieved.IsDuplicate || retrieved.DuplicateOf != core.ID(99) {
		t.Fatal("Expected duplicate flags to persist")
	}

	missing := testListing("https://jobs.example.com/none", "Nope", time.Time{})
	missing.Id = core.ID(123456)
	if _, err := repos.Listings.UpdateListings(ctx, missing); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound updating missing listing, got %v", err)
	}
}

func TestListActiveOrdering(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	listings := []*core.Listing{
		testListing("https://jobs.example.com/c", "Third", now),
		testListing("https://jobs.example.com/a", "First", now.Add(-2*time.Hour)),
		testListing("https://jobs.example.com/b", "Second", now.Add(-1*time.Hour)),
	}
	expired := testListing("https://jobs.example.com/x", "Expired", now.Add(-3*time.Hour))
	expired.Expired = true
	expired.ExpiredReason = "ttl"
	listings = append(listings, expired)

	if _, err := repos.Listings.AddListings(ctx, listings...); err != nil {
		t.Fatalf("Failed to add listings: %v", err)
	}

	active, err := repos.Listings.ListActive(ctx)
	if err != nil {
		t.Fatalf("Failed to list active: %v", err)
	}
	if len(active) != 3 {
		t.Fatalf("Expected 3 active listings, got %d", len(active))
	}
	for i, want := range []string{"First", "Second", "Third"} {
		if active[i].Title != want {
			t.Fatalf("Expected '%s' at %d, got '%s'", want, i, active[i].Title)
		}
	}

	oldest, err := repos.Listings.ListActiveOldestFirst(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list oldest: %v", err)
	}
	if len(oldest) != 2 || oldest[0].Title != "First" || oldest[1].Title != "Second" {
		t.Fatalf("Expected two oldest active listings, got %v", oldest)
	}

	recent, err := repos.Listings.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("Failed to list recent: %v", err)
	}
	if len(recent) != 2 || recent[0].Title != "Third" || recent[1].Title != "Second" {
		t.Fatalf("Expected two most recent listings, got %v", recent)
	}
}

func TestListCreatedBefore(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	old := testListing("https://jobs.example.com/old", "Old", now.Add(-48*time.Hour))
	duplicate := testListing("https://jobs.example.com/dup", "OldDuplicate", now.Add(-36*time.Hour))
	duplicate.IsDuplicate = true
	duplicate.DuplicateOf = core.IDFromContent("https://jobs.example.com/old")
	fresh := testListing("https://jobs.example.com/fresh", "Fresh", now)

	if _, err := repos.Listings.AddListings(ctx, old, duplicate, fresh); err != nil {
		t.Fatalf("Failed to add listings: %v", err)
	}

	before, err := repos.Listings.ListCreatedBefore(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Failed to list by cutoff: %v", err)
	}
	if len(before) != 2 {
		t.Fatalf("Expected 2 listings before cutoff, got %d", len(before))
	}
	if before[0].Title != "Old" || before[1].Title != "OldDuplicate" {
		t.Fatalf("Expected oldest-first order including duplicates, got %s then %s",
			before[0].Title, before[1].Title)
	}

	none, err := repos.Listings.ListCreatedBefore(ctx, now.Add(-72*time.Hour))
	if err != nil {
		t.Fatalf("Failed to list by cutoff: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("Expected no listings before early cutoff, got %d", len(none))
	}
}

func TestListingCounts(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	ctx := context.Background()
	now := time.Now().UTC()

	active := testListing("https://jobs.example.com/1", "Engineer", now.Add(-time.Hour))
	active.Field = "backend"
	expired := testListing("https://jobs.example.com/2", "Gone", now.Add(-2*time.Hour))
	expired.Field = "backend"
	expired.Expired = true
	expired.ExpiredReason = "ttl"
	dup := testListing("https://jobs.example.com/3", "Twin", now.Add(-3*time.Hour))
	dup.Field = "frontend"
	dup.IsDuplicate = true
	dup.DuplicateOf = core.ID(1)

	if _, err := repos.Listings.AddListings(ctx, active, expired, dup); err != nil {
		t.Fatalf("Failed to add listings: %v", err)
	}

	counts, err := repos.Listings.CountListings(ctx)
	if err != nil {
		t.Fatalf("Failed to count listings: %v", err)
	}
	if counts.Total != 3 || counts.Active != 1 || counts.Expired != 1 || counts.Duplicate != 1 {
		t.Fatalf("Unexpected counts: %+v", counts)
	}

	fields, err := repos.Listings.CountByField(ctx)
	if err != nil {
		t.Fatalf("Failed to count by field: %v", err)
	}
	if len(fields) != 1 || fields["backend"] != 1 {
		t.Fatalf("Expected only the active backend listing, got %v", fields)
	}

	oldest, newest, err := repos.Listings.CreatedAtBounds(ctx)
	if err != nil {
		t.Fatalf("Failed to get bounds: %v", err)
	}
	if !oldest.Before(newest) {
		t.Fatalf("Expected oldest %v before newest %v", oldest, newest)
	}
}

func TestCreatedAtBoundsEmpty(t *testing.T) {
	repos, err := NewMemoryRepositories()
	if err != nil {
		t.Fatalf("Failed to create repositories: %v", err)
	}
	defer repos.Close()

	oldest, newest, err := repos.Listings.CreatedAtBounds(context.Background())
	if err != nil {
		t.Fatalf("Failed to get bounds: %v", err)
	}
	if !oldest.IsZero() || !newest.IsZero() {
		t.Fatal("Expected zero bounds for empty corpus")
	}
}
