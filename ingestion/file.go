package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FileCollector reads raw listings from a JSON file holding an array of
// listing objects. Entries without a collection timestamp are stamped with
// the read time.
type FileCollector struct {
	path string
}

var _ Collector = (*FileCollector)(nil)

type fileListing struct {
	URL         string    `json:"url"`
	Source      string    `json:"source"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Content     string    `json:"content"`
	CollectedAt time.Time `json:"collected_at"`
}

// NewFileCollector creates a collector reading from the given JSON file.
func NewFileCollector(path string) *FileCollector {
	return &FileCollector{path: path}
}

func (c *FileCollector) Name() string {
	return "file:" + filepath.Base(c.path)
}

func (c *FileCollector) Collect(ctx context.Context) ([]RawListing, error) {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read listings file: %w", err)
	}

	var entries []fileListing
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse listings file %s: %w", c.path, err)
	}

	now := time.Now()
	raw := make([]RawListing, 0, len(entries))
	for _, e := range entries {
		collectedAt := e.CollectedAt
		if collectedAt.IsZero() {
			collectedAt = now
		}
		source := e.Source
		if source == "" {
			source = c.Name()
		}
		raw = append(raw, RawListing{
			URL:         e.URL,
			Source:      source,
			Title:       e.Title,
			Company:     e.Company,
			Content:     e.Content,
			CollectedAt: collectedAt,
		})
	}
	return raw, nil
}
