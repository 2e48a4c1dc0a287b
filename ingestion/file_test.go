package ingestion

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCollector(t *testing.T) {
	ctx := context.Background()

	t.Run("reads listings from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "listings.json")
		content := `[
			{
				"url": "https://example.com/jobs/1",
				"source": "careers-page",
				"title": "Robotics Engineer",
				"company": "Acme",
				"content": "Build robots.",
				"collected_at": "2025-06-01T12:00:00Z"
			},
			{
				"url": "https://example.com/jobs/2",
				"title": "ML Engineer",
				"content": "Train models."
			}
		]`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		collector := NewFileCollector(path)
		assert.Equal(t, "file:listings.json", collector.Name())

		raw, err := collector.Collect(ctx)
		require.NoError(t, err)
		require.Len(t, raw, 2)

		assert.Equal(t, "https://example.com/jobs/1", raw[0].URL)
		assert.Equal(t, "careers-page", raw[0].Source)
		assert.Equal(t, "Robotics Engineer", raw[0].Title)
		assert.Equal(t, "Acme", raw[0].Company)
		assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), raw[0].CollectedAt)

		// Missing source and timestamp get defaults.
		assert.Equal(t, "file:listings.json", raw[1].Source)
		assert.False(t, raw[1].CollectedAt.IsZero())
	})

	t.Run("missing file", func(t *testing.T) {
		collector := NewFileCollector(filepath.Join(t.TempDir(), "absent.json"))
		_, err := collector.Collect(ctx)
		assert.Error(t, err)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

		collector := NewFileCollector(path)
		_, err := collector.Collect(ctx)
		assert.Error(t, err)
	})
}
