package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		require.NoError(t, DefaultConfig().Validate())
	})

	t.Run("missing TTL", func(t *testing.T) {
		cfg := Config{MaxListings: 100}
		assert.ErrorIs(t, cfg.Validate(), ErrTTLRequired)
	})

	t.Run("missing max listings", func(t *testing.T) {
		cfg := Config{TTL: 24 * time.Hour}
		assert.ErrorIs(t, cfg.Validate(), ErrMaxListingsRequired)
	})

	t.Run("negative values", func(t *testing.T) {
		cfg := Config{TTL: -time.Hour, MaxListings: 100}
		assert.ErrorIs(t, cfg.Validate(), ErrTTLRequired)

		cfg = Config{TTL: time.Hour, MaxListings: -1}
		assert.ErrorIs(t, cfg.Validate(), ErrMaxListingsRequired)
	})
}
