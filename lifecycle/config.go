package lifecycle

import "time"

const (
	// DefaultTTL keeps listings for thirty days before they expire.
	DefaultTTL = 30 * 24 * time.Hour

	// DefaultMaxListings caps the active corpus size.
	DefaultMaxListings = 1000
)

// Config holds the lifecycle maintainer settings. TTL and MaxListings are
// required; a zero value fails validation rather than silently defaulting.
type Config struct {
	// TTL is the maximum listing age before it is flagged expired.
	TTL time.Duration

	// MaxListings is the maximum number of active listings. The oldest
	// active listings past the cap are expired with reason
	// core.ExpireReasonSizeLimit.
	MaxListings int
}

// DefaultConfig returns a config with the default TTL and size cap.
func DefaultConfig() Config {
	return Config{
		TTL:         DefaultTTL,
		MaxListings: DefaultMaxListings,
	}
}

// Validate checks that all required settings are present.
func (c Config) Validate() error {
	if c.TTL <= 0 {
		return ErrTTLRequired
	}
	if c.MaxListings <= 0 {
		return ErrMaxListingsRequired
	}
	return nil
}
