package core

import (
	"errors"
	"testing"
	"time"
)

func validListing() *Listing {
	return &Listing{
		Id:        IDFromContent("https://example.com/jobs/1"),
		URL:       "https://example.com/jobs/1",
		Title:     "Robotics Engineer",
		Company:   "Acme Robotics",
		Field:     "Robotics",
		Content:   "Design and build autonomous systems.",
		CreatedAt: time.Now().Add(-time.Hour),
	}
}

func TestValidateListing(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Listing)
		wantErr error
	}{
		{
			name:    "valid listing",
			mutate:  func(l *Listing) {},
			wantErr: nil,
		},
		{
			name:    "empty URL",
			mutate:  func(l *Listing) { l.URL = "" },
			wantErr: ErrEmptyURL,
		},
		{
			name:    "empty content",
			mutate:  func(l *Listing) { l.Content = "" },
			wantErr: ErrEmptyContent,
		},
		{
			name:    "future timestamp",
			mutate:  func(l *Listing) { l.CreatedAt = time.Now().Add(time.Hour) },
			wantErr: ErrInvalidTimestamp,
		},
		{
			name:    "duplicate without survivor reference",
			mutate:  func(l *Listing) { l.IsDuplicate = true },
			wantErr: ErrMissingDuplicateRef,
		},
		{
			name: "duplicate with survivor reference",
			mutate: func(l *Listing) {
				l.IsDuplicate = true
				l.DuplicateOf = IDFromContent("https://example.com/jobs/2")
			},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			listing := validListing()
			tt.mutate(listing)

			err := ValidateListing(listing)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateListing() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateListing() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidListing) {
				t.Errorf("ValidateListing() error = %v, want wrapped %v", err, ErrInvalidListing)
			}
		})
	}
}

func TestValidateListing_Nil(t *testing.T) {
	if err := ValidateListing(nil); !errors.Is(err, ErrInvalidListing) {
		t.Errorf("ValidateListing(nil) error = %v, want %v", err, ErrInvalidListing)
	}
}

func TestValidateEmbedding(t *testing.T) {
	t.Run("valid embedding", func(t *testing.T) {
		emb := &Embedding{Vector: []float32{0.1, 0.2, 0.3}}
		if err := ValidateEmbedding(emb); err != nil {
			t.Errorf("ValidateEmbedding() unexpected error: %v", err)
		}
	})

	t.Run("empty vector", func(t *testing.T) {
		emb := &Embedding{ListingId: 1}
		err := ValidateEmbedding(emb)
		if !errors.Is(err, ErrEmptyVector) {
			t.Errorf("ValidateEmbedding() error = %v, want %v", err, ErrEmptyVector)
		}
	})

	t.Run("nil embedding", func(t *testing.T) {
		if err := ValidateEmbedding(nil); !errors.Is(err, ErrInvalidEmbedding) {
			t.Errorf("ValidateEmbedding(nil) error = %v, want %v", err, ErrInvalidEmbedding)
		}
	})
}
