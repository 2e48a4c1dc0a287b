package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// MetadataExtractor extracts structured job metadata from raw listing text.
// Implementations must be thread-safe for concurrent use.
type MetadataExtractor interface {
	// ExtractMetadata analyzes a job listing and extracts its title, company,
	// location, engineering field, and required skills.
	// Fields the text does not mention come back empty, never invented.
	// Returns an error if the extraction fails.
	ExtractMetadata(ctx context.Context, text string) (*ListingMetadata, error)

	// ClassifyField classifies a job listing into one of the JobFields.
	// Used as a fallback when ExtractMetadata leaves the field empty.
	// Listings that fit no field come back as "Other".
	ClassifyField(ctx context.Context, text string) (string, error)

	// ExtractSkills extracts the required skills from a job listing.
	// Used as a fallback when ExtractMetadata leaves the skills empty.
	ExtractSkills(ctx context.Context, text string) ([]string, error)
}

// ContentComparer judges how similar two job listing texts are.
// Implementations must be thread-safe for concurrent use.
type ContentComparer interface {
	// CompareContents rates the similarity of two listings on a 0 to 1 scale,
	// where 1 means identical jobs or obvious duplicates.
	// Returns an error if the comparison fails.
	CompareContents(ctx context.Context, first, second string) (float32, error)
}

// SummaryGenerator produces natural-language summaries from prompts.
// Implementations must be thread-safe for concurrent use.
type SummaryGenerator interface {
	// GenerateSummary generates a short prose summary for the given prompt.
	// Returns an error if the generation fails.
	GenerateSummary(ctx context.Context, prompt string) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages the services, ensuring they share
// configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// MetadataExtractor returns the job metadata extraction service.
	// The returned MetadataExtractor is safe for concurrent use.
	MetadataExtractor() MetadataExtractor

	// ContentComparer returns the listing comparison service.
	// The returned ContentComparer is safe for concurrent use.
	ContentComparer() ContentComparer

	// SummaryGenerator returns the summary generation service.
	// The returned SummaryGenerator is safe for concurrent use.
	SummaryGenerator() SummaryGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
