package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/joblens/joblens/ai"
	"github.com/joblens/joblens/core"
	"github.com/joblens/joblens/storage"
)

// DefaultBatchSize bounds one ProcessAll batch.
const DefaultBatchSize = 100

// Result counts the outcome of one ingestion pass.
type Result struct {
	Collected int // raw listings delivered by collectors
	Processed int // raw listings attempted
	Succeeded int // listings stored with metadata and embedding
	Skipped   int // listings whose URL was already processed
	Failed    int // listings that could not be processed
}

// Processor turns raw listings into processed, embedded listing records.
// Raw listings in a batch are processed concurrently on a worker pool.
type Processor struct {
	listings   storage.ListingRepository
	embeddings storage.EmbeddingRepository
	embedder   ai.Embedder
	extractor  ai.MetadataExtractor
	pool       *ants.Pool
	logger     *slog.Logger
}

// Option configures a Processor.
type Option func(*Processor) error

// WithPoolSize sets the worker pool size for concurrent processing.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Processor) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewProcessor creates a new listing processor.
func NewProcessor(
	listings storage.ListingRepository,
	embeddings storage.EmbeddingRepository,
	provider ai.Provider,
	opts ...Option,
) (*Processor, error) {
	if listings == nil {
		return nil, ErrListingRepositoryRequired
	}
	if embeddings == nil {
		return nil, ErrEmbeddingRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Processor{
		listings:   listings,
		embeddings: embeddings,
		embedder:   provider.Embedder(),
		extractor:  provider.MetadataExtractor(),
		pool:       pool,
		logger:     slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	return p, nil
}

// Process processes a batch of raw listings concurrently. A failing listing
// is logged and counted, never fatal to the batch.
func (p *Processor) Process(ctx context.Context, raw ...RawListing) (Result, error) {
	var result Result
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, listing := range raw {
		listing := listing
		wg.Add(1)
		err := p.pool.Submit(func() {
			defer wg.Done()
			outcome := p.processOne(ctx, listing)

			mu.Lock()
			defer mu.Unlock()
			result.Processed++
			switch outcome {
			case outcomeStored:
				result.Succeeded++
			case outcomeSkipped:
				result.Skipped++
			default:
				result.Failed++
			}
		})
		if err != nil {
			wg.Done()
			return result, err
		}
	}

	wg.Wait()
	p.logger.Info("batch processing complete",
		"processed", result.Processed,
		"succeeded", result.Succeeded,
		"skipped", result.Skipped,
		"failed", result.Failed)
	return result, nil
}

// ProcessAll processes raw listings in batches of batchSize until the input
// is drained, aggregating per-batch results. A non-positive batchSize
// defaults to DefaultBatchSize.
func (p *Processor) ProcessAll(ctx context.Context, batchSize int, raw ...RawListing) (Result, error) {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var total Result
	for start := 0; start < len(raw); start += batchSize {
		end := start + batchSize
		if end > len(raw) {
			end = len(raw)
		}
		result, err := p.Process(ctx, raw[start:end]...)
		total.Processed += result.Processed
		total.Succeeded += result.Succeeded
		total.Skipped += result.Skipped
		total.Failed += result.Failed
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// CollectAndProcess runs every collector and processes whatever they deliver.
// A failing collector is logged and skipped; its listings are simply absent.
func (p *Processor) CollectAndProcess(ctx context.Context, collectors ...Collector) (Result, error) {
	var raw []RawListing
	for _, collector := range collectors {
		batch, err := collector.Collect(ctx)
		if err != nil {
			p.logger.Error("collector failed", "collector", collector.Name(), "err", err)
			continue
		}
		p.logger.Info("collected listings", "collector", collector.Name(), "count", len(batch))
		raw = append(raw, batch...)
	}

	result, err := p.Process(ctx, raw...)
	result.Collected = len(raw)
	return result, err
}

type outcome int

const (
	outcomeFailed outcome = iota
	outcomeStored
	outcomeSkipped
)

// processOne stores a single raw listing with extracted metadata and an
// embedding. Already-processed URLs short-circuit.
func (p *Processor) processOne(ctx context.Context, raw RawListing) outcome {
	if raw.URL == "" {
		p.logger.Warn("raw listing has no URL, cannot process", "source", raw.Source)
		return outcomeFailed
	}

	if _, err := p.listings.GetListingByURL(ctx, raw.URL); err == nil {
		p.logger.Debug("listing already processed", "url", raw.URL)
		return outcomeSkipped
	} else if !errors.Is(err, storage.ErrNotFound) {
		p.logger.Error("error checking for existing listing", "url", raw.URL, "err", err)
		return outcomeFailed
	}

	if raw.Content == "" {
		p.logger.Warn("raw listing has no content, cannot process", "url", raw.URL)
		return outcomeFailed
	}

	meta, err := p.extractor.ExtractMetadata(ctx, raw.Content)
	if err != nil {
		p.logger.Error("error extracting metadata", "url", raw.URL, "err", err)
		return outcomeFailed
	}

	// Fill gaps from the raw listing, then fall back to dedicated calls.
	if meta.Title == "" {
		meta.Title = raw.Title
	}
	if meta.Company == "" {
		meta.Company = raw.Company
	}
	if meta.Field == "" {
		field, err := p.extractor.ClassifyField(ctx, raw.Content)
		if err != nil {
			p.logger.Warn("error classifying field", "url", raw.URL, "err", err)
		} else {
			meta.Field = field
		}
	}
	if len(meta.Skills) == 0 {
		skills, err := p.extractor.ExtractSkills(ctx, raw.Content)
		if err != nil {
			p.logger.Warn("error extracting skills", "url", raw.URL, "err", err)
		} else {
			meta.Skills = skills
		}
	}

	collectedAt := raw.CollectedAt
	if collectedAt.IsZero() {
		collectedAt = time.Now()
	}

	listing := &core.Listing{
		URL:         raw.URL,
		Source:      raw.Source,
		Title:       meta.Title,
		Company:     meta.Company,
		Location:    meta.Location,
		Field:       meta.Field,
		Skills:      meta.Skills,
		Content:     raw.Content,
		CollectedAt: collectedAt,
	}

	added, err := p.listings.AddListings(ctx, listing)
	if err != nil {
		p.logger.Error("error storing listing", "url", raw.URL, "err", err)
		return outcomeFailed
	}
	stored := added[0]

	// An embedding failure leaves the listing stored without a vector; the
	// duplicate resolver handles that with its content fallback.
	vector, err := p.embedder.EmbedText(ctx, raw.Content)
	if err != nil {
		p.logger.Error("error generating embedding", "url", raw.URL, "err", err)
		return outcomeStored
	}

	embeddings, err := p.embeddings.AddEmbeddings(ctx, &core.Embedding{
		ListingId: stored.Id,
		Vector:    vector,
	})
	if err != nil {
		p.logger.Error("error storing embedding", "url", raw.URL, "err", err)
		return outcomeStored
	}

	stored.EmbeddingId = embeddings[0].Id
	if _, err := p.listings.UpdateListings(ctx, stored); err != nil {
		p.logger.Error("error linking embedding to listing", "url", raw.URL, "err", err)
	}

	p.logger.Info("successfully processed job listing", "url", raw.URL)
	return outcomeStored
}

// Release releases the worker pool.
// The processor should not be used after calling Release.
func (p *Processor) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}
