package search

import "github.com/joblens/joblens/core"

// SearchMonitor provides hooks to observe the search process.
// Implement this interface to track intermediate steps and results during search.
type SearchMonitor interface {
	Start(query string)
	AfterQueryEmbedding(dimensions int)
	AfterRanking(ids []uint64)
	ListingSkipped(id uint64, reason string)
	Finish(results []*core.SearchResult)
}

// noopMonitor is a no-op implementation of SearchMonitor
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string)                    {}
func (n *noopMonitor) AfterQueryEmbedding(_ int)         {}
func (n *noopMonitor) AfterRanking(_ []uint64)           {}
func (n *noopMonitor) ListingSkipped(_ uint64, _ string) {}
func (n *noopMonitor) Finish(_ []*core.SearchResult)     {}
