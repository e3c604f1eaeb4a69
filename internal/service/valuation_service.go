package service

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/wealthmap/wealthmap-backend/internal/model"
	"github.com/wealthmap/wealthmap-backend/internal/valuation"
)

// exampleDocument is the demo portfolio served when the user has not
// provided a declared document of their own.
//
//go:embed data_example.json
var exampleDocument []byte

// Snapshot is one completed valuation pass: an immutable priced tree plus
// build metadata. The tree is rebuilt in full on every pass because prices
// may have changed; snapshots are never patched incrementally.
type Snapshot struct {
	ID          string           `json:"id"`
	BuiltAt     time.Time        `json:"builtAt"`
	ExampleData bool             `json:"exampleData"`
	Root        *model.GroupNode `json:"tree"`
}

// ValuationService orchestrates valuation passes: it loads the declared
// document, runs the builder, and keeps the latest good snapshot for the
// API layer to serve.
type ValuationService struct {
	builder      *valuation.Builder
	documentPath string

	mu     sync.RWMutex
	latest *Snapshot
}

// NewValuationService creates a valuation service reading the declared
// document from documentPath.
func NewValuationService(builder *valuation.Builder, documentPath string) *ValuationService {
	return &ValuationService{builder: builder, documentPath: documentPath}
}

// LoadDocument reads the declared document from disk, falling back to the
// embedded example document when none exists. The second return reports
// whether the example was used.
func (s *ValuationService) LoadDocument() (json.RawMessage, bool, error) {
	data, err := os.ReadFile(s.documentPath)
	if errors.Is(err, os.ErrNotExist) {
		return exampleDocument, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading asset document %s: %w", s.documentPath, err)
	}
	return data, false, nil
}

// Revalue runs one full valuation pass and, on success, stores the snapshot
// as the latest. A failed pass leaves the previous snapshot in place.
func (s *ValuationService) Revalue(ctx context.Context) (*Snapshot, error) {
	doc, example, err := s.LoadDocument()
	if err != nil {
		return nil, err
	}

	started := time.Now()
	root, err := s.builder.BuildPricedTree(ctx, doc)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		ID:          uuid.NewString(),
		BuiltAt:     started,
		ExampleData: example,
		Root:        root,
	}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	log.Printf("valuation pass %s complete: total %.2f BRL in %s", snap.ID, root.Value(), time.Since(started))
	return snap, nil
}

// Latest returns the most recent snapshot, running a first valuation pass if
// none exists yet.
func (s *ValuationService) Latest(ctx context.Context) (*Snapshot, error) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}
	return s.Revalue(ctx)
}
