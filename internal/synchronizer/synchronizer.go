// Package synchronizer moves a page composition to and from block storage.
//
// In memory a block's order is its position. The backend stores order as a
// column, so every write tags the block with its current index and every load
// sorts by the stored value before building the composition.
package synchronizer

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"cms-admin/internal/catalog"
	"cms-admin/internal/cmsapi"
	"cms-admin/internal/composer"
	"cms-admin/internal/domain"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const defaultConcurrency = 8

// Backend is the block storage the synchronizer writes to.
type Backend interface {
	CreateBlock(ctx context.Context, req cmsapi.CreateBlockRequest) (*domain.Block, error)
	ListBlocks(ctx context.Context, pageID uint64) ([]domain.Block, error)
	UpdateBlock(ctx context.Context, id uint64, req cmsapi.UpdateBlockRequest) error
	UpdateBlockOrder(ctx context.Context, id uint64, order int) error
	DeleteBlock(ctx context.Context, id uint64) error
}

// Catalog resolves display names and the current field schema on load.
type Catalog interface {
	Lookup(typ string) (catalog.Entry, bool)
}

type Synchronizer struct {
	backend     Backend
	catalog     Catalog
	concurrency int

	mu    sync.Mutex
	pages map[uint64]*pageOrder
}

// pageOrder serializes order writes for one page. issued counts snapshots
// handed out, written is the newest snapshot that reached the backend.
type pageOrder struct {
	mu      sync.Mutex
	issued  uint64
	written uint64
}

type Option func(*Synchronizer)

func WithCatalog(c Catalog) Option {
	return func(s *Synchronizer) {
		s.catalog = c
	}
}

// WithConcurrency bounds how many block writes of one batch run at once.
func WithConcurrency(n int) Option {
	return func(s *Synchronizer) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

func New(backend Backend, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		backend:     backend,
		concurrency: defaultConcurrency,
		pages:       make(map[uint64]*pageOrder),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load fetches a page's blocks and builds its composition in stored order.
// A block whose data payload cannot be decoded is loaded with no fields,
// without schema reconciliation.
func (s *Synchronizer) Load(ctx context.Context, pageID uint64) (*composer.Composition, error) {
	blocks, err := s.backend.ListBlocks(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("load blocks of page %d: %w", pageID, err)
	}

	slices.SortStableFunc(blocks, func(a, b domain.Block) int {
		return cmp.Or(cmp.Compare(a.BlockOrder, b.BlockOrder), cmp.Compare(a.ID, b.ID))
	})

	stored := make([]composer.Stored, 0, len(blocks))
	for _, b := range blocks {
		fields, err := domain.DecodeFields(b.Data)
		if err != nil {
			log.Warn().Err(err).Uint64("page_id", pageID).Uint64("block_id", b.ID).Msg("malformed block data, loading with empty fields")
		}
		stored = append(stored, s.resolve(b, fields, err == nil))
	}
	return composer.FromStored(stored), nil
}

// resolve fills the display name from the catalog and, when reconcile is
// set, adds schema keys the stored block does not have yet. Keys dropped from
// the schema are kept.
func (s *Synchronizer) resolve(b domain.Block, fields map[string]string, reconcile bool) composer.Stored {
	st := composer.Stored{
		BackendID: b.ID,
		Type:      b.ComponentType,
		Name:      b.ComponentType,
		Fields:    fields,
	}
	if s.catalog == nil {
		return st
	}
	entry, ok := s.catalog.Lookup(b.ComponentType)
	if !ok {
		return st
	}
	st.Name = entry.Name
	if !reconcile {
		return st
	}
	for _, key := range entry.Fields {
		if _, exists := fields[key]; !exists {
			fields[key] = ""
		}
	}
	return st
}

// SaveAll creates the blocks of a page that was just created. Blocks that
// already have a backend id are left alone.
func (s *Synchronizer) SaveAll(ctx context.Context, pageID uint64, comp *composer.Composition) error {
	var pending []composer.Block
	for _, b := range comp.Blocks() {
		if !b.Persisted {
			pending = append(pending, b)
		}
	}

	outcomes := s.each(ctx, pending, func(ctx context.Context, b composer.Block) (uint64, error) {
		return s.create(ctx, pageID, b)
	})
	return s.settle("create", pageID, comp, pending, outcomes)
}

// UpdateAll writes every block of an existing page: persisted blocks are
// updated, the rest are created.
func (s *Synchronizer) UpdateAll(ctx context.Context, pageID uint64, comp *composer.Composition) error {
	blocks := comp.Blocks()

	outcomes := s.each(ctx, blocks, func(ctx context.Context, b composer.Block) (uint64, error) {
		if !b.Persisted {
			return s.create(ctx, pageID, b)
		}
		data, err := domain.EncodeFields(b.Fields)
		if err != nil {
			return 0, err
		}
		return b.BackendID, s.backend.UpdateBlock(ctx, b.BackendID, cmsapi.UpdateBlockRequest{
			ComponentType: b.Type,
			BlockOrder:    b.Order,
			Data:          data,
		})
	})
	return s.settle("update", pageID, comp, blocks, outcomes)
}

func (s *Synchronizer) create(ctx context.Context, pageID uint64, b composer.Block) (uint64, error) {
	data, err := domain.EncodeFields(b.Fields)
	if err != nil {
		return 0, err
	}
	created, err := s.backend.CreateBlock(ctx, cmsapi.CreateBlockRequest{
		PageID:        pageID,
		ComponentType: b.Type,
		BlockOrder:    b.Order,
		Data:          data,
	})
	if err != nil {
		return 0, err
	}
	return created.ID, nil
}

// settle marks created blocks as persisted and reports failed writes.
// It runs on the caller's goroutine, after every write has returned.
func (s *Synchronizer) settle(op string, pageID uint64, comp *composer.Composition, blocks []composer.Block, outcomes []outcome) error {
	saveErr := &SaveError{Op: op, PageID: pageID, Total: len(blocks)}
	for i, b := range blocks {
		o := outcomes[i]
		if o.err != nil {
			saveErr.Failures = append(saveErr.Failures, BlockFailure{BlockID: b.ID, Order: b.Order, Err: o.err})
			continue
		}
		if !b.Persisted {
			comp.MarkPersisted(b.ID, o.backendID)
		}
	}
	if len(saveErr.Failures) == 0 {
		return nil
	}
	log.Error().Err(saveErr).Uint64("page_id", pageID).Int("failed", len(saveErr.Failures)).Int("total", saveErr.Total).Msg("block save incomplete")
	return saveErr
}

// OrderSnapshot is the order of a page's persisted blocks at one moment.
type OrderSnapshot struct {
	PageID     uint64
	Blocks     []composer.Block
	generation uint64
}

// SnapshotOrder captures the current order for a later WriteOrder call.
// It must be called from the goroutine that owns the composition.
func (s *Synchronizer) SnapshotOrder(pageID uint64, comp *composer.Composition) OrderSnapshot {
	po := s.page(pageID)
	po.mu.Lock()
	po.issued++
	gen := po.issued
	po.mu.Unlock()

	var blocks []composer.Block
	for _, b := range comp.Blocks() {
		if b.Persisted {
			blocks = append(blocks, b)
		}
	}
	return OrderSnapshot{PageID: pageID, Blocks: blocks, generation: gen}
}

// WriteOrder sends one set-order call per block in the snapshot. Writes for
// the same page never overlap, and a snapshot older than one already written
// is dropped.
func (s *Synchronizer) WriteOrder(ctx context.Context, snap OrderSnapshot) error {
	po := s.page(snap.PageID)
	po.mu.Lock()
	defer po.mu.Unlock()

	if snap.generation <= po.written {
		log.Debug().Uint64("page_id", snap.PageID).Uint64("generation", snap.generation).Msg("skipping superseded order write")
		return nil
	}

	outcomes := s.each(ctx, snap.Blocks, func(ctx context.Context, b composer.Block) (uint64, error) {
		return b.BackendID, s.backend.UpdateBlockOrder(ctx, b.BackendID, b.Order)
	})

	saveErr := &SaveError{Op: "reorder", PageID: snap.PageID, Total: len(snap.Blocks)}
	for i, o := range outcomes {
		if o.err != nil {
			b := snap.Blocks[i]
			saveErr.Failures = append(saveErr.Failures, BlockFailure{BlockID: b.ID, Order: b.Order, Err: o.err})
		}
	}
	if len(saveErr.Failures) > 0 {
		return saveErr
	}
	po.written = snap.generation
	return nil
}

// PersistReorderOnly makes the current order durable without touching field data.
func (s *Synchronizer) PersistReorderOnly(ctx context.Context, pageID uint64, comp *composer.Composition) error {
	return s.WriteOrder(ctx, s.SnapshotOrder(pageID, comp))
}

// Delete removes a persisted block from storage. Transient blocks were never
// stored, so nothing is sent for them.
func (s *Synchronizer) Delete(ctx context.Context, b composer.Block) error {
	if !b.Persisted {
		return nil
	}
	if err := s.backend.DeleteBlock(ctx, b.BackendID); err != nil {
		return fmt.Errorf("delete block %d: %w", b.BackendID, err)
	}
	return nil
}

func (s *Synchronizer) page(pageID uint64) *pageOrder {
	s.mu.Lock()
	defer s.mu.Unlock()
	po, ok := s.pages[pageID]
	if !ok {
		po = &pageOrder{}
		s.pages[pageID] = po
	}
	return po
}

type outcome struct {
	backendID uint64
	err       error
}

// each runs fn for every block, at most s.concurrency at a time, and waits
// for all of them. One failure does not stop the others.
func (s *Synchronizer) each(ctx context.Context, blocks []composer.Block, fn func(context.Context, composer.Block) (uint64, error)) []outcome {
	out := make([]outcome, len(blocks))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, b := range blocks {
		g.Go(func() error {
			id, err := fn(ctx, b)
			out[i] = outcome{backendID: id, err: err}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
