// Package editor runs one page editing session: the page form, its block
// composition and the calls that persist them.
package editor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cms-admin/internal/catalog"
	"cms-admin/internal/cmsapi"
	"cms-admin/internal/composer"
	"cms-admin/internal/domain"
	"cms-admin/internal/synchronizer"
	"cms-admin/internal/worker"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var ErrInvalidForm = errors.New("editor: invalid page form")

type PageBackend interface {
	CreatePage(ctx context.Context, req cmsapi.PageRequest) (*domain.Page, error)
	GetPage(ctx context.Context, id uint64) (*domain.Page, error)
	UpdatePage(ctx context.Context, id uint64, req cmsapi.PageRequest) (*domain.Page, error)
}

type Catalog interface {
	Lookup(typ string) (catalog.Entry, bool)
}

// Notifier shows transient messages to the user. It may be called from
// background goroutines.
type Notifier interface {
	Success(msg string)
	Error(msg string, err error)
}

type PageForm struct {
	Title  string `validate:"required,max=255"`
	Slug   string `validate:"required,max=255"`
	Status string `validate:"required,oneof=draft published"`
}

type Deps struct {
	Pages        PageBackend
	Synchronizer *synchronizer.Synchronizer
	Catalog      Catalog
	Notifier     Notifier
	// Workers is the number of background order writers. Zero writes the
	// order before Reorder returns.
	Workers int
}

// Session is driven by one user. Its methods must not be called concurrently.
type Session struct {
	pages    PageBackend
	sync     *synchronizer.Synchronizer
	catalog  Catalog
	notifier Notifier
	validate *validator.Validate
	pool     *worker.WorkerPool

	pageID uint64
	form   PageForm
	comp   *composer.Composition

	// outcome of the newest background order write
	orderMu   sync.Mutex
	orderSeq  uint64
	orderSeen uint64
	orderErr  error
}

// NewSession starts a session for a page that does not exist yet.
func NewSession(deps Deps) *Session {
	s := &Session{
		pages:    deps.Pages,
		sync:     deps.Synchronizer,
		catalog:  deps.Catalog,
		notifier: deps.Notifier,
		validate: validator.New(),
		form:     PageForm{Status: domain.PageStatusDraft},
		comp:     composer.New(),
	}
	if deps.Workers > 0 {
		s.pool = worker.NewWorkerPool(context.Background(), deps.Workers, 64)
	}
	return s
}

// Open starts a session on an existing page.
func Open(ctx context.Context, deps Deps, pageID uint64) (*Session, error) {
	var (
		page *domain.Page
		comp *composer.Composition
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = deps.Pages.GetPage(gctx, pageID)
		return err
	})
	g.Go(func() error {
		var err error
		comp, err = deps.Synchronizer.Load(gctx, pageID)
		return err
	})
	if err := g.Wait(); err != nil {
		deps.Notifier.Error("Failed to load page data", err)
		return nil, fmt.Errorf("open page %d: %w", pageID, err)
	}

	s := NewSession(deps)
	s.pageID = page.ID
	s.form = PageForm{Title: page.Title, Slug: page.Slug, Status: page.Status}
	s.comp = comp
	return s, nil
}

// PageID is zero until the page has been created.
func (s *Session) PageID() uint64 {
	return s.pageID
}

func (s *Session) Form() PageForm {
	return s.form
}

func (s *Session) SetForm(f PageForm) {
	s.form = f
}

func (s *Session) Blocks() []composer.Block {
	return s.comp.Blocks()
}

// AddComponent appends a block of the given catalog type. Unknown types
// are ignored.
func (s *Session) AddComponent(typ string) (composer.Block, bool) {
	entry, ok := s.catalog.Lookup(typ)
	if !ok {
		return composer.Block{}, false
	}
	return s.comp.Append(entry.Template()), true
}

func (s *Session) SetField(blockID, key, value string) bool {
	return s.comp.SetField(blockID, key, value)
}

// RemoveBlock deletes a block the user confirmed. A stored block is deleted
// on the backend first and stays in the page if that fails.
func (s *Session) RemoveBlock(ctx context.Context, blockID string) error {
	b, ok := s.comp.Get(blockID)
	if !ok {
		return nil
	}
	if err := s.sync.Delete(ctx, b); err != nil {
		s.notifier.Error("Failed to delete block", err)
		return err
	}
	s.comp.Remove(blockID)
	return nil
}

// Reorder moves a block and, for a stored page, makes the new order durable.
// The in-memory order is kept even if the write fails.
func (s *Session) Reorder(ctx context.Context, from, to int) error {
	if err := s.comp.Reorder(from, to); err != nil {
		return err
	}
	if s.pageID == 0 || from == to {
		return nil
	}

	snap := s.sync.SnapshotOrder(s.pageID, s.comp)
	if s.pool == nil {
		return s.writeOrder(ctx, snap)
	}
	s.orderSeq++
	seq := s.orderSeq
	err := s.pool.Submit(func(ctx context.Context) error {
		err := s.writeOrder(ctx, snap)
		s.recordOrder(seq, err)
		return err
	})
	if err != nil {
		s.notifier.Error("Failed to update block order", err)
		return err
	}
	return nil
}

// recordOrder keeps the result of the newest background write. Results of
// older writes that finish late are ignored.
func (s *Session) recordOrder(seq uint64, err error) {
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	if seq < s.orderSeen {
		return
	}
	s.orderSeen = seq
	s.orderErr = err
}

// PersistOrder writes the current order now. It is the retry path after a
// failed background write.
func (s *Session) PersistOrder(ctx context.Context) error {
	if s.pageID == 0 {
		return nil
	}
	if err := s.writeOrder(ctx, s.sync.SnapshotOrder(s.pageID, s.comp)); err != nil {
		return err
	}
	s.orderSeq++
	s.recordOrder(s.orderSeq, nil)
	return nil
}

func (s *Session) writeOrder(ctx context.Context, snap synchronizer.OrderSnapshot) error {
	if err := s.sync.WriteOrder(ctx, snap); err != nil {
		s.notifier.Error("Failed to update block order", err)
		return err
	}
	return nil
}

// Save validates the form, writes the page record and then its blocks.
func (s *Session) Save(ctx context.Context) error {
	if err := s.validate.Struct(s.form); err != nil {
		s.notifier.Error("Please fill in the required page fields", err)
		return fmt.Errorf("%w: %w", ErrInvalidForm, err)
	}

	req := cmsapi.PageRequest{Title: s.form.Title, Slug: s.form.Slug, Status: s.form.Status}
	creating := s.pageID == 0

	if creating {
		page, err := s.pages.CreatePage(ctx, req)
		if err != nil {
			s.notifier.Error("Failed to create page", err)
			return err
		}
		s.pageID = page.ID
		log.Info().Uint64("page_id", page.ID).Str("slug", page.Slug).Msg("page created")
	} else {
		if _, err := s.pages.UpdatePage(ctx, s.pageID, req); err != nil {
			s.notifier.Error("Failed to update page", err)
			return err
		}
	}

	var err error
	if creating {
		err = s.sync.SaveAll(ctx, s.pageID, s.comp)
	} else {
		err = s.sync.UpdateAll(ctx, s.pageID, s.comp)
	}
	if err != nil {
		var saveErr *synchronizer.SaveError
		if errors.As(err, &saveErr) {
			s.notifier.Error(fmt.Sprintf("Page saved, but %d of %d blocks failed to save", len(saveErr.Failures), saveErr.Total), err)
		} else {
			s.notifier.Error("Failed to save blocks", err)
		}
		return err
	}

	if creating {
		s.notifier.Success("Page created successfully")
	} else {
		s.notifier.Success("Page updated successfully")
	}
	return nil
}

// Close waits for background order writes to finish. It returns the error
// of the newest one, so the caller knows the stored order is behind.
func (s *Session) Close() error {
	if s.pool != nil {
		s.pool.Shutdown()
	}
	s.orderMu.Lock()
	defer s.orderMu.Unlock()
	return s.orderErr
}
