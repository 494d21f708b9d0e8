package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"asre_hazir/internal/domain"
)

const draftFlushTimeout = 5 * time.Second

// DraftService persists in-progress compose-form state per author.
// Edits are debounced: every Touch resets the author's timer, and only
// after the debounce window of inactivity is a single idempotent save
// performed. Clear cancels the timer and erases the stored draft.
type DraftService struct {
	store    DraftStore
	debounce time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[string]*pendingDraft
}

type pendingDraft struct {
	draft domain.Draft
	timer *time.Timer
}

func NewDraftService(store DraftStore, debounce time.Duration, logger *slog.Logger) *DraftService {
	return &DraftService{
		store:    store,
		debounce: debounce,
		logger:   logger,
		pending:  make(map[string]*pendingDraft),
	}
}

// Touch records the latest form state for the author and restarts the
// debounce timer. Nothing hits the store until the timer expires.
func (s *DraftService) Touch(authorID string, draft domain.Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.pending[authorID]; ok {
		p.draft = draft
		p.timer.Reset(s.debounce)
		return
	}

	p := &pendingDraft{draft: draft}
	p.timer = time.AfterFunc(s.debounce, func() { s.flush(authorID) })
	s.pending[authorID] = p
}

// Get returns the author's draft: the not-yet-flushed pending state if
// one exists, otherwise the stored one. ErrNotFound when neither does.
func (s *DraftService) Get(ctx context.Context, authorID string) (*domain.Draft, error) {
	s.mu.Lock()
	p, ok := s.pending[authorID]
	if ok {
		draft := p.draft
		s.mu.Unlock()
		return &draft, nil
	}
	s.mu.Unlock()

	return s.store.Get(ctx, authorID)
}

// Clear cancels any pending autosave and erases the stored draft. It
// is idempotent: clearing an absent draft succeeds.
func (s *DraftService) Clear(ctx context.Context, authorID string) error {
	s.mu.Lock()
	if p, ok := s.pending[authorID]; ok {
		p.timer.Stop()
		delete(s.pending, authorID)
	}
	s.mu.Unlock()

	if err := s.store.Delete(ctx, authorID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return nil
}

// FlushAll writes every pending draft immediately. Called on shutdown
// so debounced edits are not lost.
func (s *DraftService) FlushAll() {
	s.mu.Lock()
	ids := make([]string, 0, len(s.pending))
	for id, p := range s.pending {
		p.timer.Stop()
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.flush(id)
	}
}

func (s *DraftService) flush(authorID string) {
	s.mu.Lock()
	p, ok := s.pending[authorID]
	if ok {
		delete(s.pending, authorID)
	}
	s.mu.Unlock()
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), draftFlushTimeout)
	defer cancel()

	if err := s.store.Upsert(ctx, authorID, &p.draft); err != nil {
		s.logger.Error("draft autosave failed", "author_id", authorID, "error", err)
		return
	}

	s.logger.Debug("draft autosaved", "author_id", authorID)
}
