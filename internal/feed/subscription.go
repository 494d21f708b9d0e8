package feed

import (
	"context"
	"log/slog"
	"sync"

	"asre_hazir/internal/domain"
)

// Store is the read side of the news collection a feed subscribes to.
type Store interface {
	ListFeed(ctx context.Context, q Query) ([]domain.Article, error)
}

// Snapshot is one complete emission of a subscription's current result
// set. Err is set instead of Articles when the query failed; an error
// snapshot is the last thing a subscription emits.
type Snapshot struct {
	Articles []domain.Article
	Err      error
}

// Hub owns the live feed subscriptions. Every article change event
// invalidates all of them, causing each to re-run its query and emit a
// fresh full snapshot. Ordering holds per subscription only; two
// independent feeds may refresh in either order.
type Hub struct {
	store  Store
	logger *slog.Logger

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func NewHub(store Store, logger *slog.Logger) *Hub {
	return &Hub{
		store:  store,
		logger: logger,
		subs:   make(map[*Subscription]struct{}),
	}
}

// Subscribe opens a live subscription for q. The first snapshot is
// delivered without waiting for an invalidation. The subscription ends
// when Close is called, ctx is cancelled, or its query fails.
func (h *Hub) Subscribe(ctx context.Context, q Query) *Subscription {
	sub := &Subscription{
		hub:   h,
		query: q,
		out:   make(chan Snapshot, 1),
		kick:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	sub.kick <- struct{}{}
	go sub.run(ctx)

	return sub
}

// Invalidate schedules a refresh of every live subscription. A
// subscription that is already scheduled is not queued twice; it will
// re-run its query once and emit the then-current result set.
func (h *Hub) Invalidate(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs {
		select {
		case sub.kick <- struct{}{}:
		default:
		}
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) remove(sub *Subscription) {
	h.mu.Lock()
	delete(h.subs, sub)
	h.mu.Unlock()
}

// Subscription is one consumer's live view of a feed query. A consumer
// holds exactly one; changing parameters means Close then Subscribe
// again, so no overlapping listeners exist.
type Subscription struct {
	hub   *Hub
	query Query

	out       chan Snapshot
	kick      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// Snapshots delivers result sets in emission order. The channel is
// closed when the subscription ends. A slow consumer sees the latest
// snapshot; intermediate ones are coalesced away.
func (s *Subscription) Snapshots() <-chan Snapshot {
	return s.out
}

// Query returns the parameters this subscription was opened with.
func (s *Subscription) Query() Query {
	return s.query
}

// Close tears the subscription down. It is idempotent and safe to call
// regardless of how the subscription ended.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.hub.remove(s)
	})
}

func (s *Subscription) run(ctx context.Context) {
	defer close(s.out)
	defer s.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return
		case <-s.kick:
			articles, err := s.hub.store.ListFeed(ctx, s.query)
			if err != nil {
				s.hub.logger.Error("feed query failed",
					"category", s.query.Category,
					"sub_category", s.query.SubCategory,
					"error", err,
				)
				s.deliver(Snapshot{Err: err})
				return
			}
			s.deliver(Snapshot{Articles: articles})
		}
	}
}

func (s *Subscription) deliver(snap Snapshot) {
	// Latest wins: an undelivered stale snapshot is dropped rather
	// than blocking the refresh loop on a slow consumer.
	select {
	case <-s.out:
	default:
	}
	select {
	case s.out <- snap:
	case <-s.done:
	}
}
