package cart

import (
	"context"
	"sync"
	"time"

	"cardapio-go/pricing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session is the per-browser state: the cart, the applied coupon and the
// order waiting for a PIX confirmation.
type Session struct {
	Cart           *Cart
	Coupon         *pricing.Coupon
	PendingOrderID *uuid.UUID

	lastSeen time.Time
}

// Snapshot is a read-only copy of a session.
type Snapshot struct {
	ID             string          `json:"session_id"`
	Lines          []Line          `json:"items"`
	ItemCount      int             `json:"item_count"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Coupon         *pricing.Coupon `json:"coupon"`
	PendingOrderID *uuid.UUID      `json:"pending_order_id,omitempty"`
}

func (s Snapshot) Quote() pricing.Quote {
	return pricing.NewQuote(s.Subtotal, s.Coupon)
}

// Store keeps sessions in memory and forgets the ones idle for longer than ttl.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (s *Store) session(id string) *Session {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		sess = &Session{Cart: New()}
		s.sessions[id] = sess
	}
	sess.lastSeen = s.now()
	return sess
}

func (s *Store) expired(sess *Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.lastSeen) > s.ttl
}

// Update runs fn on the session under the store lock. The session is
// created when missing. A non-nil error from fn is returned as is.
func (s *Store) Update(id string, fn func(*Session) error) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.session(id)
	if err := fn(sess); err != nil {
		return snapshot(id, sess), err
	}
	return snapshot(id, sess), nil
}

func (s *Store) Snapshot(id string) Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(id, s.session(id))
}

func snapshot(id string, sess *Session) Snapshot {
	snap := Snapshot{
		ID:        id,
		Lines:     sess.Cart.Lines(),
		ItemCount: sess.Cart.ItemCount(),
		Subtotal:  sess.Cart.Subtotal(),
	}
	if sess.Coupon != nil {
		c := *sess.Coupon
		snap.Coupon = &c
	}
	if sess.PendingOrderID != nil {
		pid := *sess.PendingOrderID
		snap.PendingOrderID = &pid
	}
	return snap
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
