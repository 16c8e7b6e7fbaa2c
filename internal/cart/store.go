package cart

import (
	"sync"

	"github.com/supplyline-web/server/internal/catalog"
)

// Store holds one cart per session id, in memory only. Carts disappear on
// process restart and when Drop is called after a successful order or a
// logout.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{carts: make(map[string]*Cart)}
}

// Add routes an Add to the session's cart, creating the cart on first use.
func (s *Store) Add(sid string, p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sid]
	if !ok {
		c = &Cart{}
		s.carts[sid] = c
	}
	c.Add(p)
}

// Remove routes a Remove to the session's cart. A session without a cart is
// a no-op.
func (s *Store) Remove(sid, productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.carts[sid]; ok {
		c.Remove(productID)
	}
}

// Snapshot returns a detached copy of the session's cart. The copy can be
// read without holding the store lock; mutations go through Add/Remove.
func (s *Store) Snapshot(sid string) *Cart {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.carts[sid]
	if !ok {
		return &Cart{}
	}
	return &Cart{lines: c.Lines()}
}

// Drop discards the session's cart.
func (s *Store) Drop(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sid)
}
