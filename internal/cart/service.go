// Package cart implements the client-side shopping cart: line items
// with quantity merge, derived totals, a drawer flag with a cancellable
// auto-close timer, and write-through persistence to the local store.
package cart

import (
	"fmt"
	"sync"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"go.uber.org/zap"
)

const defaultStorageKey = "cart"

var _ port.Cart = (*Service)(nil)

// DefaultCloseDelay is how long the drawer stays open after an add
// before it closes on its own.
const DefaultCloseDelay = 2 * time.Second

type Service struct {
	mu         sync.Mutex
	items      []domain.CartItem
	open       bool
	closeTimer *time.Timer

	store      port.Store
	logger     *zap.Logger
	closeDelay time.Duration
	key        string
}

type Option func(*Service)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithCloseDelay(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.closeDelay = d
		}
	}
}

func WithStorageKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

func NewService(st port.Store, opts ...Option) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("store is nil")
	}

	s := &Service{
		store:      st,
		logger:     zap.NewNop(),
		closeDelay: DefaultCloseDelay,
		key:        defaultStorageKey,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.hydrate()
	return s, nil
}

// hydrate loads the persisted cart once, at construction. A record
// that fails validation is cleared and the cart starts empty.
func (s *Service) hydrate() {
	var items []domain.CartItem
	if !s.store.Load(s.key, &items) {
		return
	}

	if err := (domain.Cart{Items: items}).Validate(); err != nil {
		s.logger.Warn("discarding invalid persisted cart", zap.Error(err))
		s.store.Delete(s.key)
		return
	}

	s.items = items
}

// AddItem merges the product into the cart: a known product ID gains
// quantity, a new one is appended with quantity 1 and its price parsed
// from the display string. The unit price is locked at first add and
// never refreshed from later calls. Opens the drawer and (re)schedules
// the auto-close.
func (s *Service) AddItem(product domain.Product) {
	if product.ID == "" {
		s.logger.Warn("ignoring product without ID", zap.String("title", product.Title))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(product.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, domain.CartItem{
			ProductID:    product.ID,
			Title:        product.Title,
			PriceDisplay: product.PriceDisplay,
			PriceNumeric: domain.ParsePrice(product.PriceDisplay),
			ImageURL:     product.ImageURL,
			Quantity:     1,
			Category:     product.Category,
			CapacityBTU:  product.CapacityBTU,
		})
	}
	s.persistLocked()

	s.open = true
	s.scheduleCloseLocked()
}

// RemoveItem deletes the matching line item. Absent IDs are a silent
// no-op.
func (s *Service) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.removeLocked(productID) {
		s.persistLocked()
	}
}

// SetQuantity overwrites the quantity of the matching item; a quantity
// of zero or less removes the item instead, so a persisted quantity is
// always at least 1. Absent IDs are a silent no-op.
func (s *Service) SetQuantity(productID string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		if s.removeLocked(productID) {
			s.persistLocked()
		}
		return
	}

	i := s.indexOf(productID)
	if i < 0 {
		return
	}
	s.items[i].Quantity = quantity
	s.persistLocked()
}

func (s *Service) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.open = false
	s.stopTimerLocked()
	s.persistLocked()
}

// Open shows the drawer and cancels any pending auto-close, so a stale
// timer cannot override an explicit open.
func (s *Service) Open() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.open = true
}

func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.open = false
}

func (s *Service) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Items returns a copy of the line items in insertion order.
func (s *Service) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Service) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Cart{Items: s.items}.ItemCount()
}

func (s *Service) TotalAmount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Cart{Items: s.items}.TotalAmount()
}

// Stop cancels any pending auto-close timer. The service stays usable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

func (s *Service) indexOf(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}
	return -1
}

func (s *Service) removeLocked(productID string) bool {
	i := s.indexOf(productID)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// persistLocked writes the full current item snapshot, so overlapping
// mutations stay safe under last-write-wins.
func (s *Service) persistLocked() {
	items := s.items
	if items == nil {
		items = []domain.CartItem{}
	}
	s.store.Save(s.key, items)
}

// scheduleCloseLocked replaces any pending auto-close with a fresh one,
// so a rapid second add keeps the drawer open for the full delay.
func (s *Service) scheduleCloseLocked() {
	s.stopTimerLocked()
	s.closeTimer = time.AfterFunc(s.closeDelay, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.open = false
		s.closeTimer = nil
	})
}

func (s *Service) stopTimerLocked() {
	if s.closeTimer != nil {
		s.closeTimer.Stop()
		s.closeTimer = nil
	}
}
