package cart

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
)

// Store is the working cart of one session. Lines keep the order in which
// their item was first added and there is at most one line per item id.
// Mutations are serialized by mu and apply in call order.
type Store struct {
	mu    sync.Mutex
	lines []Line
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) indexOf(itemID string) int {
	for i := range s.lines {
		if s.lines[i].Item.ID == itemID {
			return i
		}
	}
	return -1
}

// AddItem increments the line for item.ID, or appends a new line with
// quantity 1.
func (s *Store) AddItem(item menu.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, Line{Item: item, Quantity: 1})
}

// UpdateQuantity sets the quantity of an existing line. A quantity of zero or
// less removes the line. Unknown ids are ignored.
func (s *Store) UpdateQuantity(itemID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(itemID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(itemID); i >= 0 {
		s.lines[i].Quantity = quantity
	}
}

func (s *Store) RemoveItem(itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(itemID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.mu.Unlock()
}

// Lines returns a copy of the current lines.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Line(nil), s.lines...)
}

func (s *Store) Line(itemID string) (Line, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexOf(itemID); i >= 0 {
		return s.lines[i], true
	}
	return Line{}, false
}

// TotalPrice is recomputed from the current lines on every call.
func (s *Store) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Total(s.lines)
}

// Count is the number of units in the cart.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.lines) == 0
}
