package cart

import (
	"github.com/google/uuid"

	"github.com/jamizoram/storefront/internal/domain"
)

// Engine owns the ordered list of cart lines for one session and exposes
// deterministic operations over it. A line is keyed by (productID, size);
// the same product in two sizes is two independent lines.
//
// Engine is not safe for concurrent use; the Manager serializes access.
type Engine struct {
	lines []domain.CartLine
}

// NewEngine creates an empty cart engine
func NewEngine() *Engine {
	return &Engine{}
}

// Restore creates an engine from previously persisted lines. Lines with a
// non-positive quantity are dropped rather than resurrected, and duplicate
// (productID, size) keys are folded into one line so a stale store value can
// never violate the one-line-per-key invariant.
func Restore(lines []domain.CartLine) *Engine {
	e := &Engine{lines: make([]domain.CartLine, 0, len(lines))}
	for _, l := range lines {
		e.MergeLine(l)
	}
	return e
}

// AddItem merges a product into the cart. If a line with the same
// (productID, size) key exists its quantity is incremented by quantity;
// otherwise a new line is appended with the product's name, price and image
// copied at add-time. Returns true when an existing line was merged.
//
// Callers must gate on a non-empty size before invoking; the engine does not
// reject an empty size itself.
func (e *Engine) AddItem(product *domain.Product, size string, quantity int) bool {
	if quantity < 1 {
		quantity = 1
	}
	for i := range e.lines {
		if e.lines[i].ProductID == product.ID && e.lines[i].Size == size {
			e.lines[i].Quantity += quantity
			return true
		}
	}
	e.lines = append(e.lines, domain.CartLine{
		ProductID:   product.ID,
		ProductName: product.Name,
		Price:       product.Price,
		Quantity:    quantity,
		Image:       product.Image,
		Size:        size,
	})
	return false
}

// MergeLine folds an already-built line into the cart: a (productID, size)
// match sums quantities, anything else is appended as-is. Lines with a
// non-positive quantity are dropped. Returns true when an existing line
// absorbed the quantity.
func (e *Engine) MergeLine(line domain.CartLine) bool {
	if line.Quantity < 1 {
		return false
	}
	for i := range e.lines {
		if e.lines[i].ProductID == line.ProductID && e.lines[i].Size == line.Size {
			e.lines[i].Quantity += line.Quantity
			return true
		}
	}
	e.lines = append(e.lines, line)
	return false
}

// UpdateQuantity sets the matched line's quantity exactly. Values below 1 are
// a no-op: removal is a distinct explicit action, never a side effect of a
// decrement. Returns true when a line was changed.
func (e *Engine) UpdateQuantity(productID uuid.UUID, size string, quantity int) bool {
	if quantity < 1 {
		return false
	}
	for i := range e.lines {
		if e.lines[i].ProductID == productID && e.lines[i].Size == size {
			e.lines[i].Quantity = quantity
			return true
		}
	}
	return false
}

// RemoveItem deletes the matched line unconditionally; no-op if not found.
// Returns true when a line was removed.
func (e *Engine) RemoveItem(productID uuid.UUID, size string) bool {
	for i := range e.lines {
		if e.lines[i].ProductID == productID && e.lines[i].Size == size {
			e.lines = append(e.lines[:i], e.lines[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the cart. Used after a confirmed order placement.
func (e *Engine) Clear() {
	e.lines = nil
}

// Snapshot returns a value copy of the lines in insertion order. Mutating the
// cart afterwards never affects a snapshot already taken.
func (e *Engine) Snapshot() []domain.CartLine {
	out := make([]domain.CartLine, len(e.lines))
	copy(out, e.lines)
	return out
}

// TotalQuantity is the sum of all line quantities (cart badge count)
func (e *Engine) TotalQuantity() int {
	total := 0
	for _, l := range e.lines {
		total += l.Quantity
	}
	return total
}

// Subtotal is the sum of price x quantity across all lines
func (e *Engine) Subtotal() float64 {
	total := 0.0
	for _, l := range e.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// Len returns the number of distinct lines
func (e *Engine) Len() int {
	return len(e.lines)
}
