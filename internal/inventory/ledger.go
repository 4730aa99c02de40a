package inventory

import (
	"context"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockStore is the persistence primitive the ledger runs on. Decrement must
// be atomic and conditional: it either applies the full quantity against a
// sufficient balance or reports false without changing anything. A
// read-check-write sequence does not satisfy this contract.
type StockStore interface {
	Decrement(ctx context.Context, productID primitive.ObjectID, qty int) (bool, error)
	Increment(ctx context.Context, productID primitive.ObjectID, qty int) error
	SetStock(ctx context.Context, productID primitive.ObjectID, qty int) (bool, error)
}

type Line struct {
	ProductID primitive.ObjectID
	Quantity  int
}

// Reservation records the decrements applied so far, so a later failure can
// hand them back.
type Reservation struct {
	applied []Line
}

// OutOfStockError reports an unsatisfiable line. Available carries the last
// observed balance, which may be stale when the reservation lost a race.
type OutOfStockError struct {
	ProductID primitive.ObjectID
	Available int
	Requested int
}

func (e OutOfStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (available %d, requested %d)",
		e.ProductID.Hex(), e.Available, e.Requested)
}

// Ledger owns the authoritative per-product stock counters.
type Ledger struct {
	store StockStore
}

func NewLedger(store StockStore) *Ledger {
	return &Ledger{store: store}
}

// Reserve decrements stock for every line, all-or-nothing. When a line cannot
// be satisfied, the decrements already applied are compensated and an
// OutOfStockError for the failing line is returned.
func (l *Ledger) Reserve(ctx context.Context, lines []Line) (*Reservation, error) {
	if len(lines) == 0 {
		return nil, fmt.Errorf("reserve called with no lines")
	}

	res := &Reservation{applied: make([]Line, 0, len(lines))}
	for _, line := range lines {
		if line.Quantity < 1 {
			l.rollback(ctx, res)
			return nil, fmt.Errorf("invalid quantity %d for product %s", line.Quantity, line.ProductID.Hex())
		}

		ok, err := l.store.Decrement(ctx, line.ProductID, line.Quantity)
		if err != nil {
			l.rollback(ctx, res)
			return nil, err
		}
		if !ok {
			l.rollback(ctx, res)
			return nil, OutOfStockError{ProductID: line.ProductID, Requested: line.Quantity}
		}
		res.applied = append(res.applied, line)
	}
	return res, nil
}

// Release hands a reservation back, restoring every decremented line. Used
// when the order insert fails after a successful reserve.
func (l *Ledger) Release(ctx context.Context, res *Reservation) {
	if res == nil {
		return
	}
	l.rollback(ctx, res)
}

func (l *Ledger) rollback(ctx context.Context, res *Reservation) {
	for _, line := range res.applied {
		if err := l.store.Increment(ctx, line.ProductID, line.Quantity); err != nil {
			// Nothing left to do in-process; the counter needs manual repair.
			log.Printf("[INVENTORY] [ERROR] compensation failed for product %s qty %d: %v",
				line.ProductID.Hex(), line.Quantity, err)
		}
	}
	res.applied = nil
}

// SetStock replaces a product's counter, for admin restock. Returns false
// when the product does not exist.
func (l *Ledger) SetStock(ctx context.Context, productID primitive.ObjectID, qty int) (bool, error) {
	if qty < 0 {
		return false, fmt.Errorf("stock cannot be negative")
	}
	return l.store.SetStock(ctx, productID, qty)
}

// AddStock tops a counter up by qty.
func (l *Ledger) AddStock(ctx context.Context, productID primitive.ObjectID, qty int) error {
	if qty < 1 {
		return fmt.Errorf("restock quantity must be positive")
	}
	return l.store.Increment(ctx, productID, qty)
}
