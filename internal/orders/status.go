package orders

import "storefront/internal/models"

// statusRank orders the normal fulfilment progression. cancelled is not
// ranked; it is a side exit.
var statusRank = map[models.OrderStatus]int{
	models.StatusPending:    0,
	models.StatusConfirmed:  1,
	models.StatusProcessing: 2,
	models.StatusShipped:    3,
	models.StatusDelivered:  4,
}

// CanTransitionStatus is the order-status policy: forward-only progression
// through pending, confirmed, processing, shipped, delivered, with cancelled
// reachable from any non-terminal state. delivered and cancelled are
// terminal. Backward moves are rejected.
func CanTransitionStatus(from, to models.OrderStatus) bool {
	if from == to {
		return false
	}
	if from == models.StatusDelivered || from == models.StatusCancelled {
		return false
	}
	if to == models.StatusCancelled {
		return true
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// CanTransitionPayment allows any move between the three payment states.
// Reverting paid is deliberately permitted so admins can correct mistakes;
// payment state is independent of fulfilment state.
func CanTransitionPayment(from, to models.PaymentStatus) bool {
	return models.ValidPaymentStatus(to) && from != to
}
