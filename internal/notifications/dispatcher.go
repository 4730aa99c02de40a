package notifications

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
)

// Sink is the external notification store. The dispatcher is its only writer
// in this service; reading and marking notifications belongs to another API.
type Sink interface {
	Write(ctx context.Context, n *models.Notification) error
}

// Dispatcher maps order lifecycle events to templated notification documents.
// Dispatch is best-effort by contract: sink failures are logged and swallowed
// so they can never fail or roll back the order operation that triggered
// them. Guest orders (no linked account) never notify.
type Dispatcher struct {
	sink Sink
}

func NewDispatcher(sink Sink) *Dispatcher {
	return &Dispatcher{sink: sink}
}

func (d *Dispatcher) OrderCreated(ctx context.Context, order *models.Order) {
	if order.UserID == nil {
		return
	}
	d.write(ctx, &models.Notification{
		UserID:  *order.UserID,
		Type:    models.NotificationOrderCreated,
		Title:   "Order confirmed",
		Message: fmt.Sprintf("Your order %s has been received and is being prepared.", order.OrderNumber),
		Link:    orderLink(order),
		Metadata: map[string]string{
			"orderNumber": order.OrderNumber,
		},
	})
}

func (d *Dispatcher) OrderStatusChanged(ctx context.Context, order *models.Order, from, to models.OrderStatus) {
	if order.UserID == nil {
		return
	}
	title, message := statusTemplate(order.OrderNumber, to)
	d.write(ctx, &models.Notification{
		UserID:  *order.UserID,
		Type:    models.NotificationOrderStatus,
		Title:   title,
		Message: message,
		Link:    orderLink(order),
		Metadata: map[string]string{
			"orderNumber": order.OrderNumber,
			"from":        string(from),
			"to":          string(to),
		},
	})
}

func (d *Dispatcher) PaymentStatusChanged(ctx context.Context, order *models.Order, from, to models.PaymentStatus) {
	if order.UserID == nil {
		return
	}
	title, message := paymentTemplate(order.OrderNumber, to)
	d.write(ctx, &models.Notification{
		UserID:  *order.UserID,
		Type:    models.NotificationPaymentStatus,
		Title:   title,
		Message: message,
		Link:    orderLink(order),
		Metadata: map[string]string{
			"orderNumber": order.OrderNumber,
			"from":        string(from),
			"to":          string(to),
		},
	})
}

func (d *Dispatcher) write(ctx context.Context, n *models.Notification) {
	n.CreatedAt = time.Now()
	if err := d.sink.Write(ctx, n); err != nil {
		log.Printf("[NOTIFY] [ERROR] dropping %s notification for user %s: %v",
			n.Type, n.UserID.Hex(), err)
	}
}

func orderLink(order *models.Order) string {
	return "/orders/" + order.OrderNumber
}
