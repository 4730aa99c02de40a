package notifications

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/models"
)

type recordingSink struct {
	written []*models.Notification
	err     error
}

func (s *recordingSink) Write(ctx context.Context, n *models.Notification) error {
	if s.err != nil {
		return s.err
	}
	s.written = append(s.written, n)
	return nil
}

func accountOrder() (*models.Order, primitive.ObjectID) {
	userID := primitive.NewObjectID()
	return &models.Order{
		OrderNumber:   "ORD-1700000000000-000042",
		UserID:        &userID,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
	}, userID
}

func TestOrderCreatedNotifiesAccountOwner(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	order, userID := accountOrder()
	d.OrderCreated(context.Background(), order)

	require.Len(t, sink.written, 1)
	n := sink.written[0]
	assert.Equal(t, userID, n.UserID)
	assert.Equal(t, models.NotificationOrderCreated, n.Type)
	assert.Equal(t, "Order confirmed", n.Title)
	assert.Contains(t, n.Message, order.OrderNumber)
	assert.Equal(t, "/orders/"+order.OrderNumber, n.Link)
	assert.False(t, n.CreatedAt.IsZero())
}

func TestGuestOrderNeverNotifies(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	guest := &models.Order{OrderNumber: "ORD-1700000000000-000001"}
	d.OrderCreated(context.Background(), guest)
	d.OrderStatusChanged(context.Background(), guest, models.StatusPending, models.StatusShipped)
	d.PaymentStatusChanged(context.Background(), guest, models.PaymentPending, models.PaymentPaid)

	assert.Empty(t, sink.written)
}

func TestSinkFailureIsSwallowed(t *testing.T) {
	sink := &recordingSink{err: errors.New("store down")}
	d := NewDispatcher(sink)

	order, _ := accountOrder()
	// Must not panic and must not surface the error.
	d.OrderCreated(context.Background(), order)
	d.PaymentStatusChanged(context.Background(), order, models.PaymentPending, models.PaymentPaid)
}

func TestStatusChangeUsesTemplateTable(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	order, _ := accountOrder()
	d.OrderStatusChanged(context.Background(), order, models.StatusProcessing, models.StatusShipped)

	require.Len(t, sink.written, 1)
	assert.Equal(t, "Order shipped", sink.written[0].Title)
	assert.Equal(t, string(models.StatusProcessing), sink.written[0].Metadata["from"])
	assert.Equal(t, string(models.StatusShipped), sink.written[0].Metadata["to"])
}

func TestUnknownStatusFallsBackToGenericTemplate(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	order, _ := accountOrder()
	d.OrderStatusChanged(context.Background(), order, models.StatusPending, models.OrderStatus("misplaced"))

	require.Len(t, sink.written, 1)
	assert.Equal(t, "Order updated", sink.written[0].Title)
	assert.Contains(t, sink.written[0].Message, "misplaced")
}

func TestPaymentTemplates(t *testing.T) {
	sink := &recordingSink{}
	d := NewDispatcher(sink)

	order, _ := accountOrder()
	d.PaymentStatusChanged(context.Background(), order, models.PaymentPending, models.PaymentPaid)

	require.Len(t, sink.written, 1)
	assert.Equal(t, "Payment received", sink.written[0].Title)
	assert.Equal(t, models.NotificationPaymentStatus, sink.written[0].Type)
}
