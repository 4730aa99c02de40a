package notifications

import (
	"fmt"

	"storefront/internal/models"
)

type template struct {
	title   string
	message string // order number substituted via Sprintf
}

var statusTemplates = map[models.OrderStatus]template{
	models.StatusConfirmed:  {"Order confirmed", "Your order %s has been confirmed."},
	models.StatusProcessing: {"Order processing", "Your order %s is being prepared."},
	models.StatusShipped:    {"Order shipped", "Your order %s is on its way."},
	models.StatusDelivered:  {"Order delivered", "Your order %s has been delivered. Thank you for shopping with us!"},
	models.StatusCancelled:  {"Order cancelled", "Your order %s has been cancelled."},
}

var paymentTemplates = map[models.PaymentStatus]template{
	models.PaymentPaid:    {"Payment received", "Payment for order %s has been received."},
	models.PaymentFailed:  {"Payment failed", "Payment for order %s failed. Please try again or contact support."},
	models.PaymentPending: {"Payment pending", "Payment for order %s is pending."},
}

// statusTemplate looks up the fixed template for a status. Unknown values get
// a generic message instead of failing the dispatch.
func statusTemplate(orderNumber string, status models.OrderStatus) (string, string) {
	if tpl, ok := statusTemplates[status]; ok {
		return tpl.title, fmt.Sprintf(tpl.message, orderNumber)
	}
	return "Order updated", fmt.Sprintf("The status of your order %s changed to %q.", orderNumber, status)
}

func paymentTemplate(orderNumber string, status models.PaymentStatus) (string, string) {
	if tpl, ok := paymentTemplates[status]; ok {
		return tpl.title, fmt.Sprintf(tpl.message, orderNumber)
	}
	return "Payment updated", fmt.Sprintf("The payment status of your order %s changed to %q.", orderNumber, status)
}
