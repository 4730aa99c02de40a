package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"storefront/internal/delivery"
	"storefront/internal/inventory"
	"storefront/internal/models"
)

// maxNumberAttempts bounds regeneration when the random order-number suffix
// collides.
const maxNumberAttempts = 5

// ProductSource supplies the authoritative product snapshot for pricing and
// validation. Implementations must return ProductNotFoundError for missing,
// deleted or inactive products.
type ProductSource interface {
	Product(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
}

// Store persists orders. Insert must report ErrDuplicateNumber when the
// order number collides with an existing document.
type Store interface {
	Insert(ctx context.Context, order *models.Order) error
	ByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	ByNumber(ctx context.Context, number string) (*models.Order, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status models.OrderStatus, payment models.PaymentStatus, updatedAt time.Time) error
}

// Notifier receives order lifecycle events. Implementations are best-effort:
// they must swallow their own failures and never return them here.
type Notifier interface {
	OrderCreated(ctx context.Context, order *models.Order)
	OrderStatusChanged(ctx context.Context, order *models.Order, from, to models.OrderStatus)
	PaymentStatusChanged(ctx context.Context, order *models.Order, from, to models.PaymentStatus)
}

type Service struct {
	products ProductSource
	store    Store
	ledger   *inventory.Ledger
	notifier Notifier
	prefix   string
}

func NewService(products ProductSource, store Store, ledger *inventory.Ledger, notifier Notifier, prefix string) *Service {
	return &Service{
		products: products,
		store:    store,
		ledger:   ledger,
		notifier: notifier,
		prefix:   prefix,
	}
}

type ItemInput struct {
	ProductID primitive.ObjectID
	Quantity  int
}

type CreateInput struct {
	UserID        *primitive.ObjectID
	Customer      models.OrderCustomer
	Items         []ItemInput
	Shipping      models.ShippingAddress
	PaymentMethod models.PaymentMethod
	DeliveryType  models.DeliveryType
	Quote         delivery.Quote
	Notes         string
}

// Create turns a validated cart into a persisted order. Stock is reserved
// through the ledger before the insert; if the insert fails the reservation
// is released, so no partial decrement survives a failed order.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Order, error) {
	if err := validateCreateInput(in); err != nil {
		return nil, err
	}
	if !in.Quote.Resolved {
		return nil, ErrUnresolvedDelivery
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	lines := make([]inventory.Line, 0, len(in.Items))
	itemsTotal := 0.0

	for _, item := range in.Items {
		product, err := s.products.Product(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Stock < item.Quantity {
			return nil, inventory.OutOfStockError{
				ProductID: item.ProductID,
				Available: product.Stock,
				Requested: item.Quantity,
			}
		}

		unitPrice := effectiveProductPrice(product.Price, product.SaleEnabled, product.SalePrice)
		subtotal := round2(unitPrice * float64(item.Quantity))
		items = append(items, models.OrderItem{
			ProductID: item.ProductID,
			Name:      product.Name,
			Price:     unitPrice,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		itemsTotal += subtotal
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	reservation, err := s.ledger.Reserve(ctx, lines)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.Order{
		UserID:          in.UserID,
		Customer:        in.Customer,
		Items:           items,
		ShippingAddress: in.Shipping,
		TotalAmount:     round2(itemsTotal + in.Quote.Fee),
		DeliveryFee:     in.Quote.Fee,
		DeliveryType:    in.DeliveryType,
		Status:          models.StatusPending,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.insertWithFreshNumber(ctx, order); err != nil {
		s.ledger.Release(ctx, reservation)
		return nil, err
	}

	s.notifier.OrderCreated(ctx, order)
	return order, nil
}

func (s *Service) insertWithFreshNumber(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.OrderNumber = NewOrderNumber(s.prefix, time.Now())
		err := s.store.Insert(ctx, order)
		if err == nil {
			return nil
		}
		if errors.Is(err, ErrDuplicateNumber) {
			continue
		}
		return err
	}
	return fmt.Errorf("order number retry budget exhausted: %w", ErrDuplicateNumber)
}

func validateCreateInput(in CreateInput) error {
	if len(in.Items) == 0 {
		return ValidationError{Message: "at least one item is required"}
	}
	for _, item := range in.Items {
		if item.ProductID.IsZero() {
			return ValidationError{Message: "productId is required"}
		}
		if item.Quantity < 1 {
			return ValidationError{Message: "quantity must be at least 1"}
		}
	}
	if !models.ValidPaymentMethod(in.PaymentMethod) {
		return ValidationError{Message: "invalid payment method"}
	}
	switch in.DeliveryType {
	case models.DeliveryStandard, models.DeliveryExpress, models.DeliveryPickup:
	default:
		return ValidationError{Message: "invalid delivery type"}
	}
	if in.DeliveryType != models.DeliveryPickup && in.Shipping.City == "" {
		return ValidationError{Message: "shipping city is required"}
	}
	if in.Customer.Phone == "" {
		return ValidationError{Message: "phone is required"}
	}
	return nil
}

type UpdateStatusInput struct {
	Status        *models.OrderStatus
	PaymentStatus *models.PaymentStatus
}

// UpdateStatus applies an admin transition to one or both lifecycle fields.
// Setting a field to its current value is accepted but emits no notification
// and no write.
func (s *Service) UpdateStatus(ctx context.Context, id primitive.ObjectID, in UpdateStatusInput) (*models.Order, error) {
	if in.Status == nil && in.PaymentStatus == nil {
		return nil, ValidationError{Message: "status or paymentStatus is required"}
	}

	order, err := s.store.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus, newPayment := order.Status, order.PaymentStatus
	statusChanged, paymentChanged := false, false

	if in.Status != nil && *in.Status != order.Status {
		if !models.ValidOrderStatus(*in.Status) {
			return nil, ValidationError{Message: fmt.Sprintf("unknown status %q", *in.Status)}
		}
		if !CanTransitionStatus(order.Status, *in.Status) {
			return nil, ValidationError{
				Message: fmt.Sprintf("cannot transition status from %q to %q", order.Status, *in.Status),
			}
		}
		newStatus = *in.Status
		statusChanged = true
	}

	if in.PaymentStatus != nil && *in.PaymentStatus != order.PaymentStatus {
		if !CanTransitionPayment(order.PaymentStatus, *in.PaymentStatus) {
			return nil, ValidationError{Message: fmt.Sprintf("unknown payment status %q", *in.PaymentStatus)}
		}
		newPayment = *in.PaymentStatus
		paymentChanged = true
	}

	if !statusChanged && !paymentChanged {
		return order, nil
	}

	now := time.Now()
	if err := s.store.SetStatus(ctx, id, newStatus, newPayment, now); err != nil {
		return nil, err
	}

	oldStatus, oldPayment := order.Status, order.PaymentStatus
	order.Status = newStatus
	order.PaymentStatus = newPayment
	order.UpdatedAt = now

	if statusChanged {
		s.notifier.OrderStatusChanged(ctx, order, oldStatus, newStatus)
	}
	if paymentChanged {
		s.notifier.PaymentStatusChanged(ctx, order, oldPayment, newPayment)
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	return s.store.ByID(ctx, id)
}

func (s *Service) GetByNumber(ctx context.Context, number string) (*models.Order, error) {
	return s.store.ByNumber(ctx, number)
}

func (s *Service) ListForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.store.ListByUser(ctx, userID)
}
