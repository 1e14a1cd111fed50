// Package order is the lifecycle manager shared by both transport
// adapters: it owns creation, the validity window, status updates and the
// owner gate. Transports stay thin on top of it.
package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/smartcanteen/canteen-api/internal/events"
	"github.com/smartcanteen/canteen-api/internal/logging"
	"github.com/smartcanteen/canteen-api/internal/models"
	"github.com/smartcanteen/canteen-api/internal/receipt"
	"github.com/smartcanteen/canteen-api/internal/repo"
)

var (
	ErrMissingFields = errors.New("missing fields")  // 400
	ErrInvalidStatus = errors.New("invalid status")  // 400
	ErrUnauthorized  = errors.New("unauthorized")    // 403
	ErrOrderNotFound = errors.New("order not found") // 404
)

// ValidityWindow is how long a receipt stays live after payment.
const ValidityWindow = 2 * time.Hour

type Service struct {
	Orders     *repo.OrderRepo
	Users      *repo.UserRepo
	Producer   *events.Producer
	OwnerEmail string

	// Now is the clock; tests pin it. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type CreateInput struct {
	UserID        string
	Items         models.CartItems
	Total         *float64
	PaymentMethod string
	PaymentStatus string
}

// Create stores a new order and returns it with its receipt. The total is
// persisted verbatim: the client computes it (5% tax included) and this
// layer does not recompute or validate it. Known trust boundary.
func (s *Service) Create(ctx context.Context, in CreateInput) (*models.Order, *models.Receipt, error) {
	if in.UserID == "" || len(in.Items) == 0 || in.Total == nil || *in.Total == 0 {
		return nil, nil, fmt.Errorf("%w: userId, items and total are required", ErrMissingFields)
	}

	method := in.PaymentMethod
	if method == "" {
		method = models.PaymentMethodCash
	}
	payStatus := in.PaymentStatus
	if payStatus == "" {
		payStatus = models.PaymentStatusCash
	}

	// Display fields fall back rather than abort: an order from an
	// unknown user id is still taken.
	studentName, studentEmail := "Student", ""
	if user, err := s.Users.FindByID(ctx, in.UserID); err == nil {
		if user.FullName != "" {
			studentName = user.FullName
		}
		studentEmail = user.Email
	}

	paymentTime := s.now()
	order := &models.Order{
		UserID:        in.UserID,
		Items:         in.Items,
		Total:         *in.Total,
		Status:        models.StatusPending,
		PaymentMethod: method,
		PaymentStatus: payStatus,
		CreatedAt:     paymentTime,
		PaymentTime:   paymentTime,
		ValidTillTime: paymentTime.Add(ValidityWindow),
		PaymentData: models.PaymentData{
			StudentName:  studentName,
			StudentEmail: studentEmail,
		},
	}

	if err := s.Orders.Create(ctx, order); err != nil {
		return nil, nil, err
	}

	s.publish(ctx, order.ID, map[string]any{
		"type":     events.TypeOrderCreated,
		"order_id": order.ID,
		"user_id":  order.UserID,
		"total":    order.Total,
	})

	rec := receipt.Build(order)
	return order, &rec, nil
}

// UpdateStatus advances an order on behalf of the owner. Any of the three
// owner statuses is accepted from any current state; the dashboard is what
// walks them in sequence, not this layer.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status, requester string) (*models.Order, error) {
	if requester != s.OwnerEmail {
		return nil, fmt.Errorf("%w: only the owner can update orders", ErrUnauthorized)
	}
	switch status {
	case models.StatusAccepted, models.StatusReady, models.StatusCompleted:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	order, err := s.Orders.UpdateStatus(ctx, orderID, status)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, orderID)
		}
		return nil, err
	}

	s.publish(ctx, order.ID, map[string]any{
		"type":     events.TypeOrderStatusUpdated,
		"order_id": order.ID,
		"status":   order.Status,
	})

	return order, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]models.Order, error) {
	return s.Orders.ListByUser(ctx, userID)
}

// ListAll is the owner dashboard feed, newest first.
func (s *Service) ListAll(ctx context.Context, requester string) ([]models.Order, error) {
	if requester != s.OwnerEmail {
		return nil, fmt.Errorf("%w: only the owner can list all orders", ErrUnauthorized)
	}
	return s.Orders.ListAll(ctx)
}

func (s *Service) publish(ctx context.Context, key string, event map[string]any) {
	if s.Producer == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.Publish(pubCtx, key, event); err != nil {
		logging.FromContext(ctx).Warn("order_event_publish_failed", "error", err)
	}
}
