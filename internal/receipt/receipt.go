// Package receipt derives the printable receipt view of an order. Nothing
// here is persisted or cached; expiry in particular must be recomputed at
// render time.
package receipt

import (
	"time"

	"github.com/smartcanteen/canteen-api/internal/models"
)

const (
	PaymentSuccess = "SUCCESS"
	PaymentPending = "PENDING"
)

// Build projects an order into a receipt. Order-level CASH and PENDING
// payment statuses both render as PENDING; only PAID renders as SUCCESS.
func Build(order *models.Order) models.Receipt {
	status := PaymentPending
	if order.PaymentStatus == models.PaymentStatusPaid {
		status = PaymentSuccess
	}
	return models.Receipt{
		StudentName:   order.PaymentData.StudentName,
		StudentEmail:  order.PaymentData.StudentEmail,
		OrderID:       order.ID,
		Items:         order.Items,
		TotalAmount:   order.Total,
		PaymentMethod: order.PaymentMethod,
		PaymentStatus: status,
		PaymentTime:   order.PaymentTime,
		ValidTillTime: order.ValidTillTime,
	}
}

// IsExpired reports whether the receipt should render as expired: completed
// orders are always expired, everything else expires when the validity
// window closes.
func IsExpired(order *models.Order, now time.Time) bool {
	if order.Status == models.StatusCompleted {
		return true
	}
	return now.After(order.ValidTillTime)
}
