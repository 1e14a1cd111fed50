package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	RoleOwner   = "OWNER"
	RoleStudent = "STUDENT"
)

// Order status literals. The initial value is lowercase while the
// owner-driven ones are uppercase; existing clients match on the exact
// strings, so the casing stays as-is.
const (
	StatusPending   = "pending"
	StatusAccepted  = "ACCEPTED"
	StatusReady     = "READY"
	StatusCompleted = "COMPLETED"
)

const (
	PaymentMethodPhonePe = "PHONEPE"
	PaymentMethodGPay    = "GPAY"
	PaymentMethodUPI     = "UPI"
	PaymentMethodCash    = "CASH"
)

const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusCash    = "CASH"
	PaymentStatusPending = "PENDING"
)

type User struct {
	ID       string `gorm:"primaryKey"               json:"id"`
	Email    string `gorm:"unique;not null"          json:"email"`
	PRNHash  string `gorm:"column:prn_hash;not null" json:"-"`
	Role     string `gorm:"not null"                 json:"role"`
	FullName string `json:"full_name"`
}

// MenuItem is part of the static catalog, never persisted.
type MenuItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Image       string  `json:"image"`
}

type CartItem struct {
	MenuItem
	Quantity uint `json:"quantity"`
}

// CartItems is stored on the order row as a JSON column so each order
// keeps a snapshot of what was bought at the prices of that moment.
type CartItems []CartItem

func (items CartItems) Value() (driver.Value, error) {
	return json.Marshal(items)
}

func (items *CartItems) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	case nil:
		*items = nil
		return nil
	default:
		return fmt.Errorf("cart items: cannot scan %T", value)
	}
}

// PaymentData captures the student display fields at purchase time so a
// receipt re-derived from order history shows the name as it was then.
type PaymentData struct {
	StudentName  string `json:"studentName"`
	StudentEmail string `json:"studentEmail"`
}

func (d PaymentData) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *PaymentData) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, d)
	case string:
		return json.Unmarshal([]byte(v), d)
	case nil:
		*d = PaymentData{}
		return nil
	default:
		return fmt.Errorf("payment data: cannot scan %T", value)
	}
}

type Order struct {
	ID            string      `gorm:"primaryKey"     json:"id"`
	UserID        string      `gorm:"index;not null" json:"user_id"`
	Items         CartItems   `gorm:"type:text"      json:"items"`
	Total         float64     `gorm:"not null"       json:"total"`
	Status        string      `gorm:"not null"       json:"status"`
	PaymentMethod string      `json:"payment_method"`
	PaymentStatus string      `json:"payment_status"`
	CreatedAt     time.Time   `gorm:"index"          json:"created_at"`
	PaymentTime   time.Time   `json:"payment_time"`
	ValidTillTime time.Time   `json:"valid_till_time"`
	PaymentData   PaymentData `gorm:"type:text"      json:"payment_data"`
}

// Receipt is a projection of an order for display, never persisted.
// PaymentStatus here is receipt-level: SUCCESS for paid orders, PENDING
// for everything else, cash included.
type Receipt struct {
	StudentName   string    `json:"studentName"`
	StudentEmail  string    `json:"studentEmail"`
	OrderID       string    `json:"orderId"`
	Items         CartItems `json:"items"`
	TotalAmount   float64   `json:"totalAmount"`
	PaymentMethod string    `json:"paymentMethod"`
	PaymentStatus string    `json:"paymentStatus"`
	PaymentTime   time.Time `json:"paymentTime"`
	ValidTillTime time.Time `json:"validTillTime"`
}
