package domain

import (
	"context"
	"time"
)

// PaymentMethod is how a registrant paid.
type PaymentMethod string

const (
	PaymentMethodPayPal PaymentMethod = "paypal"
	PaymentMethodMpesa  PaymentMethod = "mpesa"
	PaymentMethodCard   PaymentMethod = "card"
	PaymentMethodManual PaymentMethod = "manual"
)

// PaymentRecordStatus is the lifecycle of a single payment attempt.
type PaymentRecordStatus string

const (
	PaymentRecordPending   PaymentRecordStatus = "pending"
	PaymentRecordCompleted PaymentRecordStatus = "completed"
	PaymentRecordFailed    PaymentRecordStatus = "failed"
)

// Payment records a payment attempt for a paid registration.
// swagger:model Payment
type Payment struct {
	ID             string              `json:"id"`
	RegistrationID string              `json:"registration_id"`
	Amount         int                 `json:"amount"`
	Method         PaymentMethod       `json:"method"`
	Status         PaymentRecordStatus `json:"status"`
	OrderID        string              `json:"order_id,omitempty"`
	TransactionRef string              `json:"transaction_ref,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// PaymentConfirmation is the proof a client presents when confirming payment.
// With the manual gateway only Method and TransactionRef are meaningful.
type PaymentConfirmation struct {
	Method         PaymentMethod `json:"method"`
	TransactionRef string        `json:"transaction_ref"`
	PaymentID      string        `json:"payment_id"`
	Signature      string        `json:"signature"`
}

// PaymentRepository defines storage operations for payments.
type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByRegistrationID(ctx context.Context, registrationID string) (*Payment, error)
	UpdateStatus(ctx context.Context, id string, status PaymentRecordStatus, transactionRef string, updatedAt time.Time) error
}

// PaymentGateway opens orders for paid registrations and verifies confirmations (infrastructure port).
type PaymentGateway interface {
	// CreateOrder returns the gateway order id, or "" if the gateway has no order concept.
	CreateOrder(ctx context.Context, reg *Registration, amount int) (string, error)
	// Verify returns ErrPaymentVerification if the confirmation does not prove payment of the order.
	Verify(ctx context.Context, orderID string, c *PaymentConfirmation) error
	// Method is recorded on payments created through this gateway.
	Method() PaymentMethod
}
