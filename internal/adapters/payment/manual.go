// Package payment implements domain.PaymentGateway.
package payment

import (
	"context"

	"governanceevents/internal/domain"
)

type manualGateway struct{}

// NewManualGateway returns a gateway with no external processor. Orders have no id and every
// confirmation is accepted; an operator reconciles payments out of band.
func NewManualGateway() domain.PaymentGateway {
	return manualGateway{}
}

func (manualGateway) CreateOrder(context.Context, *domain.Registration, int) (string, error) {
	return "", nil
}

func (manualGateway) Verify(context.Context, string, *domain.PaymentConfirmation) error {
	return nil
}

func (manualGateway) Method() domain.PaymentMethod {
	return domain.PaymentMethodManual
}
