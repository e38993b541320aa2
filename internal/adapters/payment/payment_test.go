package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"governanceevents/internal/domain"
)

type fakeOrders struct {
	got  map[string]interface{}
	resp map[string]interface{}
	err  error
}

func (f *fakeOrders) Create(data map[string]interface{}, _ map[string]string) (map[string]interface{}, error) {
	f.got = data
	return f.resp, f.err
}

type fakePayments struct {
	status string
	err    error
}

func (f *fakePayments) Fetch(string, map[string]interface{}, map[string]string) (map[string]interface{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	return map[string]interface{}{"status": f.status}, nil
}

func TestManualGateway(t *testing.T) {
	g := NewManualGateway()
	id, err := g.CreateOrder(context.Background(), &domain.Registration{}, 5000)
	require.NoError(t, err)
	assert.Empty(t, id)
	assert.NoError(t, g.Verify(context.Background(), "", &domain.PaymentConfirmation{}))
	assert.Equal(t, domain.PaymentMethodManual, g.Method())
}

func TestRazorpayGateway_CreateOrder(t *testing.T) {
	orders := &fakeOrders{resp: map[string]interface{}{"id": "order_123"}}
	g := &razorpayGateway{orders: orders, payments: &fakePayments{}, secret: "s"}

	id, err := g.CreateOrder(context.Background(), &domain.Registration{ConfirmationRef: "CGC-AB12CD34", EventID: "1"}, 5000)
	require.NoError(t, err)
	assert.Equal(t, "order_123", id)
	assert.Equal(t, 500000, orders.got["amount"])
	assert.Equal(t, "KES", orders.got["currency"])
	assert.Equal(t, "CGC-AB12CD34", orders.got["receipt"])

	g.orders = &fakeOrders{resp: map[string]interface{}{}}
	_, err = g.CreateOrder(context.Background(), &domain.Registration{}, 5000)
	assert.Error(t, err)

	g.orders = &fakeOrders{err: errors.New("bad key")}
	_, err = g.CreateOrder(context.Background(), &domain.Registration{}, 5000)
	assert.ErrorContains(t, err, "bad key")
}

func TestRazorpayGateway_Verify(t *testing.T) {
	const secret = "rzp_secret"
	valid := &domain.PaymentConfirmation{PaymentID: "pay_1", Signature: Sign(secret, "order_1", "pay_1")}

	tests := []struct {
		name     string
		payments *fakePayments
		conf     *domain.PaymentConfirmation
		errIs    error
		wantErr  bool
	}{
		{name: "captured", payments: &fakePayments{status: "captured"}, conf: valid},
		{name: "authorized", payments: &fakePayments{status: "authorized"}, conf: valid},
		{
			name:     "bad signature",
			payments: &fakePayments{status: "captured"},
			conf:     &domain.PaymentConfirmation{PaymentID: "pay_1", Signature: "deadbeef"},
			wantErr:  true,
			errIs:    domain.ErrPaymentVerification,
		},
		{
			name:     "missing fields",
			payments: &fakePayments{status: "captured"},
			conf:     &domain.PaymentConfirmation{},
			wantErr:  true,
			errIs:    domain.ErrPaymentVerification,
		},
		{name: "failed payment", payments: &fakePayments{status: "failed"}, conf: valid, wantErr: true, errIs: domain.ErrPaymentVerification},
		{name: "fetch error", payments: &fakePayments{err: errors.New("timeout")}, conf: valid, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &razorpayGateway{orders: &fakeOrders{}, payments: tt.payments, secret: secret}
			err := g.Verify(context.Background(), "order_1", tt.conf)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					assert.ErrorIs(t, err, tt.errIs)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}
