package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	"governanceevents/internal/domain"
)

// Currency is the ISO code of every event price.
const Currency = "KES"

type orderAPI interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type paymentAPI interface {
	Fetch(paymentID string, queryParams map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

type razorpayGateway struct {
	orders   orderAPI
	payments paymentAPI
	secret   string
}

// NewRazorpayGateway returns a gateway that opens Razorpay orders and verifies checkout signatures.
func NewRazorpayGateway(keyID, keySecret string) domain.PaymentGateway {
	client := razorpay.NewClient(keyID, keySecret)
	return &razorpayGateway{orders: client.Order, payments: client.Payment, secret: keySecret}
}

// CreateOrder opens an auto-captured order for amount KES, expressed in cents.
func (g *razorpayGateway) CreateOrder(_ context.Context, reg *domain.Registration, amount int) (string, error) {
	data := map[string]interface{}{
		"amount":          amount * 100,
		"currency":        Currency,
		"receipt":         reg.ConfirmationRef,
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"confirmation_ref": reg.ConfirmationRef,
			"event_id":         reg.EventID,
			"email":            reg.Email,
		},
	}
	order, err := g.orders.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order creation failed: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", errors.New("unable to extract order_id from Razorpay response")
	}
	return orderID, nil
}

// Verify checks the checkout signature over "orderID|paymentID" and that Razorpay reports the
// payment as captured or authorized.
func (g *razorpayGateway) Verify(_ context.Context, orderID string, c *domain.PaymentConfirmation) error {
	if c == nil || c.PaymentID == "" || c.Signature == "" {
		return fmt.Errorf("%w: payment id and signature are required", domain.ErrPaymentVerification)
	}
	expected := Sign(g.secret, orderID, c.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(c.Signature)) {
		return fmt.Errorf("%w: signature mismatch", domain.ErrPaymentVerification)
	}

	p, err := g.payments.Fetch(c.PaymentID, nil, nil)
	if err != nil {
		return fmt.Errorf("razorpay payment fetch failed: %w", err)
	}
	status, _ := p["status"].(string)
	switch status {
	case "captured", "authorized":
		return nil
	}
	return fmt.Errorf("%w: payment status %q", domain.ErrPaymentVerification, status)
}

func (g *razorpayGateway) Method() domain.PaymentMethod {
	return domain.PaymentMethodCard
}

// Sign returns the checkout signature Razorpay would produce for orderID and paymentID.
func Sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
