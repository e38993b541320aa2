package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/go-playground/validator/v10"
	"governanceevents/internal/domain"
)

const (
	referencePrefix       = "CGC-"
	referenceLength       = 8
	maxReferenceAttempts  = 5
	freeConfirmationLabel = "Free"
)

var referenceAlphabet = []byte("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// GenerateConfirmationReference returns "CGC-" followed by 8 random characters from [A-Z0-9].
func GenerateConfirmationReference() (string, error) {
	b := make([]byte, referenceLength)
	max := big.NewInt(int64(len(referenceAlphabet)))
	for i := range b {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = referenceAlphabet[n.Int64()]
	}
	return referencePrefix + string(b), nil
}

// PaidConfirmationLabel is the event type line of a paid confirmation, e.g. "Paid (KES 5000)".
func PaidConfirmationLabel(p domain.Price) string {
	return fmt.Sprintf("Paid (KES %d)", p.Amount)
}

type registrationService struct {
	registrations  domain.RegistrationRepository
	events         domain.EventRepository
	payments       domain.PaymentRepository
	gateway        domain.PaymentGateway
	notifier       domain.EmailService
	validate       *validator.Validate
	logger         *slog.Logger
	contextTimeout time.Duration
	now            func() time.Time
	newRef         func() (string, error)
}

// NewRegistrationService wires the registration workflow. notifier may deliver synchronously or
// enqueue; a delivery error never undoes a stored registration.
func NewRegistrationService(
	registrations domain.RegistrationRepository,
	events domain.EventRepository,
	payments domain.PaymentRepository,
	gateway domain.PaymentGateway,
	notifier domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.RegistrationService {
	return newRegistrationService(registrations, events, payments, gateway, notifier, logger, timeout)
}

func newRegistrationService(
	registrations domain.RegistrationRepository,
	events domain.EventRepository,
	payments domain.PaymentRepository,
	gateway domain.PaymentGateway,
	notifier domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) *registrationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &registrationService{
		registrations:  registrations,
		events:         events,
		payments:       payments,
		gateway:        gateway,
		notifier:       notifier,
		validate:       newValidator(),
		logger:         logger,
		contextTimeout: timeout,
		now:            time.Now,
		newRef:         GenerateConfirmationReference,
	}
}

func (s *registrationService) Submit(ctx context.Context, eventID string, in *domain.RegistrationInput) (*domain.RegistrationResult, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if in == nil {
		return nil, fmt.Errorf("registration form is required: %w", domain.ErrInvalidInput)
	}
	form := normalizeInput(in)
	if err := validateStruct(ctx, s.validate, form); err != nil {
		return nil, err
	}

	ev, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("event %s: %w", eventID, err)
		}
		s.logger.ErrorContext(ctx, "load event for registration", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
	}
	if ev.Status == domain.EventStatusPast {
		return nil, fmt.Errorf("event %s has already taken place: %w", eventID, domain.ErrInvalidTransition)
	}

	reg, err := s.create(ctx, ev, form)
	if err != nil {
		return nil, err
	}
	result := &domain.RegistrationResult{Registration: reg, Event: ev, State: reg.State()}

	if ev.Price.IsFree() {
		result.NotificationSent = s.notify(ctx, reg, ev, freeConfirmationLabel)
		return result, nil
	}

	payment, err := s.openPayment(ctx, reg, ev)
	if err != nil {
		s.discard(ctx, reg)
		return nil, err
	}
	result.Payment = payment
	return result, nil
}

// create stores a new registration, drawing a fresh reference whenever the store reports a collision.
func (s *registrationService) create(ctx context.Context, ev *domain.Event, form *domain.RegistrationInput) (*domain.Registration, error) {
	status := domain.InitialPaymentStatus(ev.Price)
	for attempt := 1; attempt <= maxReferenceAttempts; attempt++ {
		ref, err := s.newRef()
		if err != nil {
			s.logger.ErrorContext(ctx, "generate confirmation reference", "error", err)
			return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
		}
		reg := domain.NewRegistration(ev.ID, form, ref, status, s.now().UTC())
		err = s.registrations.Create(ctx, reg)
		if err == nil {
			return reg, nil
		}
		if errors.Is(err, domain.ErrDuplicateReference) {
			s.logger.WarnContext(ctx, "confirmation reference collision", "reference", ref, "attempt", attempt)
			continue
		}
		s.logger.ErrorContext(ctx, "store registration", "event_id", ev.ID, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
	}
	return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, domain.ErrDuplicateReference)
}

func (s *registrationService) openPayment(ctx context.Context, reg *domain.Registration, ev *domain.Event) (*domain.Payment, error) {
	orderID, err := s.gateway.CreateOrder(ctx, reg, ev.Price.Amount)
	if err != nil {
		s.logger.ErrorContext(ctx, "create payment order", "reference", reg.ConfirmationRef, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
	}
	now := s.now().UTC()
	payment := &domain.Payment{
		RegistrationID: reg.ID,
		Amount:         ev.Price.Amount,
		Method:         s.gateway.Method(),
		Status:         domain.PaymentRecordPending,
		OrderID:        orderID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		s.logger.ErrorContext(ctx, "store payment", "reference", reg.ConfirmationRef, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, err)
	}
	return payment, nil
}

// discard removes a registration whose payment could not be opened so the caller can resubmit.
func (s *registrationService) discard(ctx context.Context, reg *domain.Registration) {
	if err := s.registrations.Delete(ctx, reg.ID); err != nil {
		s.logger.ErrorContext(ctx, "discard registration", "reference", reg.ConfirmationRef, "error", err)
	}
}

// notify reports whether the confirmation was handed off. Failures are logged, not returned.
func (s *registrationService) notify(ctx context.Context, reg *domain.Registration, ev *domain.Event, typeLabel string) bool {
	if s.notifier == nil {
		return false
	}
	data := domain.NewConfirmationEmailData(reg, ev, typeLabel)
	if err := s.notifier.SendRegistrationConfirmation(ctx, data); err != nil {
		s.logger.WarnContext(ctx, "registration confirmation not sent",
			"reference", reg.ConfirmationRef, "to", reg.Email, "error", err)
		return false
	}
	return true
}

func (s *registrationService) ConfirmPayment(ctx context.Context, ref string, c *domain.PaymentConfirmation) (*domain.RegistrationResult, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	if c == nil {
		c = &domain.PaymentConfirmation{}
	}
	reg, err := s.registrations.GetByReference(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", ref, err)
	}
	ev, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", reg.EventID, err)
	}
	payment, err := s.payments.GetByRegistrationID(ctx, reg.ID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("load payment: %w", err)
	}

	switch reg.PaymentStatus {
	case domain.PaymentStatusCompleted:
		return &domain.RegistrationResult{Registration: reg, Event: ev, State: reg.State(), Payment: payment}, nil
	case domain.PaymentStatusNotRequired:
		return nil, fmt.Errorf("registration %s needs no payment: %w", ref, domain.ErrInvalidTransition)
	}

	orderID := ""
	if payment != nil {
		orderID = payment.OrderID
	}
	if err := s.gateway.Verify(ctx, orderID, c); err != nil {
		s.logger.WarnContext(ctx, "payment verification failed", "reference", ref, "error", err)
		return nil, fmt.Errorf("verify payment for %s: %w", ref, err)
	}

	now := s.now().UTC()
	updated, err := s.registrations.UpdatePaymentStatus(ctx, ref, domain.PaymentStatusPending, domain.PaymentStatusCompleted, now)
	if errors.Is(err, domain.ErrInvalidTransition) {
		return s.lostConfirmation(ctx, ref, ev)
	}
	if err != nil {
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	if payment != nil {
		txRef := c.TransactionRef
		if txRef == "" {
			txRef = c.PaymentID
		}
		if err := s.payments.UpdateStatus(ctx, payment.ID, domain.PaymentRecordCompleted, txRef, now); err != nil {
			s.logger.ErrorContext(ctx, "update payment record", "payment_id", payment.ID, "error", err)
		} else {
			payment.Status = domain.PaymentRecordCompleted
			payment.TransactionRef = txRef
			payment.UpdatedAt = now
		}
	}

	result := &domain.RegistrationResult{Registration: updated, Event: ev, State: updated.State(), Payment: payment}
	result.NotificationSent = s.notify(ctx, updated, ev, PaidConfirmationLabel(ev.Price))
	return result, nil
}

// lostConfirmation handles a confirmation that raced another one for the same reference.
// The winner notifies; this caller gets the completed record without a second email.
func (s *registrationService) lostConfirmation(ctx context.Context, ref string, ev *domain.Event) (*domain.RegistrationResult, error) {
	reg, err := s.registrations.GetByReference(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", ref, err)
	}
	if reg.PaymentStatus != domain.PaymentStatusCompleted {
		return nil, fmt.Errorf("registration %s is %s: %w", ref, reg.PaymentStatus, domain.ErrInvalidTransition)
	}
	payment, err := s.payments.GetByRegistrationID(ctx, reg.ID)
	if err != nil && !isNotFound(err) {
		return nil, fmt.Errorf("load payment: %w", err)
	}
	s.logger.InfoContext(ctx, "payment already confirmed concurrently", "reference", ref)
	return &domain.RegistrationResult{Registration: reg, Event: ev, State: reg.State(), Payment: payment}, nil
}

func (s *registrationService) GetByReference(ctx context.Context, ref string) (*domain.RegistrationWithEvent, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrations.GetByReference(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("registration %s: %w", ref, err)
	}
	ev, err := s.events.GetByID(ctx, reg.EventID)
	if err != nil {
		return nil, fmt.Errorf("event %s: %w", reg.EventID, err)
	}
	return &domain.RegistrationWithEvent{Registration: reg, Event: ev, State: reg.State()}, nil
}

func (s *registrationService) List(ctx context.Context, filter domain.RegistrationFilter) ([]*domain.Registration, int, error) {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.registrations.List(ctx, filter)
}

func (s *registrationService) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, s.contextTimeout)
	defer cancel()

	return s.registrations.Delete(ctx, id)
}

// withTimeout bounds ctx by d; a non-positive d leaves ctx unbounded.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
