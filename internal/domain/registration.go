package domain

import (
	"context"
	"time"
)

// Gender values accepted by the registration form.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// PaymentStatus tracks whether a registration's payment has cleared.
type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusCompleted   PaymentStatus = "completed"
	PaymentStatusNotRequired PaymentStatus = "not_required"
)

// Valid reports whether s is one of the known payment statuses.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusNotRequired:
		return true
	}
	return false
}

// InitialPaymentStatus is not_required for free events and pending for paid ones.
func InitialPaymentStatus(p Price) PaymentStatus {
	if p.IsFree() {
		return PaymentStatusNotRequired
	}
	return PaymentStatusPending
}

// RegistrationState is the workflow position of a registration:
// draft -> submitted -> {not_required | pending_payment -> confirmed}.
type RegistrationState string

const (
	StateDraft          RegistrationState = "draft"
	StateSubmitted      RegistrationState = "submitted"
	StateNotRequired    RegistrationState = "not_required"
	StatePendingPayment RegistrationState = "pending_payment"
	StateConfirmed      RegistrationState = "confirmed"
)

// Confirmed reports whether the state counts as a confirmed booking for display.
func (s RegistrationState) Confirmed() bool {
	return s == StateNotRequired || s == StateConfirmed
}

// EmergencyContact is present only when the registrant opts in.
type EmergencyContact struct {
	FullName     string `json:"full_name" validate:"max=100"`
	Relationship string `json:"relationship" validate:"max=100"`
	Email        string `json:"email" validate:"omitempty,email,max=255"`
	Phone        string `json:"phone" validate:"omitempty,phone,max=20"`
}

// Registration is one form submission for one event.
// swagger:model Registration
type Registration struct {
	ID               string            `json:"id"`
	EventID          string            `json:"event_id"`
	FullName         string            `json:"full_name"`
	IDPassport       string            `json:"id_passport"`
	Gender           Gender            `json:"gender"`
	Email            string            `json:"email"`
	Phone            string            `json:"phone"`
	Organization     string            `json:"organization"`
	EmergencyContact *EmergencyContact `json:"emergency_contact,omitempty"`
	ConfirmationRef  string            `json:"confirmation_ref"`
	PaymentStatus    PaymentStatus     `json:"payment_status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// NewRegistration builds a registration from validated input. ID is set by the repository on create.
func NewRegistration(eventID string, in *RegistrationInput, ref string, status PaymentStatus, createdAt time.Time) *Registration {
	reg := &Registration{
		EventID:         eventID,
		FullName:        in.FullName,
		IDPassport:      in.IDPassport,
		Gender:          Gender(in.Gender),
		Email:           in.Email,
		Phone:           in.Phone,
		Organization:    in.Organization,
		ConfirmationRef: ref,
		PaymentStatus:   status,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	if in.HasEmergencyContact && in.EmergencyContact != nil {
		ec := *in.EmergencyContact
		reg.EmergencyContact = &ec
	}
	return reg
}

// State derives the workflow state from the stored payment status.
func (r *Registration) State() RegistrationState {
	switch r.PaymentStatus {
	case PaymentStatusNotRequired:
		return StateNotRequired
	case PaymentStatusPending:
		return StatePendingPayment
	case PaymentStatusCompleted:
		return StateConfirmed
	}
	return StateSubmitted
}

// Clone returns a deep copy so snapshots never alias stored records.
func (r *Registration) Clone() *Registration {
	c := *r
	if r.EmergencyContact != nil {
		ec := *r.EmergencyContact
		c.EmergencyContact = &ec
	}
	return &c
}

// RegistrationInput is the registration form as submitted, before validation.
type RegistrationInput struct {
	FullName            string            `json:"full_name" validate:"required,max=100"`
	IDPassport          string            `json:"id_passport" validate:"required,max=50"`
	Gender              string            `json:"gender" validate:"required,oneof=male female other"`
	Email               string            `json:"email" validate:"required,email,max=255"`
	Phone               string            `json:"phone" validate:"required,phone,max=20"`
	Organization        string            `json:"organization" validate:"required,max=200"`
	HasEmergencyContact bool              `json:"has_emergency_contact"`
	EmergencyContact    *EmergencyContact `json:"emergency_contact,omitempty"`
}

// RegistrationFilter narrows admin registration listings.
type RegistrationFilter struct {
	EventID    string
	EmailQuery string
	PaginationParams
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	// Create stores reg and sets its ID. Returns ErrDuplicateReference if the confirmation reference is taken.
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	GetByReference(ctx context.Context, ref string) (*Registration, error)
	// List returns a snapshot page of matching registrations, newest first, and the total match count.
	List(ctx context.Context, filter RegistrationFilter) ([]*Registration, int, error)
	// UpdatePaymentStatus moves the payment status from one value to another atomically.
	// Returns ErrNotFound for an unknown reference and ErrInvalidTransition when the current status is not from.
	UpdatePaymentStatus(ctx context.Context, ref string, from, to PaymentStatus, updatedAt time.Time) (*Registration, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationWithEvent bundles a registration with its related event.
type RegistrationWithEvent struct {
	Registration *Registration     `json:"registration"`
	Event        *Event            `json:"event"`
	State        RegistrationState `json:"state"`
}

// RegistrationResult is returned by workflow transitions.
type RegistrationResult struct {
	Registration     *Registration     `json:"registration"`
	Event            *Event            `json:"event"`
	State            RegistrationState `json:"state"`
	NotificationSent bool              `json:"notification_sent"`
	Payment          *Payment          `json:"payment,omitempty"`
}

// RegistrationService runs the registration workflow and admin registration management.
type RegistrationService interface {
	// Submit validates the form, stores the registration and, for free events, sends the confirmation.
	Submit(ctx context.Context, eventID string, in *RegistrationInput) (*RegistrationResult, error)
	// ConfirmPayment moves a pending registration to completed and sends the paid confirmation.
	ConfirmPayment(ctx context.Context, ref string, confirmation *PaymentConfirmation) (*RegistrationResult, error)
	GetByReference(ctx context.Context, ref string) (*RegistrationWithEvent, error)
	List(ctx context.Context, filter RegistrationFilter) ([]*Registration, int, error)
	Delete(ctx context.Context, id string) error
}
