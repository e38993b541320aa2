package controllers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistrationService struct {
	submitResult  *domain.RegistrationResult
	submitErr     error
	confirmResult *domain.RegistrationResult
	confirmErr    error
	byRef         map[string]*domain.RegistrationWithEvent
	listResult    []*domain.Registration
	listTotal     int
	listErr       error
	deleteErr     error

	lastSubmitEventID string
	lastSubmitInput   *domain.RegistrationInput
	lastConfirmRef    string
	lastConfirmation  *domain.PaymentConfirmation
	lastFilter        domain.RegistrationFilter
	lastDeleteID      string
}

func (f *fakeRegistrationService) Submit(_ context.Context, eventID string, in *domain.RegistrationInput) (*domain.RegistrationResult, error) {
	f.lastSubmitEventID, f.lastSubmitInput = eventID, in
	return f.submitResult, f.submitErr
}

func (f *fakeRegistrationService) ConfirmPayment(_ context.Context, ref string, c *domain.PaymentConfirmation) (*domain.RegistrationResult, error) {
	f.lastConfirmRef, f.lastConfirmation = ref, c
	return f.confirmResult, f.confirmErr
}

func (f *fakeRegistrationService) GetByReference(_ context.Context, ref string) (*domain.RegistrationWithEvent, error) {
	if item, ok := f.byRef[ref]; ok {
		return item, nil
	}
	return nil, fmt.Errorf("registration %s: %w", ref, domain.ErrNotFound)
}

func (f *fakeRegistrationService) List(_ context.Context, filter domain.RegistrationFilter) ([]*domain.Registration, int, error) {
	f.lastFilter = filter
	return f.listResult, f.listTotal, f.listErr
}

func (f *fakeRegistrationService) Delete(_ context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

type fakeExporter struct {
	rows []*domain.RegistrationWithEvent
}

func (e *fakeExporter) ContentType() string   { return "application/test-sheet" }
func (e *fakeExporter) FileExtension() string { return ".xlsx" }

func (e *fakeExporter) Export(w io.Writer, rows []*domain.RegistrationWithEvent) error {
	e.rows = rows
	_, err := io.WriteString(w, "sheet")
	return err
}

type fakeSlips struct{ err error }

func (s fakeSlips) Render(w io.Writer, item *domain.RegistrationWithEvent) error {
	if s.err != nil {
		return s.err
	}
	_, err := io.WriteString(w, "%PDF "+item.Registration.ConfirmationRef)
	return err
}

func pendingRegistration() *domain.Registration {
	return &domain.Registration{
		ID:              "reg-1",
		EventID:         "ev-1",
		FullName:        "Jane Wanjiku",
		Email:           "jane@example.com",
		ConfirmationRef: "CGC-7K2M9QXA",
		PaymentStatus:   domain.PaymentStatusPending,
	}
}

func newTestRegistrationController(svc *fakeRegistrationService, events *fakeEventService, exporter *fakeExporter) *RegistrationController {
	ctrl := NewRegistrationController(testLogger, svc, events, exporter, fakeSlips{})
	ctrl.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return ctrl
}

const validRegistrationBody = `{"full_name":"Jane Wanjiku","id_passport":"12345678","gender":"female","email":"jane@example.com","phone":"+254712345678","organization":"Acme Ltd","has_emergency_contact":false}`

func TestRegistrationController_Submit(t *testing.T) {
	tests := []struct {
		name       string
		eventID    string
		body       string
		fakeErr    error
		wantStatus int
		wantCode   string
		wantFields map[string]string
	}{
		{name: "created", eventID: "ev-1", body: validRegistrationBody, wantStatus: http.StatusCreated},
		{name: "missing event id", body: validRegistrationBody, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "unknown field", eventID: "ev-1", body: `{"full_name":"x","nickname":"y"}`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{
			name:       "field errors",
			eventID:    "ev-1",
			body:       `{"full_name":""}`,
			fakeErr:    domain.NewValidationError(map[string]string{"full_name": "Full name is required"}),
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   helpers.ErrCodeValidationFailed,
			wantFields: map[string]string{"full_name": "Full name is required"},
		},
		{
			name:       "event already held",
			eventID:    "ev-past",
			body:       validRegistrationBody,
			fakeErr:    fmt.Errorf("event ev-past has already taken place: %w", domain.ErrInvalidTransition),
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{name: "event missing", eventID: "nope", body: validRegistrationBody, fakeErr: domain.ErrNotFound, wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound},
		{
			name:       "storage failure",
			eventID:    "ev-1",
			body:       validRegistrationBody,
			fakeErr:    fmt.Errorf("%w: %w", domain.ErrRegistrationFailed, errors.New("db down")),
			wantStatus: http.StatusInternalServerError,
			wantCode:   helpers.ErrCodeInternalError,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := pendingRegistration()
			reg.PaymentStatus = domain.PaymentStatusNotRequired
			fake := &fakeRegistrationService{
				submitResult: &domain.RegistrationResult{Registration: reg, State: domain.StateNotRequired, NotificationSent: true},
				submitErr:    tt.fakeErr,
			}
			ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})
			req := httptest.NewRequest(http.MethodPost, "/api/events/ev-1/registrations", bytes.NewBufferString(tt.body))
			if tt.eventID != "" {
				req.SetPathValue("eventID", tt.eventID)
			}
			rr := httptest.NewRecorder()

			ctrl.Submit(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var result domain.RegistrationResult
			apiErr := decodeEnvelope(t, rr.Body, &result)
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				assert.NotContains(t, apiErr.Message, "db down")
				if tt.wantFields != nil {
					assert.Equal(t, tt.wantFields, apiErr.Fields)
				}
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, "CGC-7K2M9QXA", result.Registration.ConfirmationRef)
			assert.Equal(t, domain.StateNotRequired, result.State)
			assert.True(t, result.NotificationSent)
			assert.Equal(t, "ev-1", fake.lastSubmitEventID)
			assert.Equal(t, "+254712345678", fake.lastSubmitInput.Phone)
		})
	}
}

func TestRegistrationController_GetByReference(t *testing.T) {
	item := &domain.RegistrationWithEvent{Registration: pendingRegistration(), Event: boardEvent(), State: domain.StatePendingPayment}
	fake := &fakeRegistrationService{byRef: map[string]*domain.RegistrationWithEvent{"CGC-7K2M9QXA": item}}
	ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})

	t.Run("reference is case insensitive", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registrations/cgc-7k2m9qxa", nil)
		req.SetPathValue("ref", "cgc-7k2m9qxa")
		rr := httptest.NewRecorder()

		ctrl.GetByReference(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var got domain.RegistrationWithEvent
		require.Nil(t, decodeEnvelope(t, rr.Body, &got))
		assert.Equal(t, domain.StatePendingPayment, got.State)
		assert.Equal(t, "ev-1", got.Event.ID)
	})

	t.Run("unknown reference", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/registrations/CGC-NOPE0000", nil)
		req.SetPathValue("ref", "CGC-NOPE0000")
		rr := httptest.NewRecorder()

		ctrl.GetByReference(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		apiErr := decodeEnvelope(t, rr.Body, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, "registration not found", apiErr.Message)
	})
}

func TestRegistrationController_ConfirmPayment(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		fakeErr     error
		wantStatus  int
		wantMethod  domain.PaymentMethod
		wantCode    string
		wantInvoked bool
	}{
		{name: "with proof", body: `{"method":"mpesa","transaction_ref":"QX123"}`, wantStatus: http.StatusOK, wantMethod: domain.PaymentMethodMpesa, wantInvoked: true},
		{name: "empty body", wantStatus: http.StatusOK, wantInvoked: true},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{name: "free registration", body: `{}`, fakeErr: domain.ErrInvalidTransition, wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict, wantInvoked: true},
		{name: "verification failed", body: `{"payment_id":"pay_1","signature":"bad"}`, fakeErr: domain.ErrPaymentVerification, wantStatus: http.StatusPaymentRequired, wantCode: helpers.ErrCodePaymentRequired, wantInvoked: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := pendingRegistration()
			reg.PaymentStatus = domain.PaymentStatusCompleted
			fake := &fakeRegistrationService{
				confirmResult: &domain.RegistrationResult{Registration: reg, State: domain.StateConfirmed, NotificationSent: true},
				confirmErr:    tt.fakeErr,
			}
			ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})
			var body io.Reader
			if tt.body != "" {
				body = bytes.NewBufferString(tt.body)
			}
			req := httptest.NewRequest(http.MethodPost, "/api/registrations/cgc-7k2m9qxa/payment", body)
			req.SetPathValue("ref", "cgc-7k2m9qxa")
			rr := httptest.NewRecorder()

			ctrl.ConfirmPayment(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var result domain.RegistrationResult
			apiErr := decodeEnvelope(t, rr.Body, &result)
			if tt.wantInvoked {
				assert.Equal(t, "CGC-7K2M9QXA", fake.lastConfirmRef)
				require.NotNil(t, fake.lastConfirmation)
				assert.Equal(t, tt.wantMethod, fake.lastConfirmation.Method)
			} else {
				assert.Empty(t, fake.lastConfirmRef)
			}
			if tt.wantCode != "" {
				require.NotNil(t, apiErr)
				assert.Equal(t, tt.wantCode, apiErr.Code)
				return
			}
			require.Nil(t, apiErr)
			assert.Equal(t, domain.StateConfirmed, result.State)
		})
	}
}

func TestRegistrationController_ConfirmationSlip(t *testing.T) {
	item := &domain.RegistrationWithEvent{Registration: pendingRegistration(), Event: boardEvent(), State: domain.StatePendingPayment}
	fake := &fakeRegistrationService{byRef: map[string]*domain.RegistrationWithEvent{"CGC-7K2M9QXA": item}}
	ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/CGC-7K2M9QXA/confirmation.pdf", nil)
	req.SetPathValue("ref", "CGC-7K2M9QXA")
	rr := httptest.NewRecorder()

	ctrl.ConfirmationSlip(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=CGC-7K2M9QXA.pdf", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF CGC-7K2M9QXA", rr.Body.String())
}

func TestRegistrationController_List(t *testing.T) {
	fake := &fakeRegistrationService{listResult: []*domain.Registration{pendingRegistration()}, listTotal: 21}
	ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})
	req := httptest.NewRequest(http.MethodGet, "/api/registrations?event_id=ev-1&q=%20jane%20&page=2&page_size=10", nil)
	rr := httptest.NewRecorder()

	ctrl.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp RegistrationListResponse
	require.Nil(t, decodeEnvelope(t, rr.Body, &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 10, Total: 21, TotalPages: 3}, resp.Pagination)
	assert.Equal(t, "ev-1", fake.lastFilter.EventID)
	assert.Equal(t, "jane", fake.lastFilter.EmailQuery)
	assert.Equal(t, domain.PaginationParams{Page: 2, PageSize: 10}, fake.lastFilter.PaginationParams)
}

func TestRegistrationController_Delete(t *testing.T) {
	tests := []struct {
		name       string
		deleteErr  error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeRegistrationService{deleteErr: tt.deleteErr}
			ctrl := newTestRegistrationController(fake, &fakeEventService{}, &fakeExporter{})
			req := httptest.NewRequest(http.MethodDelete, "/api/registrations/reg-1", nil)
			req.SetPathValue("id", "reg-1")
			rr := httptest.NewRecorder()

			ctrl.Delete(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "reg-1", fake.lastDeleteID)
		})
	}
}

func TestRegistrationController_Export(t *testing.T) {
	orphan := pendingRegistration()
	orphan.ID, orphan.EventID = "reg-2", "ev-gone"
	fake := &fakeRegistrationService{listResult: []*domain.Registration{pendingRegistration(), orphan, pendingRegistration()}}
	events := &fakeEventService{events: map[string]*domain.Event{"ev-1": boardEvent()}}
	exporter := &fakeExporter{}
	ctrl := newTestRegistrationController(fake, events, exporter)
	req := httptest.NewRequest(http.MethodGet, "/api/registrations/export.xlsx?event_id=ev-1", nil)
	rr := httptest.NewRecorder()

	ctrl.Export(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/test-sheet", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=registrations-20260301.xlsx", rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "sheet", rr.Body.String())
	assert.Equal(t, "ev-1", fake.lastFilter.EventID)
	assert.Zero(t, fake.lastFilter.PageSize, "export is not paginated")

	require.Len(t, exporter.rows, 3)
	assert.Equal(t, "ev-1", exporter.rows[0].Event.ID)
	assert.Nil(t, exporter.rows[1].Event)
	assert.Equal(t, domain.StatePendingPayment, exporter.rows[2].State)
}
