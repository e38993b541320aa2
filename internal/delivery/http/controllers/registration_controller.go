package controllers

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"
)

// RegistrationResultSuccessResponse is the success envelope for workflow transitions.
type RegistrationResultSuccessResponse struct {
	Data  *domain.RegistrationResult `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// RegistrationListResponse is the data of GET /api/registrations.
type RegistrationListResponse struct {
	Items      []*domain.Registration `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

type RegistrationController struct {
	Logger   *slog.Logger
	Service  domain.RegistrationService
	Events   domain.EventService
	Exporter domain.RegistrationExporter
	Slips    domain.ConfirmationSlipRenderer
	now      func() time.Time
}

func NewRegistrationController(
	logger *slog.Logger,
	svc domain.RegistrationService,
	events domain.EventService,
	exporter domain.RegistrationExporter,
	slips domain.ConfirmationSlipRenderer,
) *RegistrationController {
	return &RegistrationController{
		Logger:   logger,
		Service:  svc,
		Events:   events,
		Exporter: exporter,
		Slips:    slips,
		now:      time.Now,
	}
}

// Submit godoc
// @Summary Register for an event
// @Description Validates the form and issues a confirmation reference. Free events are confirmed at once;
// @Description paid events return pending_payment with the opened payment.
// @Tags registrations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param registration body domain.RegistrationInput true "Registration form"
// @Success 201 {object} controllers.RegistrationResultSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID}/registrations [post]
func (c *RegistrationController) Submit(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var in domain.RegistrationInput
	if !helpers.DecodeAndValidate(w, r, &in) {
		return
	}
	result, err := c.Service.Submit(r.Context(), eventID, &in)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, result)
}

// GetByReference godoc
// @Summary Look up a registration by confirmation reference
// @Tags registrations
// @Produce json
// @Param ref path string true "Confirmation reference, e.g. CGC-7K2M9QXA"
// @Success 200 {object} helpers.APIResponse "data contains registration, event and state"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/registrations/{ref} [get]
func (c *RegistrationController) GetByReference(w http.ResponseWriter, r *http.Request) {
	item, ok := c.loadByReference(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// ConfirmPayment godoc
// @Summary Confirm payment of a pending registration
// @Description Completes a pending registration and sends the paid confirmation. Confirming a completed
// @Description registration again returns it unchanged.
// @Tags registrations
// @Accept json
// @Produce json
// @Param ref path string true "Confirmation reference"
// @Param payment body domain.PaymentConfirmation true "Payment proof"
// @Success 200 {object} controllers.RegistrationResultSuccessResponse
// @Failure 402 {object} helpers.APIResponse "error.code: payment_required"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Router /api/registrations/{ref}/payment [post]
func (c *RegistrationController) ConfirmPayment(w http.ResponseWriter, r *http.Request) {
	ref := strings.ToUpper(strings.TrimSpace(r.PathValue("ref")))
	if ref == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing ref")
		return
	}
	var confirmation domain.PaymentConfirmation
	if r.ContentLength != 0 && !helpers.DecodeAndValidate(w, r, &confirmation) {
		return
	}
	result, err := c.Service.ConfirmPayment(r.Context(), ref, &confirmation)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registration not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ConfirmationSlip godoc
// @Summary Download the printable confirmation slip
// @Tags registrations
// @Produce application/pdf
// @Param ref path string true "Confirmation reference"
// @Success 200 {file} file "PDF slip"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/registrations/{ref}/confirmation.pdf [get]
func (c *RegistrationController) ConfirmationSlip(w http.ResponseWriter, r *http.Request) {
	item, ok := c.loadByReference(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := c.Slips.Render(&buf, item); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registration not found")
		return
	}
	writeAttachment(w, "application/pdf", item.Registration.ConfirmationRef+".pdf", buf.Bytes())
}

// List godoc
// @Summary List registrations
// @Description Newest first. Filter by event and by an email substring.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param event_id query string false "Event ID"
// @Param q query string false "Email contains"
// @Param page query int false "Page (1-based)"
// @Param page_size query int false "Page size (max 100)"
// @Success 200 {object} helpers.APIResponse "data contains items and pagination"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/registrations [get]
func (c *RegistrationController) List(w http.ResponseWriter, r *http.Request) {
	filter := parseRegistrationFilter(r)
	filter.PaginationParams = helpers.ParsePagination(r)
	items, total, err := c.Service.List(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registrations not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, RegistrationListResponse{
		Items:      items,
		Pagination: helpers.NewPaginationMeta(filter.PaginationParams, total),
	})
}

// Delete godoc
// @Summary Delete a registration
// @Tags registrations
// @Security BearerAuth
// @Param id path string true "Registration ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/registrations/{id} [delete]
func (c *RegistrationController) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing id")
		return
	}
	if err := c.Service.Delete(r.Context(), id); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registration not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Export godoc
// @Summary Export registrations as a spreadsheet
// @Description Same filters as the listing, without pagination.
// @Tags registrations
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param event_id query string false "Event ID"
// @Param q query string false "Email contains"
// @Success 200 {file} file "XLSX workbook"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Router /api/registrations/export.xlsx [get]
func (c *RegistrationController) Export(w http.ResponseWriter, r *http.Request) {
	regs, _, err := c.Service.List(r.Context(), parseRegistrationFilter(r))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registrations not found")
		return
	}
	rows := make([]*domain.RegistrationWithEvent, 0, len(regs))
	events := map[string]*domain.Event{}
	for _, reg := range regs {
		ev, seen := events[reg.EventID]
		if !seen {
			ev, err = c.Events.GetEvent(r.Context(), reg.EventID)
			if err != nil && !isNotFound(err) {
				helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
				return
			}
			events[reg.EventID] = ev
		}
		rows = append(rows, &domain.RegistrationWithEvent{Registration: reg, Event: ev, State: reg.State()})
	}

	var buf bytes.Buffer
	if err := c.Exporter.Export(&buf, rows); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registrations not found")
		return
	}
	name := "registrations-" + c.now().UTC().Format("20060102") + c.Exporter.FileExtension()
	writeAttachment(w, c.Exporter.ContentType(), name, buf.Bytes())
}

func (c *RegistrationController) loadByReference(w http.ResponseWriter, r *http.Request) (*domain.RegistrationWithEvent, bool) {
	ref := strings.ToUpper(strings.TrimSpace(r.PathValue("ref")))
	if ref == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing ref")
		return nil, false
	}
	item, err := c.Service.GetByReference(r.Context(), ref)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "registration not found")
		return nil, false
	}
	return item, true
}

func parseRegistrationFilter(r *http.Request) domain.RegistrationFilter {
	q := r.URL.Query()
	return domain.RegistrationFilter{
		EventID:    strings.TrimSpace(q.Get("event_id")),
		EmailQuery: strings.TrimSpace(q.Get("q")),
	}
}
