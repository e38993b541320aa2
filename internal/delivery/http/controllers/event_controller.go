package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"governanceevents/internal/calendar"
	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"
)

// EventRequest is the request body for POST /api/events and PUT /api/events/{eventID}.
type EventRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Date        string       `json:"date" example:"2026-03-15"`
	Time        string       `json:"time" example:"9:00 AM - 4:00 PM"`
	Location    string       `json:"location"`
	Type        string       `json:"type" example:"training"`
	MeetingMode string       `json:"meeting_mode" example:"physical"`
	Status      string       `json:"status" example:"upcoming"`
	Price       domain.Price `json:"price" swaggertype:"string" example:"free"`
	MeetingLink string       `json:"meeting_link"`
	MeetingID   string       `json:"meeting_id"`
}

// Validate implements Validator. Enum and required-field rules live in the service.
func (e EventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(e.Date) != "" {
		if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(e.Date)); err != nil {
			errs = append(errs, "date must be YYYY-MM-DD")
		}
	}
	return errs
}

func (e EventRequest) toDomain(id string, loc *time.Location) *domain.Event {
	var date time.Time
	if s := strings.TrimSpace(e.Date); s != "" {
		date, _ = time.ParseInLocation(domain.DateLayout, s, loc)
	}
	return &domain.Event{
		ID:          id,
		Title:       e.Title,
		Description: e.Description,
		Date:        date,
		Time:        strings.TrimSpace(e.Time),
		Location:    e.Location,
		Type:        domain.EventType(strings.ToLower(strings.TrimSpace(e.Type))),
		MeetingMode: domain.MeetingMode(strings.ToLower(strings.TrimSpace(e.MeetingMode))),
		Status:      domain.EventStatus(strings.ToLower(strings.TrimSpace(e.Status))),
		Price:       e.Price,
		MeetingLink: strings.TrimSpace(e.MeetingLink),
		MeetingID:   strings.TrimSpace(e.MeetingID),
	}
}

// EventSuccessResponse is the success envelope for single-event responses.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success envelope for GET /api/events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CalendarLinkResponse carries the Google Calendar deep link for an event.
type CalendarLinkResponse struct {
	URL string `json:"url"`
}

// SyncEventsResponse reports how many feed events were imported.
type SyncEventsResponse struct {
	Created int `json:"created"`
}

type EventController struct {
	Logger   *slog.Logger
	Service  domain.EventService
	Calendar calendar.Generator
	// Location is the zone event dates in requests are read in.
	Location *time.Location
}

func NewEventController(logger *slog.Logger, svc domain.EventService, gen calendar.Generator, loc *time.Location) *EventController {
	if loc == nil {
		loc = time.UTC
	}
	return &EventController{
		Logger:   logger,
		Service:  svc,
		Calendar: gen,
		Location: loc,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Lists published events ordered by date. Optional status filter.
// @Tags events
// @Produce json
// @Param status query string false "upcoming or past"
// @Success 200 {object} controllers.EventListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	status := domain.EventStatus(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("status"))))
	if status != "" && status != domain.EventStatusUpcoming && status != domain.EventStatusPast {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "status must be upcoming or past")
		return
	}
	events, err := c.Service.ListEvents(r.Context(), domain.EventFilter{Status: status})
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "events not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// GetEvent godoc
// @Summary Get an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DownloadCalendar godoc
// @Summary Download an event as an iCal file
// @Description Returns a single-event VCALENDAR as an attachment named after the event title.
// @Tags events
// @Produce text/calendar
// @Param eventID path string true "Event ID"
// @Success 200 {string} string "iCal document"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventID}/calendar.ics [get]
func (c *EventController) DownloadCalendar(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	body := c.Calendar.GenerateICS(calendar.FromDomain(event))
	writeAttachment(w, calendar.ContentType, calendar.Filename(calendar.Stem(event.Title, "event-"+event.ID)), []byte(body))
}

// CalendarLink godoc
// @Summary Get a Google Calendar link for an event
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data.url is the Google Calendar link"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventID}/calendar-link [get]
func (c *EventController) CalendarLink(w http.ResponseWriter, r *http.Request) {
	event, ok := c.loadEvent(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CalendarLinkResponse{URL: calendar.GoogleCalendarURL(calendar.FromDomain(event))})
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body EventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /api/events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toDomain("", c.Location)
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// UpdateEvent godoc
// @Summary Replace an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param event body EventRequest true "Event data"
// @Success 200 {object} controllers.EventSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 422 {object} helpers.APIResponse "error.code: validation_failed"
// @Router /api/events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req EventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event := req.toDomain(eventID, c.Location)
	if err := c.Service.UpdateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Router /api/events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncEvents godoc
// @Summary Import events from the configured feed
// @Description Creates feed events not stored yet, matched by title and date.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} helpers.APIResponse "data.created is the number of imported events"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/events/sync [post]
func (c *EventController) SyncEvents(w http.ResponseWriter, r *http.Request) {
	created, err := c.Service.SyncFromSource(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event feed not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SyncEventsResponse{Created: created})
}

func (c *EventController) loadEvent(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return nil, false
	}
	event, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err, "event not found")
		return nil, false
	}
	return event, true
}
