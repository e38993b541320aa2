package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"governanceevents/internal/calendar"
	"governanceevents/internal/delivery/http/helpers"
	"governanceevents/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	events     map[string]*domain.Event
	listResult []*domain.Event
	listErr    error
	getErr     error
	createErr  error
	updateErr  error
	deleteErr  error
	syncErr    error
	syncCount  int

	lastFilter  domain.EventFilter
	lastCreate  *domain.Event
	lastUpdate  *domain.Event
	lastDelete  string
	syncInvoked bool
}

func (f *fakeEventService) ListEvents(_ context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	f.lastFilter = filter
	return f.listResult, f.listErr
}

func (f *fakeEventService) GetEvent(_ context.Context, id string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if ev, ok := f.events[id]; ok {
		return ev, nil
	}
	return nil, fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
}

func (f *fakeEventService) CreateEvent(_ context.Context, event *domain.Event) error {
	f.lastCreate = event
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = "ev-created"
	return nil
}

func (f *fakeEventService) UpdateEvent(_ context.Context, event *domain.Event) error {
	f.lastUpdate = event
	return f.updateErr
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id string) error {
	f.lastDelete = id
	return f.deleteErr
}

func (f *fakeEventService) SyncFromSource(context.Context) (int, error) {
	f.syncInvoked = true
	return f.syncCount, f.syncErr
}

func boardEvent() *domain.Event {
	return &domain.Event{
		ID:          "ev-1",
		Title:       "Board Governance Essentials",
		Description: "Line one\nLine two",
		Date:        time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		Time:        "9:00 AM - 4:00 PM",
		Location:    "Nairobi",
		Type:        domain.EventTypeTraining,
		MeetingMode: domain.MeetingModePhysical,
		Status:      domain.EventStatusUpcoming,
		Price:       domain.Paid(5000),
	}
}

func newTestEventController(svc *fakeEventService) *EventController {
	gen := calendar.Generator{Now: func() time.Time { return time.UnixMilli(1700000000000) }}
	return NewEventController(testLogger, svc, gen, time.UTC)
}

func decodeEnvelope(t *testing.T, body io.Reader, data any) *helpers.APIError {
	t.Helper()
	var envelope helpers.APIResponse
	require.NoError(t, json.NewDecoder(body).Decode(&envelope), "response must be valid JSON envelope")
	if data != nil && envelope.Data != nil {
		raw, err := json.Marshal(envelope.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, data))
	}
	return envelope.Error
}

func TestEventController_ListEvents(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		listErr    error
		wantStatus int
		wantFilter domain.EventStatus
	}{
		{name: "all", wantStatus: http.StatusOK},
		{name: "upcoming", query: "?status=Upcoming", wantStatus: http.StatusOK, wantFilter: domain.EventStatusUpcoming},
		{name: "past", query: "?status=past", wantStatus: http.StatusOK, wantFilter: domain.EventStatusPast},
		{name: "bad status", query: "?status=cancelled", wantStatus: http.StatusBadRequest},
		{name: "service error", listErr: errors.New("db error"), wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{listResult: []*domain.Event{boardEvent()}, listErr: tt.listErr}
			ctrl := newTestEventController(fake)
			req := httptest.NewRequest(http.MethodGet, "/api/events"+tt.query, nil)
			rr := httptest.NewRecorder()

			ctrl.ListEvents(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			var events []*domain.Event
			apiErr := decodeEnvelope(t, rr.Body, &events)
			if tt.wantStatus != http.StatusOK {
				require.NotNil(t, apiErr)
				return
			}
			require.Nil(t, apiErr)
			require.Len(t, events, 1)
			assert.Equal(t, "Board Governance Essentials", events[0].Title)
			assert.Equal(t, domain.Paid(5000), events[0].Price)
			assert.Equal(t, tt.wantFilter, fake.lastFilter.Status)
		})
	}
}

func TestEventController_GetEvent(t *testing.T) {
	fake := &fakeEventService{events: map[string]*domain.Event{"ev-1": boardEvent()}}
	ctrl := newTestEventController(fake)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events/ev-1", nil)
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		var ev domain.Event
		require.Nil(t, decodeEnvelope(t, rr.Body, &ev))
		assert.Equal(t, "ev-1", ev.ID)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events/missing", nil)
		req.SetPathValue("eventID", "missing")
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		apiErr := decodeEnvelope(t, rr.Body, nil)
		require.NotNil(t, apiErr)
		assert.Equal(t, helpers.ErrCodeNotFound, apiErr.Code)
		assert.Equal(t, "event not found", apiErr.Message)
	})

	t.Run("missing path value", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/events/", nil)
		rr := httptest.NewRecorder()

		ctrl.GetEvent(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestEventController_DownloadCalendar(t *testing.T) {
	fake := &fakeEventService{events: map[string]*domain.Event{"ev-1": boardEvent()}}
	ctrl := newTestEventController(fake)
	req := httptest.NewRequest(http.MethodGet, "/api/events/ev-1/calendar.ics", nil)
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()

	ctrl.DownloadCalendar(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/calendar; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, "attachment; filename=board-governance-essentials.ics", rr.Header().Get("Content-Disposition"))
	body := rr.Body.String()
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR\r\n"))
	assert.Contains(t, body, "\r\nDTSTART:20260315T090000Z\r\n")
	assert.Contains(t, body, "\r\nDTEND:20260315T160000Z\r\n")
	assert.Contains(t, body, `DESCRIPTION:Line one\nLine two`)
	assert.Contains(t, body, "\r\nUID:1700000000000-")
}

func TestEventController_CalendarLink(t *testing.T) {
	fake := &fakeEventService{events: map[string]*domain.Event{"ev-1": boardEvent()}}
	ctrl := newTestEventController(fake)
	req := httptest.NewRequest(http.MethodGet, "/api/events/ev-1/calendar-link", nil)
	req.SetPathValue("eventID", "ev-1")
	rr := httptest.NewRecorder()

	ctrl.CalendarLink(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var link CalendarLinkResponse
	require.Nil(t, decodeEnvelope(t, rr.Body, &link))
	assert.True(t, strings.HasPrefix(link.URL, "https://calendar.google.com/calendar/render?action=TEMPLATE"))
	assert.Contains(t, link.URL, "dates=20260315T090000Z%2F20260315T160000Z")
}

func TestEventController_CreateEvent(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkEvent     func(t *testing.T, event *domain.Event)
	}{
		{
			name:       "success paid",
			body:       `{"title":"Risk Workshop","date":"2026-05-02","time":"10:00 AM - 1:00 PM","type":"Workshop","meeting_mode":"online","price":3500,"meeting_link":"https://zoom.us/j/1"}`,
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, event *domain.Event) {
				assert.Equal(t, "Risk Workshop", event.Title)
				assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), event.Date)
				assert.Equal(t, domain.EventTypeWorkshop, event.Type)
				assert.Equal(t, domain.MeetingModeOnline, event.MeetingMode)
				assert.Equal(t, domain.Paid(3500), event.Price)
			},
		},
		{
			name:       "success free",
			body:       `{"title":"Intro","date":"2026-05-02","price":"free"}`,
			wantStatus: http.StatusCreated,
			checkEvent: func(t *testing.T, event *domain.Event) {
				assert.True(t, event.Price.IsFree())
			},
		},
		{
			name:           "bad date",
			body:           `{"title":"Intro","date":"02/05/2026"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "date must be YYYY-MM-DD",
		},
		{
			name:           "unknown field rejected",
			body:           `{"title":"Intro","id":"custom"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "unknown field",
		},
		{
			name:       "service validation",
			body:       `{"date":"2026-05-02"}`,
			fakeErr:    domain.NewValidationError(map[string]string{"title": "Title is required"}),
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:           "service error",
			body:           `{"title":"Intro","date":"2026-05-02"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "internal server error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeEventService{createErr: tt.fakeErr}
			ctrl := newTestEventController(fake)
			req := httptest.NewRequest(http.MethodPost, "/api/events", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.CreateEvent(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var ev domain.Event
			apiErr := decodeEnvelope(t, rr.Body, &ev)
			if tt.checkEvent != nil {
				require.Nil(t, apiErr)
				assert.Equal(t, "ev-created", ev.ID)
				tt.checkEvent(t, fake.lastCreate)
			}
			if tt.wantBodySubstr != "" {
				require.NotNil(t, apiErr)
				assert.Contains(t, apiErr.Message, tt.wantBodySubstr)
			}
		})
	}
}

func TestEventController_UpdateEvent(t *testing.T) {
	t.Run("uses path id", func(t *testing.T) {
		fake := &fakeEventService{}
		ctrl := newTestEventController(fake)
		req := httptest.NewRequest(http.MethodPut, "/api/events/ev-1", bytes.NewBufferString(`{"title":"Renamed","date":"2026-03-16"}`))
		req.SetPathValue("eventID", "ev-1")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, fake.lastUpdate)
		assert.Equal(t, "ev-1", fake.lastUpdate.ID)
		assert.Equal(t, "Renamed", fake.lastUpdate.Title)
	})

	t.Run("not found", func(t *testing.T) {
		fake := &fakeEventService{updateErr: domain.ErrNotFound}
		ctrl := newTestEventController(fake)
		req := httptest.NewRequest(http.MethodPut, "/api/events/nope", bytes.NewBufferString(`{"title":"x","date":"2026-03-16"}`))
		req.SetPathValue("eventID", "nope")
		rr := httptest.NewRecorder()

		ctrl.UpdateEvent(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestEventController_DeleteEvent(t *testing.T) {
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
			fake := &fakeEventService{deleteErr: tt.deleteErr}
			ctrl := newTestEventController(fake)
			req := httptest.NewRequest(http.MethodDelete, "/api/events/ev-1", nil)
			req.SetPathValue("eventID", "ev-1")
			rr := httptest.NewRecorder()

			ctrl.DeleteEvent(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "ev-1", fake.lastDelete)
		})
	}
}

func TestEventController_SyncEvents(t *testing.T) {
	t.Run("reports created count", func(t *testing.T) {
		fake := &fakeEventService{syncCount: 3}
		ctrl := newTestEventController(fake)
		rr := httptest.NewRecorder()

		ctrl.SyncEvents(rr, httptest.NewRequest(http.MethodPost, "/api/events/sync", nil))

		require.Equal(t, http.StatusOK, rr.Code)
		var resp SyncEventsResponse
		require.Nil(t, decodeEnvelope(t, rr.Body, &resp))
		assert.Equal(t, 3, resp.Created)
		assert.True(t, fake.syncInvoked)
	})

	t.Run("no feed configured", func(t *testing.T) {
		fake := &fakeEventService{syncErr: fmt.Errorf("%w: no event feed configured", domain.ErrInvalidInput)}
		ctrl := newTestEventController(fake)
		rr := httptest.NewRecorder()

		ctrl.SyncEvents(rr, httptest.NewRequest(http.MethodPost, "/api/events/sync", nil))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
