package event_api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"live-reservation/internal/calendar"
	"live-reservation/internal/event"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
	"live-reservation/internal/session"
	"live-reservation/internal/siteinfo"
)

type Handler struct {
	EventService *event.EventService
	SiteInfo     *siteinfo.Service
	Sessions     *session.Manager
	Logger       *logger.Logger
}

func NewHandler(eventService *event.EventService, siteInfo *siteinfo.Service, sessions *session.Manager, log *logger.Logger) *Handler {
	return &Handler{
		EventService: eventService,
		SiteInfo:     siteInfo,
		Sessions:     sessions,
		Logger:       log,
	}
}

type topResponse struct {
	Grid     *calendar.Month `json:"grid"`
	BGImage  string          `json:"bg_image,omitempty"`
	TopImage string          `json:"top_image,omitempty"`
}

// Top renders the calendar view. Query parameters y and m deep-link a
// month and override the session's view position.
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.FromRequest(w, r)
	ctx := r.Context()

	year, month := sess.ViewYear, sess.ViewMonth
	if qy, qm := r.URL.Query().Get("y"), r.URL.Query().Get("m"); qy != "" && qm != "" {
		if py, err := strconv.Atoi(qy); err == nil {
			if pm, err := strconv.Atoi(qm); err == nil && pm >= 1 && pm <= 12 {
				year, month = py, pm
			}
		}
	}

	if year != sess.ViewYear || month != sess.ViewMonth {
		sess.ViewYear, sess.ViewMonth = year, month
		if err := h.Sessions.Save(ctx, sess); err != nil {
			h.Logger.Warn("SESSION", fmt.Sprintf("Top: failed to save view state: %v", err))
		}
	}

	events := h.EventService.EventsByMonth(ctx, year, month)
	grid, err := calendar.Build(year, month, event.EventsByDate(events))
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("Top: %v", err))
		respondNotice(w, http.StatusBadRequest, "Invalid calendar month")
		return
	}

	respondJSON(w, http.StatusOK, topResponse{
		Grid:     grid,
		BGImage:  h.SiteInfo.Get(ctx, "bg_image", ""),
		TopImage: h.SiteInfo.Get(ctx, "top_image", ""),
	})
}

// List is the public schedule, soonest first. An empty list may also
// mean the read failed; the store logs the difference.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	events := h.EventService.ListEvents(r.Context())
	if events == nil {
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}

// Detail shows one date's event and records the date on the session
// for the booking form.
func (h *Handler) Detail(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	sess := h.Sessions.FromRequest(w, r)
	ctx := r.Context()

	sess.SelectedDate = date
	if err := h.Sessions.Save(ctx, sess); err != nil {
		h.Logger.Warn("SESSION", fmt.Sprintf("Detail: failed to save selected date: %v", err))
	}

	ev := h.EventService.EventByDate(ctx, date)
	if ev == nil {
		respondNotice(w, http.StatusNotFound, "No event scheduled for "+date)
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

// ---------------- ADMIN ----------------

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	events := h.EventService.ListEventsDesc(r.Context())
	if events == nil {
		events = []models.Event{}
	}
	respondJSON(w, http.StatusOK, events)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var ev models.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid event JSON: "+err.Error())
		return
	}
	ev.ID = 0

	if err := h.EventService.CreateEvent(r.Context(), &ev); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Create event: %v", err))
		respondNotice(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, ev)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	var ev models.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid event JSON: "+err.Error())
		return
	}
	ev.ID = id

	if err := h.EventService.UpdateEvent(r.Context(), ev); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Update event %d: %v", id, err))
		respondNotice(w, http.StatusInternalServerError, "Could not update event")
		return
	}
	respondJSON(w, http.StatusOK, ev)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	if err := h.EventService.DeleteEvent(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Delete event %d: %v", id, err))
		respondNotice(w, http.StatusInternalServerError, "Could not delete event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondNotice(w http.ResponseWriter, status int, notice string) {
	respondJSON(w, status, map[string]string{"notice": notice})
}
