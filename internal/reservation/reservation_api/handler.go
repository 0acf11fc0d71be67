package reservation_api

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"live-reservation/internal/auth"
	"live-reservation/internal/logger"
	"live-reservation/internal/models"
	"live-reservation/internal/reservation"
	"live-reservation/internal/reservation/qr"
)

type Handler struct {
	ReservationService *reservation.ReservationService
	QR                 *qr.QRGenerator
	JWTSecret          string
	Logger             *logger.Logger
}

func NewHandler(service *reservation.ReservationService, qrGen *qr.QRGenerator, jwtSecret string, log *logger.Logger) *Handler {
	return &Handler{
		ReservationService: service,
		QR:                 qrGen,
		JWTSecret:          jwtSecret,
		Logger:             log,
	}
}

type bookingResponse struct {
	Reservation models.Reservation `json:"reservation"`
	Merged      bool               `json:"merged"`
	QRPng       string             `json:"qr_png,omitempty"` // base64 PNG
}

// Book handles the booking form submission. A bearer token, when
// present and valid, links the reservation to the member account.
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	var req reservation.BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid booking JSON: "+err.Error())
		return
	}

	if token, err := auth.ExtractTokenFromRequest(r); err == nil {
		if userID, err := auth.ParseUserID(h.JWTSecret, token); err == nil {
			req.UserID = &userID
		}
	}

	result, err := h.ReservationService.Book(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservation.ErrNameRequired),
			errors.Is(err, reservation.ErrInvalidPartySize):
			respondNotice(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, reservation.ErrEventNotFound):
			respondNotice(w, http.StatusNotFound, err.Error())
		default:
			h.Logger.Error("API", fmt.Sprintf("Book: %v", err))
			respondNotice(w, http.StatusInternalServerError, "Could not complete the reservation")
		}
		return
	}

	resp := bookingResponse{Reservation: result.Reservation, Merged: result.Merged}
	if png, err := h.QR.GenerateEncryptedQR(result.Reservation); err == nil {
		resp.QRPng = base64.StdEncoding.EncodeToString(png)
	} else {
		h.Logger.Warn("API", fmt.Sprintf("Book: QR generation failed: %v", err))
	}

	respondJSON(w, http.StatusCreated, resp)
}

// QRCode serves the confirmation QR as a PNG.
func (h *Handler) QRCode(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reservationID"), 10, 64)
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid reservation id")
		return
	}

	res, err := h.ReservationService.Reservation(id)
	if err != nil || res == nil {
		respondNotice(w, http.StatusNotFound, "Reservation not found")
		return
	}

	png, err := h.QR.GenerateEncryptedQR(*res)
	if err != nil {
		h.Logger.Error("API", fmt.Sprintf("QRCode: %v", err))
		respondNotice(w, http.StatusInternalServerError, "Could not render QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// ---------------- ADMIN ----------------

type eventReservationsResponse struct {
	Reservations []models.Reservation `json:"reservations"`
	TotalPeople  int                  `json:"total_people"`
}

// ByEvent lists an event's reservations for the owner, with the summed
// attendee count. A gone event id answers with an empty list.
func (h *Handler) ByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := strconv.ParseInt(chi.URLParam(r, "eventID"), 10, 64)
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid event id")
		return
	}

	reservations := h.ReservationService.ReservationsByEvent(eventID)
	if reservations == nil {
		reservations = []models.Reservation{}
	}
	respondJSON(w, http.StatusOK, eventReservationsResponse{
		Reservations: reservations,
		TotalPeople:  h.ReservationService.AttendeeTotal(eventID),
	})
}

// Customers is the owner's guest list across all events.
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	rows := h.ReservationService.Customers()
	if rows == nil {
		rows = []models.CustomerRow{}
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reservationID"), 10, 64)
	if err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid reservation id")
		return
	}

	if err := h.ReservationService.Cancel(r.Context(), id); err != nil {
		h.Logger.Error("API", fmt.Sprintf("Delete reservation %d: %v", id, err))
		respondNotice(w, http.StatusInternalServerError, "Could not delete reservation")
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
