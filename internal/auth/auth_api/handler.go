package auth_api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"live-reservation/internal/auth"
	"live-reservation/internal/logger"
	"live-reservation/internal/session"
)

type Handler struct {
	OwnerGate   *auth.OwnerGate
	Credentials *auth.CredentialChecker
	Sessions    *session.Manager
	JWTSecret   string
	TokenTTL    time.Duration
	Logger      *logger.Logger
}

func NewHandler(gate *auth.OwnerGate, creds *auth.CredentialChecker, sessions *session.Manager, jwtSecret string, tokenTTL time.Duration, log *logger.Logger) *Handler {
	return &Handler{
		OwnerGate:   gate,
		Credentials: creds,
		Sessions:    sessions,
		JWTSecret:   jwtSecret,
		TokenTTL:    tokenTTL,
		Logger:      log,
	}
}

// OwnerLogin flips the session into owner mode when the passphrase
// matches. A wrong passphrase leaves the session untouched.
func (h *Handler) OwnerLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passphrase string `json:"passphrase"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	sess := h.Sessions.FromRequest(w, r)
	if !h.OwnerGate.Check(req.Passphrase) {
		h.Logger.Warn("AUTH", "Owner login rejected")
		respondNotice(w, http.StatusUnauthorized, "Wrong passphrase")
		return
	}

	sess.OwnerMode = true
	if err := h.Sessions.Save(r.Context(), sess); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("OwnerLogin: failed to save session: %v", err))
		respondNotice(w, http.StatusInternalServerError, "Could not start owner session")
		return
	}

	h.Logger.Info("AUTH", "Owner mode enabled for session")
	respondJSON(w, http.StatusOK, map[string]bool{"owner_mode": true})
}

func (h *Handler) OwnerLogout(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.FromRequest(w, r)
	sess.OwnerMode = false
	if err := h.Sessions.Save(r.Context(), sess); err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("OwnerLogout: failed to save session: %v", err))
	}
	respondJSON(w, http.StatusOK, map[string]bool{"owner_mode": false})
}

// Register creates a member account and returns a token right away.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	user, err := h.Credentials.Register(req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			respondNotice(w, http.StatusConflict, err.Error())
			return
		}
		respondNotice(w, http.StatusBadRequest, err.Error())
		return
	}

	token, err := auth.IssueToken(h.JWTSecret, h.TokenTTL, user.ID)
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Register: failed to issue token: %v", err))
		respondNotice(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"user": user, "token": token})
}

// Login checks member credentials and issues a token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondNotice(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	user, err := h.Credentials.Check(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondNotice(w, http.StatusUnauthorized, err.Error())
			return
		}
		h.Logger.Error("AUTH", fmt.Sprintf("Login: %v", err))
		respondNotice(w, http.StatusInternalServerError, "Could not check credentials")
		return
	}

	token, err := auth.IssueToken(h.JWTSecret, h.TokenTTL, user.ID)
	if err != nil {
		h.Logger.Error("AUTH", fmt.Sprintf("Login: failed to issue token: %v", err))
		respondNotice(w, http.StatusInternalServerError, "Could not issue token")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user, "token": token})
}

// RequireOwner gates the admin routes on the session's owner flag.
func (h *Handler) RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := h.Sessions.FromRequest(w, r)
		if !sess.OwnerMode {
			respondNotice(w, http.StatusForbidden, "Owner mode required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondNotice(w http.ResponseWriter, status int, notice string) {
	respondJSON(w, status, map[string]string{"notice": notice})
}
