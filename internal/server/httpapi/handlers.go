package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/autotransformers/site/internal/common"
	"github.com/autotransformers/site/internal/logging"
	"github.com/autotransformers/site/internal/server/auth"
	"github.com/autotransformers/site/internal/server/ratelimit"
	"github.com/autotransformers/site/internal/server/users"
)

// Handler holds the dependencies for the authentication endpoints.
type Handler struct {
	service       *users.Service
	signer        *auth.CookieSigner
	limiter       *ratelimit.Limiter
	logger        logging.Logger
	sessionTTL    time.Duration
	secureCookies bool
	maxBodyBytes  int64
}

func NewHandler(service *users.Service, signer *auth.CookieSigner, limiter *ratelimit.Limiter,
	logger logging.Logger, sessionTTL time.Duration, secureCookies bool, maxBodyBytes int64) *Handler {
	return &Handler{
		service:       service,
		signer:        signer,
		limiter:       limiter,
		logger:        logger,
		sessionTTL:    sessionTTL,
		secureCookies: secureCookies,
		maxBodyBytes:  maxBodyBytes,
	}
}

type registerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	User users.PublicUser `json:"user"`
}

// decodeBody reads at most maxBodyBytes of the request body into dst. It
// writes the error response itself and reports whether decoding succeeded.
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusBadRequest, "Request too large.")
			return false
		}
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	return true
}

// allowAttempt counts the request against the caller's rate-limit window.
// Every hit counts, successful or not, and the check runs before the body
// is read.
func (h *Handler) allowAttempt(w http.ResponseWriter, r *http.Request) bool {
	ip := clientIP(r)
	if !h.limiter.Allow(ip) {
		h.logger.Warn(r.Context(), "rate limit exceeded", "ip", ip, "path", r.URL.Path)
		h.writeServiceError(w, common.ErrRateLimited)
		return false
	}
	return true
}

func (h *Handler) startSession(w http.ResponseWriter, userID string) bool {
	sessionID, err := h.service.StartSession(userID)
	if err != nil {
		h.logger.Error(context.Background(), "starting session", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error.")
		return false
	}
	http.SetCookie(w, h.signer.SessionCookie(sessionID, h.sessionTTL, h.secureCookies))
	return true
}

// sessionFromRequest extracts and verifies the session cookie. It returns
// the session ID and whether a valid one was present.
func (h *Handler) sessionFromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(auth.CookieName)
	if err != nil {
		return "", false
	}
	return h.signer.Open(c.Value)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if !h.allowAttempt(w, r) {
		return
	}

	var req registerRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.Register(r.Context(), users.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Password:  req.Password,
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if !h.startSession(w, user.ID) {
		return
	}

	h.logger.Info(r.Context(), "user registered", "userID", user.ID)
	writeJSON(w, http.StatusCreated, userResponse{User: user.Public()})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.allowAttempt(w, r) {
		return
	}

	var req loginRequest
	if !h.decodeBody(w, r, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if !h.startSession(w, user.ID) {
		return
	}

	h.logger.Info(r.Context(), "user logged in", "userID", user.ID)
	writeJSON(w, http.StatusOK, userResponse{User: user.Public()})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sessionID, ok := h.sessionFromRequest(r); ok {
		h.service.EndSession(sessionID)
	}
	http.SetCookie(w, auth.ClearCookie(h.secureCookies))
	writeNoContent(w)
}

func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	user, err := h.service.CurrentUser(r.Context(), sessionID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user.Public()})
}

// writeServiceError maps domain errors onto HTTP status codes and
// client-facing messages.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrFieldsRequired):
		writeError(w, http.StatusBadRequest, "Please fill in all fields.")
	case errors.Is(err, common.ErrEmailInvalid):
		writeError(w, http.StatusBadRequest, "Please provide a valid email.")
	case errors.Is(err, common.ErrPasswordTooShort):
		writeError(w, http.StatusBadRequest, "Password must be at least 8 characters.")
	case errors.Is(err, common.ErrEmailTaken):
		writeError(w, http.StatusConflict, "An account with this email already exists.")
	case errors.Is(err, common.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, common.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "Not authenticated.")
	case errors.Is(err, common.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many authentication attempts. Please try again later.")
	default:
		h.logger.Error(context.Background(), "handling request", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error.")
	}
}
