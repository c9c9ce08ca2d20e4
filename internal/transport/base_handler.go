package transport

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/pkg/logger"
	"github.com/go-chi/chi"
)

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

// WriteJSON writes a JSON response
func (h *BaseHandler) WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteError writes a transport-level failure in the same envelope as AppError responses.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)

	errType, code := internal.ErrorTypeValidation, internal.ErrCodeValidationFailed
	switch {
	case status == http.StatusUnauthorized:
		errType, code = internal.ErrorTypeUnauthorized, internal.ErrCodeInvalidToken
	case status >= http.StatusInternalServerError:
		errType, code = internal.ErrorTypeInternal, internal.ErrCodeInternal
	}

	h.WriteJSON(w, status, internal.Response{Error: &internal.AppError{
		Type:       errType,
		Code:       code,
		Message:    message,
		StatusCode: status,
	}})
}

// HandleServiceError writes an AppError with its own status, anything else as a 500.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	appErr, ok := internal.IsAppError(err)
	if !ok {
		h.Logger.Error("unhandled service error", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status, body := appErr.ToHTTPResponse()
	if status >= http.StatusInternalServerError {
		h.Logger.Error("service error", "code", appErr.Code, "error", appErr)
	} else {
		h.Logger.Info("request rejected", "status", status, "code", appErr.Code, "detail", appErr.GetDetailedMessage())
	}
	h.WriteJSON(w, status, body)
}

// RequireUserID returns the authenticated owner id, writing a 401 when the request has none.
func (h *BaseHandler) RequireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.Logger.Error("user not found in context", "path", r.URL.Path)
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return 0, false
	}
	return userID, true
}

// PathID parses the {id} URL parameter.
func (h *BaseHandler) PathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.Logger.Error("invalid id parameter", "id", raw)
		h.WriteError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

// DecodeJSON reads the request body into dst, writing a 400 on malformed input.
func (h *BaseHandler) DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.Logger.Error("invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
