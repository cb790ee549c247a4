package httpx

import (
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/crakhack/crakhack-web/internal/errors"
	obserrors "github.com/crakhack/crakhack-web/internal/observability/errors"
)

// StatusClientClosedRequest is the de facto status for a client that went away mid-request.
const StatusClientClosedRequest = 499

// DetermineErrorStatus maps a service error onto an HTTP status.
//
//	configuration_missing -> 500
//	upstream_http, upstream_graphql -> 502
//	timeout -> 504
//	canceled -> 499
//	validation -> 400
//	anything else -> 500
func DetermineErrorStatus(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeUpstreamHTTP, apperrors.ErrCodeUpstreamGraphQL:
		return http.StatusBadGateway
	case apperrors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ErrCodeCanceled:
		return StatusClientClosedRequest
	case apperrors.ErrCodeValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// apiErrorBody is the JSON error shape of the analytics API.
type apiErrorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Missing []string `json:"missing,omitempty"`
	Status  int      `json:"status,omitempty"`
}

// writeServiceError logs err with its class and writes the mapped JSON error.
func writeServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status := DetermineErrorStatus(err)
	code := apperrors.GetCode(err)
	if code == "" {
		code = apperrors.ErrCodeInternal
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError && !apperrors.IsUpstream(err) {
		level = slog.LevelError
	}
	logger.Log(r.Context(), level, "request failed",
		"path", r.URL.Path,
		"status", status,
		"error_class", obserrors.Classify(err),
		"error", err,
		"request_id", RequestIDFromContext(r.Context()),
	)

	body := apiErrorBody{Error: string(code), Message: userMessage(err)}
	if apperrors.IsConfigurationMissing(err) {
		body.Missing = missingVars(err)
	}
	if apperrors.IsUpstream(err) {
		body.Status = apperrors.GetStatus(err)
	}
	WriteJSON(w, status, body)
}

// userMessage returns a message safe to expose; internal failures stay generic.
func userMessage(err error) string {
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeConfigurationMissing:
		return "Missing env vars. Required: " + strings.Join(missingVars(err), ", ") + "."
	case apperrors.ErrCodeUpstreamHTTP, apperrors.ErrCodeUpstreamGraphQL:
		return "Cloudflare API error"
	case apperrors.ErrCodeTimeout:
		return "analytics request timed out"
	case apperrors.ErrCodeCanceled:
		return "request canceled"
	case apperrors.ErrCodeValidation:
		return err.Error()
	default:
		return "internal error"
	}
}

func missingVars(err error) []string {
	field := apperrors.GetField(err)
	if field == "" {
		return nil
	}
	return strings.Split(field, ",")
}
