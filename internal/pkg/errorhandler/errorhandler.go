package errorhandler

import (
	"context"
	"net/http"

	"github.com/storefront/imgupload/internal/pkg/logger"
	"github.com/storefront/imgupload/internal/pkg/response"
)

// HandleError logs the failure with the request's logger and writes the error envelope.
// Server errors (5xx) expose the underlying error text in the message field; client
// errors only carry the localized message.
func HandleError(ctx context.Context, w http.ResponseWriter, status int, code, message string, err error) {
	l := logger.FromContext(ctx)
	event := l.Warn()
	if status >= http.StatusInternalServerError {
		event = l.Error()
	}

	event = event.
		Str("error_code", code).
		Str("error_message", message).
		Int("status_code", status)
	if err != nil {
		event = event.Err(err)
	}
	event.Msg("Request error")

	if status >= http.StatusInternalServerError {
		response.ErrorWithCause(w, status, code, message, err)
		return
	}
	response.Error(w, status, code, message)
}

// HandlePanicError logs a recovered panic and answers with a generic 500.
func HandlePanicError(ctx context.Context, w http.ResponseWriter, panicErr interface{}, stackTrace string) {
	logger.FromContext(ctx).Error().
		Interface("panic_error", panicErr).
		Str("panic_stack", stackTrace).
		Msg("Request panic error")

	response.InternalError(w)
}
