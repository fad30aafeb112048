package handlers

import (
	"net/http"

	"github.com/upb/casting-agency/services"
	"github.com/upb/casting-agency/utils"
	"go.uber.org/zap"
)

// HandleServiceError maps domain errors to problem responses
func HandleServiceError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	if err == nil {
		return
	}

	details := services.GetErrorDetails(err)
	message := errorMessage(err)

	var writeErr error
	switch {
	case services.IsNotFoundError(err):
		writeErr = utils.WriteNotFound(w, r, message)

	case services.IsValidationError(err):
		writeErr = utils.WriteBadRequest(w, r, message, details)

	case services.IsConflictError(err):
		writeErr = utils.WriteConflict(w, r, message)

	case services.IsInternalError(err):
		logger.Error("internal server error",
			zap.String("request_id", requestID(r)),
			zap.String("path", r.URL.Path),
			zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, r, "An internal error occurred.")

	default:
		logger.Error("unhandled error type",
			zap.String("request_id", requestID(r)),
			zap.String("error_type", string(services.GetErrorType(err))),
			zap.Error(err))
		writeErr = utils.WriteInternalServerError(w, r, "An unexpected error occurred.")
	}

	if writeErr != nil {
		logger.Error("failed to write error response", zap.Error(writeErr))
	}
}

// HandleValidationError handles validation errors from request parsing
func HandleValidationError(w http.ResponseWriter, r *http.Request, err error, logger *zap.Logger) {
	var details map[string]interface{}
	message := err.Error()

	if utils.IsValidationError(err) {
		fields := utils.GetValidationFields(err)
		details = make(map[string]interface{}, len(fields))
		for k, v := range fields {
			details[k] = v
		}
		message = "Validation failed"
	}

	if err := utils.WriteBadRequest(w, r, message, details); err != nil {
		logger.Error("failed to write validation error response", zap.Error(err))
	}
}

// errorMessage returns the client-facing message of a domain error
func errorMessage(err error) string {
	if msg := services.GetErrorMessage(err); msg != "" {
		return msg
	}
	return err.Error()
}
