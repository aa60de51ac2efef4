package utils

import (
	"encoding/json"
	"net/http"

	"product-catalog/pkg/apperror"

	"go.uber.org/zap"
)

type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Data    any          `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code   string `json:"code"`
	Detail any    `json:"detail,omitempty"`
}

// ResponseJSON writes the envelope with a custom status code
func ResponseJSON(w http.ResponseWriter, code int, success bool, message string, data any, errDetail *ErrorDetail) {
	response := Response{
		Success: success,
		Message: message,
		Data:    data,
		Error:   errDetail,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(response)
}

// ------------- Success responses -------------

// returns 200 OK
func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

// returns 201 Created
func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ------------- Error responses -------------

// ResponseError renders any error as the failure envelope. Unknown errors are logged and reduced to SERVER_001.
func ResponseError(w http.ResponseWriter, log *zap.Logger, err error) {
	appErr := apperror.From(err)
	status := apperror.HTTPStatus(appErr)

	detail := appErr.Detail
	if appErr.Kind == apperror.KindUnexpected {
		log.Error("Unexpected error", zap.Error(err))
		detail = nil
	} else if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.Error(err))
	} else {
		log.Warn("Request rejected",
			zap.String("code", appErr.Code),
			zap.String("message", appErr.Message),
		)
	}

	ResponseJSON(w, status, false, appErr.Message, nil, &ErrorDetail{
		Code:   appErr.Code,
		Detail: detail,
	})
}

// returns 401 Unauthorized
func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseJSON(w, http.StatusUnauthorized, false, message, nil, &ErrorDetail{
		Code: apperror.CodeInvalidCredentials,
	})
}
