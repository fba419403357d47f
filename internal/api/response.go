package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shaiso/cityweather/internal/steps"
)

// ErrorCode — код ошибки API.
type ErrorCode string

const (
	ErrCodeUpstream      ErrorCode = "UPSTREAM_ERROR"
	ErrCodeTimeout       ErrorCode = "UPSTREAM_TIMEOUT"
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorResponse — структура ответа с ошибкой.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail — детали ошибки.
type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// DataResponse — структура успешного ответа.
type DataResponse struct {
	Data any `json:"data"`
}

// JSON отправляет JSON ответ.
func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Success отправляет успешный ответ с данными.
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, DataResponse{Data: data})
}

// Error отправляет ответ с ошибкой.
func Error(w http.ResponseWriter, status int, code ErrorCode, message string) {
	JSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// InternalError отправляет ошибку 500.
func InternalError(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("internal error", "error", err)
	Error(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
}

// classifyPipelineError возвращает HTTP статус и код для ошибки pipeline.
//
// Ошибки транспорта и ответов внешних API — 502, отмена/таймаут — 504,
// всё остальное — 500.
func classifyPipelineError(err error) (int, ErrorCode) {
	switch {
	case errors.Is(err, steps.ErrStepCancelled),
		errors.Is(err, steps.ErrUpstreamTimeout):
		return http.StatusGatewayTimeout, ErrCodeTimeout
	case errors.Is(err, steps.ErrTransport),
		errors.Is(err, steps.ErrMalformedResponse),
		errors.Is(err, steps.ErrResponseTooLarge),
		errors.Is(err, steps.ErrImageDecode):
		return http.StatusBadGateway, ErrCodeUpstream
	default:
		return http.StatusInternalServerError, ErrCodeInternalError
	}
}

// HandlePipelineError преобразует ошибку pipeline в JSON ответ.
func HandlePipelineError(w http.ResponseWriter, logger *slog.Logger, err error) bool {
	if err == nil {
		return false
	}

	status, code := classifyPipelineError(err)
	if code == ErrCodeInternalError {
		InternalError(w, logger, err)
		return true
	}

	logger.Warn("pipeline failed", "error", err)
	Error(w, status, code, err.Error())
	return true
}
