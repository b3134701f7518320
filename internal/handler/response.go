package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"studylog/backend/internal/logger"
	"studylog/backend/internal/service"
)

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// invalidPayloadMessage prefixes every 400 answer.
const invalidPayloadMessage = "Invalid JSON payload"

// writeServiceError maps service failures to the JSON error envelope. The raw
// error text is returned to the caller and logged.
func writeServiceError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrInvalidPayload) {
		detail := strings.TrimPrefix(err.Error(), service.ErrInvalidPayload.Error())
		logger.Warn("invalid payload",
			"module", "handler",
			"action", "add",
			"resource", "summary",
			"result", "rejected",
			"error", err,
		)
		return Error(c, http.StatusBadRequest, invalidPayloadMessage+detail)
	}

	result := "failed"
	switch {
	case errors.Is(err, service.ErrConfig):
		result = "unconfigured"
	case errors.Is(err, service.ErrConflict):
		result = "conflict"
	case errors.Is(err, service.ErrCorruptStore):
		result = "corrupt"
	}

	logger.Error("request failed",
		"module", "handler",
		"action", "add",
		"resource", "summary",
		"result", result,
		"path", c.Request().URL.Path,
		"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		"error", err,
	)
	return Error(c, http.StatusInternalServerError, err.Error())
}

// Error returns a JSON error envelope with the given status and message.
func Error(c echo.Context, status int, message string) error {
	return c.JSON(status, errorResponse{Success: false, Error: message})
}

// HTTPErrorHandler renders errors raised outside handlers (routing, body
// limits, recovered panics) in the same envelope. Server errors are 500 and
// an oversized body is a rejected payload.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	message := http.StatusText(status)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = fmt.Sprint(he.Message)
	}
	switch {
	case status == http.StatusRequestEntityTooLarge:
		status = http.StatusBadRequest
		message = invalidPayloadMessage + ": request body too large"
	case status >= http.StatusInternalServerError:
		status = http.StatusInternalServerError
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = Error(c, status, message)
	}
	if err != nil {
		logger.Error("write error response", "module", "handler", "action", "respond", "result", "failed", "error", err)
	}
}
