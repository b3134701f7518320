package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"studylog/backend/internal/logger"
	"studylog/backend/internal/service"
)

// HealthMessage is the fixed liveness response body.
const HealthMessage = "Study summary service is running"

type SummaryHandler struct {
	service service.SummaryService
}

// summaryRequest documents the accepted body. Every field is optional.
type summaryRequest struct {
	Date    string `json:"date" example:"2025-11-20"`
	Speaker string `json:"speaker" example:"Alice"`
	Portion string `json:"portion" example:"Chapter 3"`
	Title   string `json:"title" example:"Grace"`
	Summary string `json:"summary"`
	Members string `json:"members" example:"12"`
}

func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{service: service}
}

func (h *SummaryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/", h.Health)
	g.POST("/add_summary", h.Add)
}

// Health reports that the process is up.
// @Summary Liveness check
// @Tags health
// @Produce plain
// @Success 200 {string} string "Study summary service is running"
// @Router / [get]
func (h *SummaryHandler) Health(c echo.Context) error {
	return c.String(http.StatusOK, HealthMessage)
}

// Add appends a study summary to the collection.
// @Summary Add a study summary
// @Description Normalizes the submission and appends it to study.json in the configured repository.
// @Description The body is parsed as JSON whatever the declared content type.
// @Tags summaries
// @Accept json
// @Produce json
// @Param summary body summaryRequest true "Summary submission"
// @Success 200 {object} successResponse
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /add_summary [post]
func (h *SummaryHandler) Add(c echo.Context) error {
	payload, err := decodePayload(c.Request().Body)
	if err != nil {
		return writeServiceError(c, fmt.Errorf("%w: %v", service.ErrInvalidPayload, err))
	}

	entry, err := h.service.Add(c.Request().Context(), payload)
	if err != nil {
		return writeServiceError(c, err)
	}

	logger.Debug("summary saved",
		"module", "handler",
		"action", "add",
		"resource", "summary",
		"result", "ok",
		"date", entry.Date,
	)
	return c.JSON(http.StatusOK, successResponse{Success: true, Message: "Saved to GitHub"})
}

// decodePayload parses body as a single JSON object, ignoring Content-Type.
func decodePayload(body io.Reader) (map[string]any, error) {
	if body == nil {
		return nil, errors.New("empty body")
	}
	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("empty body")
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after JSON value")
	}
	payload, ok := value.(map[string]any)
	if !ok {
		return nil, errors.New("body must be a JSON object")
	}
	return payload, nil
}
