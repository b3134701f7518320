package http

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "studylog/backend/docs"
	"studylog/backend/internal/handler"
)

// MaxBodySize bounds submission bodies.
const MaxBodySize = "1M"

func NewRouter(summaryHandler *handler.SummaryHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = handler.HTTPErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(RequestLoggerMiddleware())
	e.Use(middleware.BodyLimit(MaxBodySize))

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	summaryHandler.RegisterRoutes(e.Group(""))

	return e
}
