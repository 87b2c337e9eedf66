package handler

import (
	"log/slog"
	"net/http"

	"radioboard/config"
	"radioboard/web"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// NewServer builds the echo instance: every route sits behind the basic-auth gate.
func (h *Handler) NewServer(auth config.AuthConfig) (*echo.Echo, error) {
	renderer, err := web.NewTemplateRegistry()
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = renderer
	e.HTTPErrorHandler = customHTTPErrorHandler

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency, "request_id", v.RequestID}
			if v.Error != nil {
				slog.Warn("request", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.Info("request", attrs...)
			return nil
		},
	}))
	e.Use(middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Realm:     "Login Required",
		Validator: credentialValidator(auth),
	}))
	e.Use(flashMiddleware(h.FlashSecret))

	// Frontend
	e.GET("/", h.GetPrograms)
	e.GET("/program/:program", h.GetProgram)
	e.GET("/api/program/:program", h.GetProgramJSON)
	e.GET("/healthz", h.Health)
	e.StaticFS("/static", web.Assets())

	// Admin
	e.GET("/admin", h.GetAdminDashboard)
	e.GET("/admin/:program", h.GetAdminInput)
	e.POST("/admin/:program/add", h.NewPost)
	e.POST("/admin/:program/publish", h.PublishPosts)
	e.GET("/post/:id/edit", h.GetEditPostForm)
	e.POST("/post/:id/edit", h.EditPost)
	e.Match([]string{http.MethodGet, http.MethodPost}, "/post/:id/delete", h.DeletePost)

	return e, nil
}
