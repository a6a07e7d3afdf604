package server

import (
	"errors"
	"net/http"

	"medicue/internal/handler"
	"medicue/internal/middleware"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

func NewRouter(app *App) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler(app.Logger)

	e.Use(echomw.RequestID())
	e.Use(middleware.RequestLogger(app.Logger))
	e.Use(middleware.Recovery(app.Logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: app.Config.CORSOrigins,
	}))

	requireAuth := middleware.AuthJWT(app.Sessions, app.Logger)

	api := e.Group("/api")
	app.Health.RegisterRoutes(api)
	app.Auth.RegisterRoutes(api.Group("/auth"), requireAuth)
	app.Analysis.RegisterRoutes(api, requireAuth)

	return e
}

// echo側のエラー（404/405など）もhandlerと同じ {"error": "..."} で返す
func httpErrorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status := http.StatusInternalServerError
		msg := "internal error"

		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			if m, ok := he.Message.(string); ok && m != "" {
				msg = m
			} else {
				msg = http.StatusText(status)
			}
		}

		//5xxは中身を見せない
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("unhandled error")
			msg = "internal error"
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, handler.ErrorResponse{Error: msg})
		}
		if werr != nil {
			logger.Error().Err(werr).Msg("write error response")
		}
	}
}
