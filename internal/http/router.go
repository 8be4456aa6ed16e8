package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "lirik/docs"
	"lirik/internal/handler"
	"lirik/internal/service"
)

// NewRouter wires the HTTP surface: public auth and share routes, the
// JWT-protected API, swagger, and the SPA static assets.
func NewRouter(
	authService service.AuthService,
	authHandler *handler.AuthHandler,
	songsHandler *handler.SongsHandler,
	lyricsHandler *handler.LyricsHandler,
	settingsHandler *handler.SettingsHandler,
	discoveryHandler *handler.DiscoveryHandler,
	staticDir string,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(RequestLoggerMiddleware())

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes: auth bootstrap and shared lyrics pages
	authHandler.RegisterPublicRoutes(api)
	songsHandler.RegisterPublicRoutes(api)

	// Everything else requires a valid token
	protected := api.Group("", JWTAuthMiddleware(authService))
	authHandler.RegisterProtectedRoutes(protected)
	songsHandler.RegisterRoutes(protected)
	lyricsHandler.RegisterRoutes(protected)
	settingsHandler.RegisterRoutes(protected)
	discoveryHandler.RegisterRoutes(protected)

	registerStatic(e, staticDir)

	return e
}
