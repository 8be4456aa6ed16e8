package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"lirik/internal/model"
	"lirik/internal/service"
)

type DiscoveryHandler struct {
	service service.DiscoveryService
}

func NewDiscoveryHandler(service service.DiscoveryService) *DiscoveryHandler {
	return &DiscoveryHandler{service: service}
}

type trendingResponse struct {
	Songs []model.TrendingSong `json:"songs"`
}

func (h *DiscoveryHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/discovery/trending", h.Trending)
	g.POST("/discovery/refresh", h.Refresh)
}

// Trending returns trending songs from the configured feeds.
// @Summary Trending songs
// @Description Get trending songs from the configured music feeds
// @Tags discovery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} trendingResponse
// @Failure 500 {object} errorResponse
// @Router /discovery/trending [get]
func (h *DiscoveryHandler) Trending(c echo.Context) error {
	songs, err := h.service.Trending(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	if songs == nil {
		songs = []model.TrendingSong{}
	}
	return c.JSON(http.StatusOK, trendingResponse{Songs: songs})
}

// Refresh re-fetches the configured feeds.
// @Summary Refresh trending feeds
// @Description Re-fetch all configured music feeds
// @Tags discovery
// @Produce json
// @Security BearerAuth
// @Success 200 {object} messageResponse
// @Success 202 {object} messageResponse "A refresh was already running"
// @Failure 500 {object} errorResponse
// @Router /discovery/refresh [post]
func (h *DiscoveryHandler) Refresh(c echo.Context) error {
	if err := h.service.Refresh(c.Request().Context()); err != nil {
		if errors.Is(err, service.ErrAlreadyRefreshing) {
			return c.JSON(http.StatusAccepted, messageResponse{Message: "refresh already in progress"})
		}
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "refreshed"})
}
