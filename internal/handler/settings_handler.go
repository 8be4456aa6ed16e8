package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lirik/internal/service"
	"lirik/internal/service/ai"
)

type SettingsHandler struct {
	settings    service.SettingsService
	translate   service.TranslateService
	rateLimiter *ai.RateLimiter
}

func NewSettingsHandler(settings service.SettingsService, translate service.TranslateService, rateLimiter *ai.RateLimiter) *SettingsHandler {
	return &SettingsHandler{
		settings:    settings,
		translate:   translate,
		rateLimiter: rateLimiter,
	}
}

// Request/Response types

type testAIRequest struct {
	Provider string `json:"provider"`
	APIKey   string `json:"apiKey"`
	BaseURL  string `json:"baseUrl"`
	Model    string `json:"model"`
}

type testAIResponse struct {
	Response string `json:"response"`
}

type testProxyRequest struct {
	ProxyURL string `json:"proxyUrl"`
	TestURL  string `json:"testUrl"`
}

type clearCacheResponse struct {
	Deleted int64 `json:"deleted"`
}

func (h *SettingsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/settings/ai", h.GetAISettings)
	g.PUT("/settings/ai", h.SetAISettings)
	g.POST("/settings/ai/test", h.TestAI)
	g.GET("/settings/network", h.GetNetworkSettings)
	g.PUT("/settings/network", h.SetNetworkSettings)
	g.POST("/settings/network/test", h.TestProxy)
	g.GET("/settings/discovery", h.GetDiscoverySettings)
	g.PUT("/settings/discovery", h.SetDiscoverySettings)
	g.POST("/translations/clear", h.ClearTranslationCache)
}

// GetAISettings returns the LLM configuration.
// @Summary Get AI settings
// @Description Get the LLM configuration. The API key is masked.
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.AISettings
// @Failure 500 {object} errorResponse
// @Router /settings/ai [get]
func (h *SettingsHandler) GetAISettings(c echo.Context) error {
	settings, err := h.settings.GetAISettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SetAISettings updates the LLM configuration.
// @Summary Update AI settings
// @Description Update the LLM configuration. An empty or masked API key keeps the stored one.
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.AISettings true "AI settings"
// @Success 200 {object} service.AISettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/ai [put]
func (h *SettingsHandler) SetAISettings(c echo.Context) error {
	var req service.AISettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()
	if err := h.settings.SetAISettings(ctx, &req); err != nil {
		return writeServiceError(c, err)
	}

	if req.RateLimit > 0 {
		h.rateLimiter.SetLimit(req.RateLimit)
	}

	settings, err := h.settings.GetAISettings(ctx)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// TestAI tests the LLM connection.
// @Summary Test AI connection
// @Description Send a test message through the given LLM configuration
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body testAIRequest true "Configuration to test"
// @Success 200 {object} testAIResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /settings/ai/test [post]
func (h *SettingsHandler) TestAI(c echo.Context) error {
	var req testAIRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	response, err := h.settings.TestAI(c.Request().Context(), req.Provider, req.APIKey, req.BaseURL, req.Model)
	if err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, testAIResponse{Response: response})
}

// GetNetworkSettings returns the network configuration.
// @Summary Get network settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.NetworkSettings
// @Failure 500 {object} errorResponse
// @Router /settings/network [get]
func (h *SettingsHandler) GetNetworkSettings(c echo.Context) error {
	settings, err := h.settings.GetNetworkSettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SetNetworkSettings updates the network configuration.
// @Summary Update network settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.NetworkSettings true "Network settings"
// @Success 200 {object} service.NetworkSettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/network [put]
func (h *SettingsHandler) SetNetworkSettings(c echo.Context) error {
	var req service.NetworkSettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.settings.SetNetworkSettings(c.Request().Context(), &req); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// TestProxy tests a proxy configuration without saving it.
// @Summary Test proxy
// @Description Test a proxy configuration by fetching a URL through it
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body testProxyRequest true "Proxy to test"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /settings/network/test [post]
func (h *SettingsHandler) TestProxy(c echo.Context) error {
	var req testProxyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	testURL := req.TestURL
	if testURL == "" {
		testURL = "https://www.google.com/generate_204"
	}

	if err := h.settings.TestProxy(c.Request().Context(), req.ProxyURL, testURL); err != nil {
		return c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "ok"})
}

// GetDiscoverySettings returns the trending-feed configuration.
// @Summary Get discovery settings
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.DiscoverySettings
// @Failure 500 {object} errorResponse
// @Router /settings/discovery [get]
func (h *SettingsHandler) GetDiscoverySettings(c echo.Context) error {
	settings, err := h.settings.GetDiscoverySettings(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, settings)
}

// SetDiscoverySettings updates the trending-feed configuration.
// @Summary Update discovery settings
// @Tags settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.DiscoverySettings true "Discovery settings"
// @Success 200 {object} service.DiscoverySettings
// @Failure 400 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /settings/discovery [put]
func (h *SettingsHandler) SetDiscoverySettings(c echo.Context) error {
	var req service.DiscoverySettings
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	if err := h.settings.SetDiscoverySettings(c.Request().Context(), &req); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// ClearTranslationCache deletes all cached translations.
// @Summary Clear translation cache
// @Tags settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} clearCacheResponse
// @Failure 500 {object} errorResponse
// @Router /translations/clear [post]
func (h *SettingsHandler) ClearTranslationCache(c echo.Context) error {
	deleted, err := h.translate.ClearCache(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, clearCacheResponse{Deleted: deleted})
}
