package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"lirik/internal/model"
	"lirik/internal/service"
)

type SongsHandler struct {
	service service.LyricsService
}

func NewSongsHandler(service service.LyricsService) *SongsHandler {
	return &SongsHandler{service: service}
}

type songListResponse struct {
	Songs []model.Song `json:"songs"`
}

type sharedSongResponse struct {
	Title  string  `json:"title"`
	Artist *string `json:"artist"`
	Lyrics string  `json:"lyrics"`
}

// RegisterRoutes registers the protected song routes.
func (h *SongsHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/songs", h.List)
	g.POST("/songs", h.Create)
	g.GET("/songs/:id", h.Get)
	g.PUT("/songs/:id", h.Update)
	g.DELETE("/songs/:id", h.Delete)
}

// RegisterPublicRoutes registers the public share route.
func (h *SongsHandler) RegisterPublicRoutes(g *echo.Group) {
	g.GET("/share/:token", h.GetShared)
}

// List returns all saved songs.
// @Summary List songs
// @Description List all saved songs, newest first
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} songListResponse
// @Failure 500 {object} errorResponse
// @Router /songs [get]
func (h *SongsHandler) List(c echo.Context) error {
	songs, err := h.service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, err)
	}
	if songs == nil {
		songs = []model.Song{}
	}
	return c.JSON(http.StatusOK, songListResponse{Songs: songs})
}

// Create saves a new song.
// @Summary Create song
// @Description Save a song. The lyrics are run through the cleanup pipeline.
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.SongInput true "Song"
// @Success 201 {object} model.Song
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /songs [post]
func (h *SongsHandler) Create(c echo.Context) error {
	var input service.SongInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	song, err := h.service.Create(c.Request().Context(), input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, song)
}

// Get returns a saved song.
// @Summary Get song
// @Description Get a saved song by ID
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Song ID"
// @Success 200 {object} model.Song
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /songs/{id} [get]
func (h *SongsHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
	}

	song, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}

// Update updates a saved song.
// @Summary Update song
// @Description Update a saved song. The lyrics are re-cleaned.
// @Tags songs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Song ID"
// @Param request body service.SongInput true "Song"
// @Success 200 {object} model.Song
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /songs/{id} [put]
func (h *SongsHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
	}

	var input service.SongInput
	if err := c.Bind(&input); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	song, err := h.service.Update(c.Request().Context(), id, input)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}

// Delete removes a saved song.
// @Summary Delete song
// @Description Delete a saved song and its cached translations
// @Tags songs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Song ID"
// @Success 200 {object} messageResponse
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /songs/{id} [delete]
func (h *SongsHandler) Delete(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
	}

	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "deleted"})
}

// GetShared returns a song by its public share token.
// @Summary Get shared song
// @Description Get a song's lyrics by its public share token. No authentication required.
// @Tags songs
// @Produce json
// @Param token path string true "Share token"
// @Success 200 {object} sharedSongResponse
// @Failure 404 {object} errorResponse
// @Router /share/{token} [get]
func (h *SongsHandler) GetShared(c echo.Context) error {
	song, err := h.service.GetByShareToken(c.Request().Context(), c.Param("token"))
	if err != nil {
		return writeServiceError(c, err)
	}

	// Shared view exposes the lyrics only, not the library record
	return c.JSON(http.StatusOK, sharedSongResponse{
		Title:  song.Title,
		Artist: song.Artist,
		Lyrics: song.Lyrics,
	})
}
