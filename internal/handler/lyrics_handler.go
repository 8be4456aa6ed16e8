package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"lirik/internal/model"
	"lirik/internal/service"
)

type LyricsHandler struct {
	lyrics    service.LyricsService
	translate service.TranslateService
	extract   service.ExtractService
}

func NewLyricsHandler(lyrics service.LyricsService, translate service.TranslateService, extract service.ExtractService) *LyricsHandler {
	return &LyricsHandler{
		lyrics:    lyrics,
		translate: translate,
		extract:   extract,
	}
}

// Request/Response types

type searchRequest struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type searchResponse struct {
	Results []model.SearchResult `json:"results"`
}

type previewRequest struct {
	URL string `json:"url"`
}

type cleanRequest struct {
	Text string `json:"text"`
}

type cleanResponse struct {
	Lyrics string `json:"lyrics"`
}

type extractRequest struct {
	URL    string `json:"url"`
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

type translationResponse struct {
	Translation string `json:"translation"`
	Direction   string `json:"direction"`
	Cached      bool   `json:"cached"`
}

func (h *LyricsHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/lyrics/search", h.Search)
	g.POST("/lyrics/preview", h.Preview)
	g.POST("/lyrics/clean", h.Clean)
	g.POST("/lyrics/extract", h.Extract)
	g.POST("/songs/:id/translate", h.Translate)
	g.POST("/songs/:id/refine", h.Refine)
}

// Search finds candidate lyrics pages for a song.
// @Summary Search lyrics pages
// @Description Run a web search for pages carrying the song's lyrics
// @Tags lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body searchRequest true "Search query"
// @Success 200 {object} searchResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /lyrics/search [post]
func (h *LyricsHandler) Search(c echo.Context) error {
	var req searchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	results, err := h.lyrics.Search(c.Request().Context(), req.Title, req.Artist)
	if err != nil {
		return writeServiceError(c, err)
	}
	if results == nil {
		results = []model.SearchResult{}
	}
	return c.JSON(http.StatusOK, searchResponse{Results: results})
}

// Preview fetches a lyrics page and returns the cleaned lyrics.
// @Summary Preview lyrics page
// @Description Fetch a lyrics page, extract and clean its lyrics without saving
// @Tags lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body previewRequest true "Page URL"
// @Success 200 {object} service.LyricsPreview
// @Failure 400 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /lyrics/preview [post]
func (h *LyricsHandler) Preview(c echo.Context) error {
	var req previewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	preview, err := h.lyrics.Preview(c.Request().Context(), req.URL)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, preview)
}

// Clean runs raw text through the lyrics cleanup pipeline.
// @Summary Clean lyrics text
// @Description Strip section markers, chord lines and duplicated sections from pasted lyrics
// @Tags lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body cleanRequest true "Raw text"
// @Success 200 {object} cleanResponse
// @Failure 400 {object} errorResponse
// @Router /lyrics/clean [post]
func (h *LyricsHandler) Clean(c echo.Context) error {
	var req cleanRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	return c.JSON(http.StatusOK, cleanResponse{Lyrics: h.lyrics.Clean(req.Text)})
}

// Extract pulls lyrics from a page using the LLM.
// @Summary Extract lyrics with LLM
// @Description Fetch a page and ask the configured LLM to extract the lyrics. Fallback for pages the mechanical pipeline cannot handle.
// @Tags lyrics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body extractRequest true "Page and song info"
// @Success 200 {object} cleanResponse
// @Failure 400 {object} errorResponse
// @Failure 412 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /lyrics/extract [post]
func (h *LyricsHandler) Extract(c echo.Context) error {
	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request"})
	}

	ctx := c.Request().Context()
	page, err := h.extract.ExtractPage(ctx, req.URL)
	if err != nil {
		return writeServiceError(c, err)
	}

	extracted, err := h.translate.ExtractLyrics(ctx, page.Text, req.Title, req.Artist)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, cleanResponse{Lyrics: extracted})
}

// Translate translates a saved song's lyrics.
// @Summary Translate song
// @Description Translate a song's lyrics between English and Indonesian. Returns the cached result if available, otherwise streams the response.
// @Tags lyrics
// @Produce json
// @Produce text/event-stream
// @Security BearerAuth
// @Param id path string true "Song ID"
// @Success 200 {object} translationResponse "Cached translation"
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 412 {object} errorResponse
// @Router /songs/{id}/translate [post]
func (h *LyricsHandler) Translate(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
	}

	ctx := c.Request().Context()
	song, err := h.lyrics.Get(ctx, id)
	if err != nil {
		return writeServiceError(c, err)
	}

	direction, _ := h.translate.Direction(song)

	// Check cache first
	cached, err := h.translate.GetCachedTranslation(ctx, id, direction)
	if err != nil {
		c.Logger().Errorf("get cached translation: %v", err)
	}
	if cached != nil {
		return c.JSON(http.StatusOK, translationResponse{
			Translation: cached.Content,
			Direction:   direction,
			Cached:      true,
		})
	}

	textCh, errCh, err := h.translate.TranslateStream(ctx, song)
	if err != nil {
		return writeServiceError(c, err)
	}

	// Set headers for SSE
	c.Response().Header().Set("Content-Type", "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().WriteHeader(http.StatusOK)

	var fullText strings.Builder

	for {
		select {
		case text, ok := <-textCh:
			if !ok {
				// Channel closed, check for errors
				select {
				case err := <-errCh:
					if err != nil {
						c.Logger().Errorf("translate error: %v", err)
						fmt.Fprintf(c.Response(), "event: error\ndata: %s\n\n", err.Error())
						c.Response().Flush()
						return nil
					}
				default:
				}

				// Save to cache if we got content
				if fullText.Len() > 0 {
					if err := h.translate.SaveTranslation(ctx, id, direction, fullText.String()); err != nil {
						c.Logger().Errorf("save translation: %v", err)
					}
				}

				return nil
			}

			fullText.WriteString(text)

			// Write chunk to stream (plain text, not SSE format for simpler client handling)
			if _, err := c.Response().Write([]byte(text)); err != nil {
				return nil
			}
			c.Response().Flush()

		case <-ctx.Done():
			return nil
		}
	}
}

// Refine runs an LLM cleanup pass over a song's lyrics.
// @Summary Refine song lyrics
// @Description Ask the configured LLM to strip leftovers the mechanical pipeline missed. The song is updated in place.
// @Tags lyrics
// @Produce json
// @Security BearerAuth
// @Param id path string true "Song ID"
// @Success 200 {object} model.Song
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 412 {object} errorResponse
// @Failure 422 {object} errorResponse
// @Router /songs/{id}/refine [post]
func (h *LyricsHandler) Refine(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid song ID"})
	}

	song, err := h.translate.Refine(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, song)
}
