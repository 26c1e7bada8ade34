package httpserver

import (
	"net/http"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/madhusmita6505/mads-poc/internal/config"
	"github.com/madhusmita6505/mads-poc/internal/crm"
	"github.com/madhusmita6505/mads-poc/internal/engine"
	"github.com/madhusmita6505/mads-poc/internal/llm"
	"github.com/madhusmita6505/mads-poc/internal/logging"
)

// Handlers bundles HTTP routes and their dependencies. One LLM client is
// shared by every session and engine the server creates.
type Handlers struct {
	cfg     config.Config
	log     *zap.SugaredLogger
	store   *crm.Store
	llm     *llm.Client
	planner *engine.Planner
}

// NewHandlers constructs the handler set from configuration.
func NewHandlers(cfg config.Config) *Handlers {
	client := llm.NewClient(cfg.OpenAIKey, cfg.OpenAIModel)
	return &Handlers{
		cfg:     cfg,
		log:     logging.Sugar().Named("http"),
		store:   crm.NewStore(cfg.ClientDataPath),
		llm:     client,
		planner: engine.NewPlanner(client),
	}
}

// Register wires all routes onto the Echo instance.
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/health", h.health)
	e.GET("/", func(c echo.Context) error { return c.File(filepath.Join(h.cfg.StaticDir, "index.html")) })
	e.GET("/prep", func(c echo.Context) error { return c.File(filepath.Join(h.cfg.StaticDir, "prep.html")) })
	e.Static("/static", h.cfg.StaticDir)

	e.GET("/api/clients", h.searchClients)
	e.GET("/api/clients/:id", h.getClient)
	e.POST("/api/suggest-discussion-points", h.suggestDiscussionPoints)

	e.GET("/ws/audio", h.serveAudioWS)
}

func (h *Handlers) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":            "ok",
		"openai_configured": h.cfg.OpenAIKey != "",
	})
}

func (h *Handlers) searchClients(c echo.Context) error {
	results, err := h.store.Search(c.QueryParam("q"))
	if err != nil {
		h.log.Errorw("client search failed", "err", err)
		return c.JSON(http.StatusOK, []crm.Summary{})
	}
	return c.JSON(http.StatusOK, results)
}

func (h *Handlers) getClient(c echo.Context) error {
	client, err := h.store.Get(c.Param("id"))
	if err != nil {
		h.log.Errorw("client lookup failed", "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to load client data"})
	}
	if client == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Client not found"})
	}
	return c.JSON(http.StatusOK, client)
}

type suggestPointsRequest struct {
	ClientID string `json:"client_id"`
}

type suggestPointsResponse struct {
	Points []string `json:"points"`
	Error  string   `json:"error,omitempty"`
}

// suggestDiscussionPoints generates pre-call discussion points from client
// data. This is the one generation endpoint outside a live session.
func (h *Handlers) suggestDiscussionPoints(c echo.Context) error {
	var req suggestPointsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, suggestPointsResponse{Points: []string{}, Error: "invalid request"})
	}

	contextPrompt := ""
	if req.ClientID != "" {
		client, err := h.store.Get(req.ClientID)
		if err != nil {
			h.log.Errorw("client lookup failed", "err", err)
		}
		contextPrompt = crm.ContextPrompt(client)
	}

	points, err := h.planner.Suggest(c.Request().Context(), contextPrompt, "")
	if err != nil {
		h.log.Errorw("discussion suggestion failed", "err", err)
		return c.JSON(http.StatusOK, suggestPointsResponse{Points: []string{}, Error: err.Error()})
	}
	h.log.Infow("pre-call discussion suggestions", "count", len(points), "client", req.ClientID)
	return c.JSON(http.StatusOK, suggestPointsResponse{Points: points})
}
