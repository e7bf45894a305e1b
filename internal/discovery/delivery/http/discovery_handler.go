package http

import (
	"errors"
	"net/http"
	"strconv"

	"golang-token-pulse/internal/discovery/repository"
	"golang-token-pulse/internal/discovery/service"
	"golang-token-pulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// DiscoveryHandler handles HTTP requests for the discovery pipeline.
type DiscoveryHandler struct {
	runner   *service.DiscoveryRunner
	reporter service.ReporterService
	runRepo  repository.DiscoveryRunRepository
	logger   *logger.Logger
}

// NewDiscoveryHandler creates a new DiscoveryHandler.
func NewDiscoveryHandler(runner *service.DiscoveryRunner, reporter service.ReporterService, runRepo repository.DiscoveryRunRepository, logger *logger.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{runner: runner, reporter: reporter, runRepo: runRepo, logger: logger}
}

// RegisterRoutes registers the discovery routes to the Echo group.
func (h *DiscoveryHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/run", h.TriggerRun)
	g.GET("/latest", h.GetLatestReport)
	g.GET("/runs", h.GetRuns)
}

// TriggerRun starts a discovery run manually. It returns immediately; the
// run proceeds in the background under the same reentrancy guard as the
// scheduler.
func (h *DiscoveryHandler) TriggerRun(c echo.Context) error {
	if err := h.runner.TriggerRunAsync(); err != nil {
		if errors.Is(err, service.ErrRunInProgress) {
			return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
		}
		h.logger.Error("Failed to start manual discovery run", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to start discovery run"})
	}

	return c.JSON(http.StatusAccepted, echo.Map{"status": "started"})
}

// GetLatestReport returns the most recent token report.
func (h *DiscoveryHandler) GetLatestReport(c echo.Context) error {
	report := h.reporter.Latest()
	if report == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "no report available yet"})
	}
	return c.JSON(http.StatusOK, report)
}

// GetRuns returns the most recent run history records.
func (h *DiscoveryHandler) GetRuns(c echo.Context) error {
	limit := 20
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "limit must be an integer within [1,100]"})
		}
		limit = parsed
	}

	runs, err := h.runRepo.FindLatest(c.Request().Context(), limit)
	if err != nil {
		h.logger.Error("Failed to fetch run history", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch run history"})
	}
	return c.JSON(http.StatusOK, runs)
}

// HealthHandler responds to liveness probes.
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}
