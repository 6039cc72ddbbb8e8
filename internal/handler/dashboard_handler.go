package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ninjapark/rollsync/internal/export"
	"github.com/ninjapark/rollsync/internal/response"
	"github.com/ninjapark/rollsync/internal/service"
	"github.com/rs/zerolog"
)

// DashboardHandler serves a run's exports and publishes its dashboard.
type DashboardHandler struct {
	runService *service.RunService
	log        zerolog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(runService *service.RunService, log zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		runService: runService,
		log:        log.With().Str("component", "dashboard_handler").Logger(),
	}
}

// GetDashboard godoc
// GET /api/v1/runs/:id/dashboard
// Returns the day grids laid out with the run's options.
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	grids, err := h.runService.Dashboard(c.Request.Context(), id)
	if err != nil {
		failRun(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"days": grids})
}

// DownloadCSV godoc
// GET /api/v1/runs/:id/csv
// Streams the flat student table.
func (h *DashboardHandler) DownloadCSV(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	// Resolve first so a missing run still gets the JSON error envelope.
	run, err := h.runService.Get(c.Request.Context(), id)
	if err != nil {
		failRun(c, h.log, err)
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", attachment(id.String(), "csv"))
	c.Status(http.StatusOK)
	if err := h.runService.WriteCSV(c.Writer, run); err != nil {
		h.log.Error().Err(err).Str("run_id", id.String()).Msg("csv export failed")
		_ = c.Error(err)
	}
}

// DownloadWorkbook godoc
// GET /api/v1/runs/:id/xlsx
// Returns the colour-coded dashboard workbook.
func (h *DashboardHandler) DownloadWorkbook(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	f, err := h.runService.Workbook(c.Request.Context(), id)
	if err != nil {
		failRun(c, h.log, err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.log.Error().Err(err).Str("run_id", id.String()).Msg("xlsx export failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	c.Header("Content-Disposition", attachment(id.String(), "xlsx"))
	c.Data(http.StatusOK, export.ContentTypeXLSX, buf.Bytes())
}

// Publish godoc
// POST /api/v1/runs/:id/publish
// Replaces the shared dashboard with this run. On failure the previous
// dashboard stays in place and 502 is returned.
func (h *DashboardHandler) Publish(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	at, err := h.runService.Publish(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, export.ErrPublishFailed) {
			response.Fail(c, http.StatusBadGateway, response.ErrPublishFailed)
			return
		}
		failRun(c, h.log, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"published_at": at})
}

func attachment(runID, ext string) string {
	return fmt.Sprintf(`attachment; filename="rollsync-%s.%s"`, runID, ext)
}
