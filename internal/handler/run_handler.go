package handler

import (
	"errors"
	"math"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/ninjapark/rollsync/internal/model"
	"github.com/ninjapark/rollsync/internal/response"
	"github.com/ninjapark/rollsync/internal/service"
	"github.com/ninjapark/rollsync/internal/validator"
	"github.com/rs/zerolog"
)

const maxPerPage = 100

// RunHandler handles document uploads and run history.
type RunHandler struct {
	runService    *service.RunService
	uploadService *service.UploadService
	log           zerolog.Logger
}

// NewRunHandler creates a new RunHandler.
func NewRunHandler(runService *service.RunService, uploadService *service.UploadService, log zerolog.Logger) *RunHandler {
	return &RunHandler{
		runService:    runService,
		uploadService: uploadService,
		log:           log.With().Str("component", "run_handler").Logger(),
	}
}

// CreateRun godoc
// POST /api/v1/runs
// Accepts the roll_sheet and roster HTML exports, processes them and stores
// the run.
func (h *RunHandler) CreateRun(c *gin.Context) {
	var form model.CreateRunForm
	if fields := validator.BindForm(c, &form); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	rollHeader, err := c.FormFile("roll_sheet")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}
	rosterHeader, err := c.FormFile("roster")
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrFileRequired)
		return
	}

	rollFile, ok := h.openUpload(c, rollHeader)
	if !ok {
		return
	}
	defer rollFile.Close()

	rosterFile, ok := h.openUpload(c, rosterHeader)
	if !ok {
		return
	}
	defer rosterFile.Close()

	run, err := h.runService.Create(c.Request.Context(), rollFile, rosterFile, model.RunOptions{
		YellowPolicy: form.YellowPolicy,
		Layout:       form.Layout,
		Capacity:     form.Capacity,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDocument):
			response.Fail(c, http.StatusUnprocessableEntity, response.ErrInvalidDocument)
		case errors.Is(err, service.ErrInvalidOptions):
			response.Fail(c, http.StatusBadRequest, response.ErrInvalidRunOption)
		default:
			h.log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("create run failed")
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return
	}

	response.SuccessWithWarnings(c, http.StatusCreated, gin.H{"run": run}, run.Warnings)
}

// ListRuns godoc
// GET /api/v1/runs?page=1&per_page=10
// Lists run summaries, newest first.
func (h *RunHandler) ListRuns(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > maxPerPage {
		perPage = 10
	}

	runs, total, err := h.runService.List(c.Request.Context(), page, perPage)
	if err != nil {
		h.log.Error().Err(err).Msg("list runs failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	pagination := &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(perPage))),
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"runs": runs}, pagination)
}

// GetRun godoc
// GET /api/v1/runs/:id
// Returns a run with its classified records.
func (h *RunHandler) GetRun(c *gin.Context) {
	id, ok := runID(c)
	if !ok {
		return
	}

	run, err := h.runService.Get(c.Request.Context(), id)
	if err != nil {
		failRun(c, h.log, err)
		return
	}

	response.SuccessWithWarnings(c, http.StatusOK, gin.H{"run": run}, run.Warnings)
}

func (h *RunHandler) openUpload(c *gin.Context, header *multipart.FileHeader) (multipart.File, bool) {
	f, err := h.uploadService.Open(header)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedFileType):
			response.Fail(c, http.StatusBadRequest, response.ErrUnsupportedFile)
		case errors.Is(err, service.ErrFileTooLarge):
			response.Fail(c, http.StatusRequestEntityTooLarge, response.ErrFileTooLarge)
		default:
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		}
		return nil, false
	}
	return f, true
}

// runID parses the :id path parameter, answering 400 itself on failure.
func runID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return uuid.Nil, false
	}
	return id, true
}

func failRun(c *gin.Context, log zerolog.Logger, err error) {
	if errors.Is(err, service.ErrRunNotFound) {
		response.Fail(c, http.StatusNotFound, response.ErrRunNotFound)
		return
	}
	log.Error().Err(err).Str("request_id", response.RequestID(c)).Msg("run lookup failed")
	response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
}
