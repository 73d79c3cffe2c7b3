package controller

import (
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/util"
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

type JobPostingController struct {
	JobPostingService *service.JobPostingService
}

func NewJobPostingController(jobPostingService *service.JobPostingService) *JobPostingController {
	return &JobPostingController{JobPostingService: jobPostingService}
}

// Create godoc
// @Summary Upload and analyze a job posting PDF
// @Tags job-postings
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "job posting PDF"
// @Success 201 {object} util.Response{data=model.JobPosting}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/job-postings [post]
func (c *JobPostingController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}
	if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		util.BadRequest(ctx, "only PDF files are allowed")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	// The suffix check above is only cosmetic; the content itself must be a
	// PDF.
	if _, err := util.ValidateMimeType(bytes.NewReader(data), []string{"application/pdf"}); err != nil {
		util.BadRequest(ctx, "only PDF files are allowed")
		return
	}

	posting, err := c.JobPostingService.CreateFromUpload(ctx.Request.Context(), claims.UserID, fileHeader.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrEmptyDocumentText):
			util.BadRequest(ctx, "could not extract text from PDF")
		case errors.Is(err, util.ErrUpstreamFormat):
			util.UpstreamError(ctx, err)
		default:
			util.UpstreamError(ctx, err)
		}
		return
	}

	util.Created(ctx, posting)
}

// List godoc
// @Summary List the caller's job postings
// @Tags job-postings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/job-postings [get]
func (c *JobPostingController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	postings, err := c.JobPostingService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, postings)
}

// Get godoc
// @Summary Get one job posting
// @Tags job-postings
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "posting id"
// @Success 200 {object} util.Response{data=model.JobPosting}
// @Failure 404 {object} util.Response
// @Router /api/job-postings/{id} [get]
func (c *JobPostingController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	posting, err := c.JobPostingService.Get(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrJobPostingNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, posting)
}

// Delete godoc
// @Summary Delete a job posting
// @Tags job-postings
// @Security ApiKeyAuth
// @Param id path int true "posting id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/job-postings/{id} [delete]
func (c *JobPostingController) Delete(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	if err := c.JobPostingService.Delete(uint(id), claims.UserID); err != nil {
		if errors.Is(err, util.ErrJobPostingNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.NoContent(ctx)
}
