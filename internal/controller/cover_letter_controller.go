package controller

import (
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CoverLetterController struct {
	AuthService        *service.AuthService
	CoverLetterService *service.CoverLetterService
}

func NewCoverLetterController(authService *service.AuthService, coverLetterService *service.CoverLetterService) *CoverLetterController {
	return &CoverLetterController{
		AuthService:        authService,
		CoverLetterService: coverLetterService,
	}
}

type CreateCoverLetterRequest struct {
	Content      string `json:"content" binding:"required"`
	JobPostingID *uint  `json:"jobPostingId"`
}

// Create godoc
// @Summary Create a cover letter, attaching AI feedback when a posting is linked
// @Tags cover-letters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateCoverLetterRequest true "cover letter payload"
// @Success 201 {object} util.Response{data=model.CoverLetter}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/cover-letters [post]
func (c *CoverLetterController) Create(ctx *gin.Context) {
	user := c.AuthService.GetCurrentUser(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateCoverLetterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	letter, err := c.CoverLetterService.Create(ctx.Request.Context(), user, req.Content, req.JobPostingID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrJobPostingNotFound):
			util.NotFound(ctx)
		default:
			util.UpstreamError(ctx, err)
		}
		return
	}

	util.Created(ctx, letter)
}

// List godoc
// @Summary List the caller's cover letters
// @Tags cover-letters
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/cover-letters [get]
func (c *CoverLetterController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	letters, err := c.CoverLetterService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, letters)
}

// Get godoc
// @Summary Get one cover letter
// @Tags cover-letters
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "letter id"
// @Success 200 {object} util.Response{data=model.CoverLetter}
// @Failure 404 {object} util.Response
// @Router /api/cover-letters/{id} [get]
func (c *CoverLetterController) Get(ctx *gin.Context) {
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

	letter, err := c.CoverLetterService.Get(uint(id), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrCoverLetterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, letter)
}

type UpdateCoverLetterRequest struct {
	Content *string `json:"content"`
}

// Update godoc
// @Summary Update a cover letter's content
// @Tags cover-letters
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "letter id"
// @Param body body UpdateCoverLetterRequest true "fields to update"
// @Success 200 {object} util.Response{data=model.CoverLetter}
// @Failure 404 {object} util.Response
// @Router /api/cover-letters/{id} [patch]
func (c *CoverLetterController) Update(ctx *gin.Context) {
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

	var req UpdateCoverLetterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	letter, err := c.CoverLetterService.Update(uint(id), claims.UserID, req.Content)
	if err != nil {
		if errors.Is(err, util.ErrCoverLetterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, letter)
}

// Delete godoc
// @Summary Delete a cover letter; interview sessions referencing it survive
// @Tags cover-letters
// @Security ApiKeyAuth
// @Param id path int true "letter id"
// @Success 204
// @Failure 404 {object} util.Response
// @Router /api/cover-letters/{id} [delete]
func (c *CoverLetterController) Delete(ctx *gin.Context) {
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

	if err := c.CoverLetterService.Delete(uint(id), claims.UserID); err != nil {
		if errors.Is(err, util.ErrCoverLetterNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.NoContent(ctx)
}
