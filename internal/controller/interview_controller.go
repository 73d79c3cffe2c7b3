package controller

import (
	"ai_interview_backend/internal/service"
	"ai_interview_backend/internal/util"
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

type InterviewController struct {
	InterviewService *service.InterviewService
}

func NewInterviewController(interviewService *service.InterviewService) *InterviewController {
	return &InterviewController{InterviewService: interviewService}
}

type StartInterviewRequest struct {
	CoverLetterID uint `json:"coverLetterId" binding:"required"`
}

// Start godoc
// @Summary Start an interview session and get the first question
// @Tags interviews
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartInterviewRequest true "cover letter to interview on"
// @Success 201 {object} util.Response{data=service.StartResult}
// @Failure 404 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/interviews/start [post]
func (c *InterviewController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req StartInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.InterviewService.Start(ctx.Request.Context(), claims.UserID, req.CoverLetterID)
	if err != nil {
		if errors.Is(err, util.ErrCoverLetterNotFound) {
			util.NotFound(ctx)
		} else {
			util.UpstreamError(ctx, err)
		}
		return
	}

	util.Created(ctx, result)
}

// SubmitAnswer godoc
// @Summary Submit the answer audio for a turn
// @Tags interviews
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Param turn_number formData int true "turn being answered"
// @Param audio formData file true "answer audio"
// @Success 200 {object} util.Response{data=service.AnswerResult}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Failure 502 {object} util.Response
// @Router /api/interviews/{id}/answer [post]
func (c *InterviewController) SubmitAnswer(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	turnNumber, err := strconv.Atoi(ctx.PostForm("turn_number"))
	if err != nil || turnNumber < 1 {
		util.BadRequest(ctx, "invalid turn_number")
		return
	}

	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		util.BadRequest(ctx, "audio file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	result, err := c.InterviewService.SubmitAnswer(
		ctx.Request.Context(),
		claims.UserID,
		uint(sessionID),
		turnNumber,
		fileHeader.Filename,
		audio,
		contentType,
	)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSessionNotFound), errors.Is(err, util.ErrTurnNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrTurnAlreadyAnswered):
			util.Conflict(ctx, "turn already answered")
		default:
			util.UpstreamError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// Result godoc
// @Summary Interview session with all turns and feedback
// @Tags interviews
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "session id"
// @Success 200 {object} util.Response{data=service.SessionResult}
// @Failure 404 {object} util.Response
// @Router /api/interviews/{id}/result [get]
func (c *InterviewController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessionID, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	result, err := c.InterviewService.Result(claims.UserID, uint(sessionID))
	if err != nil {
		if errors.Is(err, util.ErrSessionNotFound) {
			util.NotFound(ctx)
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Success(ctx, result)
}

// History godoc
// @Summary The caller's interview sessions, newest first
// @Tags interviews
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/interviews/history [get]
func (c *InterviewController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	sessions, err := c.InterviewService.History(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, sessions)
}
