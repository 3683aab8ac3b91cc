package controller

import (
	"errors"

	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// swagger:model ProgressUpdateRequest
type ProgressUpdateRequest struct {
	Completed          *bool `json:"completed" binding:"required"`
	ProgressPercentage int   `json:"progressPercentage" binding:"min=0,max=100"`
}

// UpdateProgress godoc
// @Summary Record lesson progress for the current user
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   lessonId path int true "lesson id"
// @Param   body body ProgressUpdateRequest true "progress payload"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response "lesson not found"
// @Router /api/progress/lessons/{lessonId} [post]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	progress, err := c.ProgressService.UpdateProgress(claims.UserID, lessonID, *req.Completed, req.ProgressPercentage)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx, "Lesson not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, progress)
}

// GetCourseCompletion godoc
// @Summary Completion percentage of a course for the current user
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   courseId path int true "course id"
// @Success 200 {object} util.Response{data=object}
// @Router /api/progress/courses/{courseId} [get]
func (c *ProgressController) GetCourseCompletion(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "courseId")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	pct, err := c.ProgressService.GetCourseCompletion(claims.UserID, courseID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"completionPercentage": pct})
}

// GetMyProgress godoc
// @Summary Every progress record of the current user
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Progress}
// @Router /api/progress/my-progress [get]
func (c *ProgressController) GetMyProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	records, err := c.ProgressService.GetUserProgress(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
