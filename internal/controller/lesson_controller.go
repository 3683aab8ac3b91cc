package controller

import (
	"errors"

	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// swagger:model LessonRequest
type LessonRequest struct {
	Title      string `json:"title" binding:"required"`
	Content    string `json:"content"`
	OrderIndex int    `json:"orderIndex"`
	Duration   int    `json:"duration"`
	VideoURL   string `json:"videoUrl"`
}

func (r LessonRequest) toInput() service.LessonInput {
	return service.LessonInput{
		Title:      r.Title,
		Content:    r.Content,
		OrderIndex: r.OrderIndex,
		Duration:   r.Duration,
		VideoURL:   r.VideoURL,
	}
}

// GetCourseLessons godoc
// @Summary Lessons of a course, in display order, with the viewer's progress
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=[]service.LessonView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons [get]
func (c *LessonController) GetCourseLessons(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	userID := uint(0)
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	lessons, err := c.LessonService.GetCourseLessons(courseID, userID)
	if err != nil {
		respondLessonError(ctx, err)
		return
	}
	util.Success(ctx, lessons)
}

// GetLesson godoc
// @Summary Single lesson with the viewer's progress
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response{data=service.LessonView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}

	userID := uint(0)
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	lesson, err := c.LessonService.GetLesson(lessonID, userID)
	if err != nil {
		respondLessonError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary Add a lesson to an owned course (instructor)
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   body body LessonRequest true "lesson payload"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	lesson, err := c.LessonService.CreateLesson(courseID, claims.UserID, req.toInput())
	if err != nil {
		respondLessonError(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson of an owned course (instructor)
// @Tags lessons
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   lessonId path int true "lesson id"
// @Param   body body LessonRequest true "lesson payload"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}

	var req LessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	lesson, err := c.LessonService.UpdateLesson(lessonID, claims.UserID, req.toInput())
	if err != nil {
		respondLessonError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson of an owned course (instructor)
// @Tags lessons
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/lessons/{lessonId} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	lessonID, ok := parseUintParam(ctx, "lessonId")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.LessonService.DeleteLesson(lessonID, claims.UserID); err != nil {
		respondLessonError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

func respondLessonError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrLessonNotFound):
		util.NotFound(ctx, "Lesson not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}
