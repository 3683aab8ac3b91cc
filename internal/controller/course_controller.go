package controller

import (
	"errors"
	"strconv"

	"ulearner_backend/internal/service"
	"ulearner_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// swagger:model CourseRequest
type CourseRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Difficulty  string `json:"difficulty"`
	Duration    int    `json:"duration"`
}

func (r CourseRequest) toInput() service.CourseInput {
	return service.CourseInput{
		Title:       r.Title,
		Description: r.Description,
		ImageURL:    r.ImageURL,
		Difficulty:  r.Difficulty,
		Duration:    r.Duration,
	}
}

// GetPublicCourses godoc
// @Summary List published courses
// @Tags courses
// @Produce  json
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses/public [get]
func (c *CourseController) GetPublicCourses(ctx *gin.Context) {
	courses, err := c.CourseService.GetPublishedCourses()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetCourseDetail godoc
// @Summary Course detail with viewer enrollment and completion
// @Tags courses
// @Produce  json
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=service.CourseDetail}
// @Failure 404 {object} util.Response
// @Router /api/courses/public/{id} [get]
func (c *CourseController) GetCourseDetail(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	userID := uint(0)
	if claims := util.GetUserFromContext(ctx); claims != nil {
		userID = claims.UserID
	}

	detail, err := c.CourseService.GetCourseDetail(courseID, userID)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx, "Course not found")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, detail)
}

// SearchCourses godoc
// @Summary Keyword search over published courses
// @Tags courses
// @Produce  json
// @Param   keyword query string true "search keyword"
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses/public/search [get]
func (c *CourseController) SearchCourses(ctx *gin.Context) {
	keyword := ctx.Query("keyword")
	courses, err := c.CourseService.SearchCourses(keyword)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// CreateCourse godoc
// @Summary Create a course (instructor)
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CourseRequest true "course payload"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.CreateCourse(claims.UserID, req.toInput())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update an owned course (instructor)
// @Tags courses
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Param   body body CourseRequest true "course payload"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	var req CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.UpdateCourse(courseID, claims.UserID, req.toInput())
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// PublishCourse godoc
// @Summary Publish an owned course (instructor)
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/publish [post]
func (c *CourseController) PublishCourse(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	course, err := c.CourseService.PublishCourse(courseID, claims.UserID)
	if err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// Enroll godoc
// @Summary Enroll the current user into a course
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "course id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	courseID, ok := parseUintParam(ctx, "id")
	if !ok {
		return
	}

	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.Enroll(courseID, claims.UserID); err != nil {
		respondCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// GetMyCourses godoc
// @Summary Courses the current user is enrolled in
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses/my-courses [get]
func (c *CourseController) GetMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.GetEnrolledCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

// GetInstructorCourses godoc
// @Summary Courses owned by the current instructor
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.CourseSummary}
// @Router /api/courses/instructor [get]
func (c *CourseController) GetInstructorCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	courses, err := c.CourseService.GetInstructorCourses(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, courses)
}

func respondCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound):
		util.NotFound(ctx, "Course not found")
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(ctx)
	default:
		util.LogInternalError(ctx, err)
	}
}

func parseUintParam(ctx *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return uint(value), true
}
