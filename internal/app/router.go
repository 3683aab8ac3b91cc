package app

import (
	"ulearner_backend/docs"
	"ulearner_backend/internal/config"
	"ulearner_backend/internal/middleware"
	"ulearner_backend/internal/model"
	"ulearner_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c, cfg)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// Course catalog is public; logged-in viewers get enrollment and
		// completion state on top.
		public.GET("/courses/public", c.course.GetPublicCourses)
		public.GET("/courses/public/search", c.course.SearchCourses)
		public.GET("/courses/public/:id", middleware.TryAuthMiddleware(cfg), c.course.GetCourseDetail)

		// Third-party certificate verification, deliberately unauthenticated.
		public.GET("/certificates/verify/:certificateNumber", c.certificate.Verify)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/my-courses", c.course.GetMyCourses)
	rg.GET("/courses/:id/lessons", c.lesson.GetCourseLessons)
	rg.GET("/courses/:id/lessons/:lessonId", c.lesson.GetLesson)

	rg.POST("/progress/lessons/:lessonId", c.progress.UpdateProgress)
	rg.GET("/progress/courses/:courseId", c.progress.GetCourseCompletion)
	rg.GET("/progress/my-progress", c.progress.GetMyProgress)

	rg.POST("/certificates/generate/:courseId", c.certificate.Generate)
	rg.GET("/certificates/my-certificates", c.certificate.GetMyCertificates)
	rg.GET("/certificates/:certificateNumber/pdf", c.certificate.Download)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/")
	instructor.Use(middleware.RoleMiddleware(model.RoleInstructor))
	{
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.POST("/courses/:id/publish", c.course.PublishCourse)
		instructor.GET("/courses/instructor", c.course.GetInstructorCourses)

		instructor.POST("/courses/:id/lessons", c.lesson.CreateLesson)
		instructor.PUT("/courses/:id/lessons/:lessonId", c.lesson.UpdateLesson)
		instructor.DELETE("/courses/:id/lessons/:lessonId", c.lesson.DeleteLesson)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.RoleAdmin))
	{
		admin.POST("/certificates/:certificateNumber/revoke", c.certificate.Revoke)
	}
}
