package app

import (
	"ai_interview_backend/internal/config"
	"ai_interview_backend/internal/middleware"
	"ai_interview_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.auth.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)

		authGroup.POST("/job-postings", c.jobPosting.Create)
		authGroup.GET("/job-postings", c.jobPosting.List)
		authGroup.GET("/job-postings/:id", c.jobPosting.Get)
		authGroup.DELETE("/job-postings/:id", c.jobPosting.Delete)

		authGroup.POST("/cover-letters", c.coverLetter.Create)
		authGroup.GET("/cover-letters", c.coverLetter.List)
		authGroup.GET("/cover-letters/:id", c.coverLetter.Get)
		authGroup.PATCH("/cover-letters/:id", c.coverLetter.Update)
		authGroup.DELETE("/cover-letters/:id", c.coverLetter.Delete)

		authGroup.POST("/interviews/start", c.interview.Start)
		authGroup.GET("/interviews/history", c.interview.History)
		authGroup.POST("/interviews/:id/answer", c.interview.SubmitAnswer)
		authGroup.GET("/interviews/:id/result", c.interview.Result)
	}
}
