package handlers

import (
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/habte-job-portal/internal/models"
	"github.com/justsurfingit/habte-job-portal/internal/services"
)

type RouterDeps struct {
	Users  *services.UserService
	Jobs   *services.JobService
	CVs    *services.CVService
	Logger *slog.Logger

	CORSOrigins []string
	// AuthLimiter throttles /api/auth; nil disables it.
	AuthLimiter *ClientLimiter
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	return config
}

func NewRouter(d RouterDeps) *gin.Engine {
	useJSONFieldNames()

	authn := &AuthMiddleware{Users: d.Users, Logger: d.Logger}
	authHandler := NewAuthHandler(d.Users, d.Logger)
	jobHandler := NewJobHandler(d.Jobs, d.Logger)
	cvHandler := NewCVHandler(d.CVs, d.Logger)

	r := gin.New()
	r.Use(RequestID(), AccessLog(d.Logger), Recover(d.Logger))
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		authGroup := api.Group("/auth")
		if d.AuthLimiter != nil {
			authGroup.Use(d.AuthLimiter.Middleware())
		}
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.GET("/me", authn.Required(), authHandler.Me)

		jobs := api.Group("/jobs")
		employerOnly := authn.RequireRole(models.RoleEmployer)
		jobs.GET("", jobHandler.ListJobs)
		jobs.GET("/my-jobs", authn.Required(), employerOnly, jobHandler.MyJobs)
		jobs.GET("/:id", jobHandler.GetJob)
		jobs.POST("", authn.Required(), employerOnly, jobHandler.CreateJob)
		jobs.PUT("/:id", authn.Required(), jobHandler.UpdateJob)
		jobs.DELETE("/:id", authn.Required(), jobHandler.DeleteJob)

		cvs := api.Group("/cv")
		cvs.GET("/my-cvs", authn.Required(), cvHandler.MyCVs)
		cvs.GET("/:id", authn.Optional(), cvHandler.GetCV)
		cvs.POST("", authn.Required(), cvHandler.CreateCV)
		cvs.PUT("/:id", authn.Required(), cvHandler.UpdateCV)
		cvs.DELETE("/:id", authn.Required(), cvHandler.DeleteCV)
		cvs.PATCH("/:id/visibility", authn.Required(), cvHandler.SetVisibility)

		profile := api.Group("/profile", authn.Required())
		profile.GET("", authHandler.GetProfile)
		profile.PUT("", authHandler.UpdateProfile)
		profile.POST("/upload-image", authHandler.UploadImage)
	}
	r.NoRoute(notFoundRoute)

	return r
}
