package endpoint

import (
	"fmt"

	"github.com/ariebrainware/cabinet-pediatrie/middleware"
	"github.com/ariebrainware/cabinet-pediatrie/util"
	"github.com/gin-gonic/gin"
)

// RouterConfig carries what NewRouter wires into the engine.
type RouterConfig struct {
	AppName       string
	AllowedOrigin string
	Deps          middleware.Dependencies
	// RateLimiter guards POST /login; nil disables limiting.
	RateLimiter *middleware.RateLimiter
}

// NewRouter builds the gin engine with every route of the application.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))
	router.Use(middleware.DependenciesMiddleware(cfg.Deps))
	router.Use(middleware.EndpointCallLogger())

	router.GET("/", func(c *gin.Context) {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg: fmt.Sprintf("Welcome to %s!", cfg.AppName),
		})
	})

	login := []gin.HandlerFunc{}
	if cfg.RateLimiter != nil {
		login = append(login, cfg.RateLimiter.Middleware())
	}
	login = append(login, Login)
	router.POST("/login", login...)
	router.DELETE("/logout", Logout)
	router.GET("/session", SessionStatus)

	if cfg.Deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Deps.Metrics.Handler()))
	}

	authorized := router.Group("/")
	authorized.Use(middleware.RequireAuthentication())
	{
		authorized.GET("/consultation", ListConsultations)
		authorized.POST("/consultation", CreateConsultation)
		authorized.GET("/consultation/fields", ListConsultationFields)
		authorized.GET("/consultation/:id", GetConsultation)
		authorized.PUT("/consultation/:id", UpdateConsultation)
		authorized.DELETE("/consultation/:id", DeleteConsultation)
		authorized.GET("/stats", GetStats)
	}

	return router
}
