package api

import (
	"log"
	stdhttp "net/http"

	"casebackend/internal/auth"
	intconfig "casebackend/internal/config"
	h "casebackend/internal/http/handlers"
	"casebackend/internal/http/middleware"
	"casebackend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Deps are the stores the HTTP layer reads and writes through.
type Deps struct {
	Cases   services.CaseStore
	Lookups h.LookupStore
	Users   services.UserStore
	Pinger  h.Pinger
	// BcryptCost is passed to registration; zero uses bcrypt's default.
	BcryptCost int
}

func NewRouter(env intconfig.Env, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Logger(), middleware.Metrics(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	signer := auth.Signer{Secret: []byte(env.JWTSecret)}
	system := h.SystemHandler{Store: deps.Pinger}
	lookups := h.LookupHandler{Store: deps.Lookups}
	cases := h.CaseHandler{Store: deps.Cases, MaxLimit: env.MaxListLimit}
	authH := h.AuthHandler{Users: deps.Users, Signer: signer, BcryptCost: deps.BcryptCost}

	api := r.Group("/api")
	{
		api.GET("/health", system.Health)
		api.GET("/db-check", system.DBCheck)
		api.GET("/routes", system.Routes)

		authGroup := api.Group("/auth")
		authGroup.POST("/login", authH.Login)
		authGroup.POST("/register", authH.Register)

		api.GET("/types", lookups.ListTypes)
		api.GET("/types/:id", lookups.GetType)
		api.GET("/regions", lookups.ListRegions)
		api.GET("/regions/:id", lookups.GetRegion)
		api.GET("/states", lookups.States)

		caseGroup := api.Group("/cases", middleware.Authenticate(signer))
		caseGroup.GET("", cases.List)
		caseGroup.GET("/vuetable", cases.Vuetable)
		caseGroup.GET("/:id", cases.Retrieve)
		caseGroup.GET("/:id/pdf", cases.SheetPDF)
		caseGroup.POST("", cases.Create)
	}

	h.SetRouter(r)
	return r
}
