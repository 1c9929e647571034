// internal/api/router.go
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"franchise-catalog/internal/common/logger"
	"franchise-catalog/internal/common/observability"
)

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Handler        *FranchiseHandler
	Logger         logger.Logger
	Observability  *observability.Observability
	ServiceName    string
	CORSOrigins    []string
	RequestTimeout time.Duration
	// Readiness checks keyed by dependency name, served on /ready.
	Readiness map[string]Pinger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(CORS(cfg.CORSOrigins))
	if cfg.Observability != nil {
		r.Use(otelgin.Middleware(cfg.ServiceName, otelgin.WithTracerProvider(cfg.Observability.TracerProvider())))
	}
	r.Use(Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	r.GET("/ready", readiness(cfg.Readiness, log))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.Handler == nil {
		return r
	}

	h := cfg.Handler
	franchises := r.Group("/api-v1/franchises")
	franchises.Use(ErrorHandler(log), Timeout(cfg.RequestTimeout))
	{
		franchises.GET("", h.FindAll)
		franchises.GET("/:id", h.FindByID)
		franchises.POST("", h.Save)
		franchises.POST("/:id/branches", h.AddBranch)
		franchises.POST("/:id/branches/:branchName/products", h.AddProduct)
		franchises.DELETE("/:id/branches/:branchName/products/:productName", h.RemoveProduct)
		franchises.PATCH("/:id/branches/:branchName/products/:productName/stock", h.UpdateStock)
		franchises.GET("/:id/products/top", h.TopProducts)
		franchises.PUT("/:id/name/:newName", h.RenameFranchise)
		franchises.PUT("/:id/branch/:branchName/name/:newName", h.RenameBranch)
		franchises.PUT("/:id/branch/:branchName/product/:currentName/name/:newName", h.RenameProduct)
	}

	return r
}

func readiness(checks map[string]Pinger, log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		deps := make(map[string]string, len(checks))
		for name, p := range checks {
			if err := p.Ping(ctx); err != nil {
				log.Warn("readiness check failed", map[string]interface{}{
					"dependency": name,
					"error":      err,
				})
				deps[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			deps[name] = "ok"
		}

		state := "ready"
		if status != http.StatusOK {
			state = "not_ready"
		}
		c.JSON(status, gin.H{
			"status":       state,
			"dependencies": deps,
			"time":         time.Now().UTC().Format(time.RFC3339),
		})
	}
}
