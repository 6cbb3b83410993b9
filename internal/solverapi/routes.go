package solverapi

import (
	"github.com/gin-gonic/gin"

	"github.com/tobangado69/cvrp-solver/internal/auth"
	"github.com/tobangado69/cvrp-solver/internal/common/middleware"
)

// RegisterRoutes wires the solve endpoints under the given router group,
// guarding both behind service-token authentication. A stored run is
// immutable once written, so lookups by ID are safe to cache briefly.
func RegisterRoutes(rg *gin.RouterGroup, handler *Handler, authSvc *auth.Service, responseCache *middleware.CacheMiddleware) {
	group := rg.Group("/solve")
	group.Use(auth.RequireServiceToken(authSvc))
	{
		group.POST("", handler.Solve)
		group.GET("/:id", responseCache.CacheShort(), handler.GetRun)
	}
}
