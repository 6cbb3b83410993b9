package solverapi

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tobangado69/cvrp-solver/internal/common/cache"
	"github.com/tobangado69/cvrp-solver/internal/common/logging"
	"github.com/tobangado69/cvrp-solver/internal/common/middleware"
	"github.com/tobangado69/cvrp-solver/internal/common/repository"
	"github.com/tobangado69/cvrp-solver/internal/cvrp"
	cvrperrors "github.com/tobangado69/cvrp-solver/pkg/errors"
	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// resultCacheTTL bounds how long an identical instance's solve result is
// served from cache before a fresh solve is required.
const resultCacheTTL = 10 * time.Minute

// Handler serves the solve API: validate the request, run the CORE
// solver, persist and cache the result, and log it to the audit trail.
type Handler struct {
	repos          *repository.RepositoryManager
	cache          *cache.RedisCache
	audit          *logging.AuditLogger
	logger         *logging.Logger
	validator      *validator.Validate
	externalClient cvrp.ExternalSolverClient
}

// NewHandler wires a Handler around the service's persistence, caching
// and logging collaborators. externalClient may be nil, in which case
// the "or-tools" algorithm falls back to Enhanced Clarke-Wright without
// ever attempting a remote call (see cvrp.ExternalSolver).
func NewHandler(db *gorm.DB, redisCache *cache.RedisCache, audit *logging.AuditLogger, logger *logging.Logger, externalClient cvrp.ExternalSolverClient) *Handler {
	return &Handler{
		repos:          repository.NewRepositoryManager(db),
		cache:          redisCache,
		audit:          audit,
		logger:         logger,
		validator:      validator.New(),
		externalClient: externalClient,
	}
}

// Solve handles POST /api/v1/solve.
func (h *Handler) Solve(c *gin.Context) {
	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.AbortWithBadRequest(c, err.Error())
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		middleware.AbortWithValidation(c, err.Error())
		return
	}

	instance := req.toInstance()
	cacheKey := instanceCacheKey(instance, req.mode(), req.algorithm())

	if cached, ok := h.lookupCache(c.Request.Context(), cacheKey); ok {
		c.JSON(http.StatusOK, cached)
		return
	}

	options := cvrp.SolveOptions{Mode: req.mode(), Algorithm: req.algorithm()}
	options.Context = c.Request.Context()
	options.ExternalClient = h.externalClient
	if req.Seed != nil {
		options.Seed = req.Seed
	}

	result, err := cvrp.Solve(instance, options)
	if err != nil {
		middleware.AbortWithError(c, cvrperrors.GetAppError(err))
		return
	}

	runID := uuid.New().String()
	requestedBy, _ := c.Get("subject")
	requestedByStr, _ := requestedBy.(string)

	response := newSolveResponse(runID, result)
	h.persistRun(c.Request.Context(), runID, requestedByStr, result, response)
	h.cacheResult(c.Request.Context(), cacheKey, response)

	h.audit.LogSolveEvent(c.Request.Context(), runID, requestedByStr, response.SelectedAlgorithm, map[string]interface{}{
		"comparison_run": response.ComparisonRun,
		"routes_count":   len(response.Routes),
	})

	c.JSON(http.StatusOK, response)
}

// GetRun handles GET /api/v1/solve/:id, returning a previously computed
// solve result.
func (h *Handler) GetRun(c *gin.Context) {
	id := c.Param("id")

	run, err := h.repos.GetSolveRuns().GetByID(c.Request.Context(), id)
	if err != nil {
		middleware.AbortWithNotFound(c, "solve run")
		return
	}

	var response SolveResponse
	if jsonErr := json.Unmarshal(run.ResultJSON, &response); jsonErr != nil {
		middleware.AbortWithInternal(c, "stored result is unreadable", jsonErr)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) persistRun(ctx context.Context, runID, requestedBy string, result models.SolveResult, response SolveResponse) {
	payload, err := json.Marshal(response)
	if err != nil {
		h.logger.LogError(err, "failed to marshal solve response for persistence", nil)
		return
	}

	run := &models.SolveRun{
		ID:                runID,
		RequestedBy:       requestedBy,
		Mode:              map[bool]string{true: "compare", false: "single"}[result.ComparisonRun],
		SelectedAlgorithm: result.SelectedAlgorithm,
		TotalDistance:     result.TotalDistance,
		TotalDuration:     result.TotalDuration,
		RoutesCount:       len(result.Routes),
		ResultJSON:        payload,
	}

	txManager := h.repos.GetTransactionManager()
	err = txManager.WithTransaction(ctx, func(tx repository.Transaction) error {
		txImpl, ok := tx.(*repository.TransactionImpl)
		if !ok {
			return fmt.Errorf("unexpected transaction implementation %T", tx)
		}
		return repository.RepositoryInTx[models.SolveRun](txImpl).Create(ctx, run)
	})
	if err != nil {
		h.logger.LogError(err, "failed to persist solve run", map[string]interface{}{"run_id": runID})
	}
}

func (h *Handler) lookupCache(ctx context.Context, key string) (SolveResponse, bool) {
	var cached SolveResponse
	if err := h.cache.Get(ctx, key, &cached); err != nil {
		return SolveResponse{}, false
	}
	return cached, true
}

func (h *Handler) cacheResult(ctx context.Context, key string, response SolveResponse) {
	if err := h.cache.Set(ctx, key, response, resultCacheTTL); err != nil {
		h.logger.LogError(err, "failed to cache solve result", map[string]interface{}{"key": key})
	}
}

// instanceCacheKey fingerprints an instance plus its requested mode and
// algorithm so an identical request short-circuits to a cached result.
func instanceCacheKey(instance models.Instance, mode cvrp.SolveMode, algorithm cvrp.Algorithm) string {
	data := map[string]interface{}{
		"locations": instance.Locations,
		"vehicles":  instance.Vehicles,
		"mode":      mode,
		"algorithm": algorithm,
	}
	encoded, _ := json.Marshal(data)
	hash := sha256.Sum256(encoded)
	return "solve:" + hex.EncodeToString(hash[:])
}
