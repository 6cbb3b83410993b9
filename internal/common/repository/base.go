package repository

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tobangado69/cvrp-solver/pkg/models"
)

// BaseRepository implements the base repository interface using GORM
type BaseRepository[T any] struct {
	db    *gorm.DB
	model *T
}

// NewBaseRepository creates a new base repository instance
func NewBaseRepository[T any](db *gorm.DB) *BaseRepository[T] {
	var model T
	return &BaseRepository[T]{
		db:    db,
		model: &model,
	}
}

// Create creates a new entity
func (r *BaseRepository[T]) Create(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Create(entity).Error; err != nil {
		return fmt.Errorf("failed to create entity: %w", err)
	}
	return nil
}

// GetByID retrieves an entity by its ID
func (r *BaseRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("entity not found with id: %s", id)
		}
		return nil, fmt.Errorf("failed to get entity by id: %w", err)
	}
	return &entity, nil
}

// Update updates an existing entity
func (r *BaseRepository[T]) Update(ctx context.Context, entity *T) error {
	if err := r.db.WithContext(ctx).Save(entity).Error; err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}
	return nil
}

// Delete soft deletes an entity (if model has DeletedAt field) or hard deletes
func (r *BaseRepository[T]) Delete(ctx context.Context, id string) error {
	var entity T
	
	// Check if the model has DeletedAt field for soft delete
	if r.hasDeletedAtField() {
		if err := r.db.WithContext(ctx).Delete(&entity, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete entity: %w", err)
		}
	} else {
		// Hard delete
		if err := r.db.WithContext(ctx).Unscoped().Delete(&entity, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete entity: %w", err)
		}
	}
	return nil
}

// List retrieves entities with filtering and pagination
func (r *BaseRepository[T]) List(ctx context.Context, filters FilterOptions, pagination Pagination) ([]*T, error) {
	var entities []*T
	query := r.db.WithContext(ctx)
	
	// Apply filters
	query = r.applyFilters(query, filters)
	
	// Apply pagination
	query = r.applyPagination(query, pagination)
	
	// Execute query
	if err := query.Find(&entities).Error; err != nil {
		return nil, fmt.Errorf("failed to list entities: %w", err)
	}
	
	return entities, nil
}

// Count counts entities with filtering
func (r *BaseRepository[T]) Count(ctx context.Context, filters FilterOptions) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(r.model)
	
	// Apply filters
	query = r.applyFilters(query, filters)
	
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count entities: %w", err)
	}
	
	return count, nil
}

// WithTransaction executes a function within a database transaction
func (r *BaseRepository[T]) WithTransaction(ctx context.Context, fn func(Repository[T]) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &BaseRepository[T]{
			db:    tx,
			model: r.model,
		}
		return fn(txRepo)
	})
}

// applyFilters applies filter options to a GORM query
func (r *BaseRepository[T]) applyFilters(query *gorm.DB, filters FilterOptions) *gorm.DB {
	// Apply basic where conditions
	for field, value := range filters.Where {
		query = query.Where(fmt.Sprintf("%s = ?", field), value)
	}
	
	// Apply where in conditions
	for field, values := range filters.WhereIn {
		query = query.Where(fmt.Sprintf("%s IN ?", field), values)
	}
	
	// Apply where not conditions
	for field, value := range filters.WhereNot {
		query = query.Where(fmt.Sprintf("%s != ?", field), value)
	}
	
	// Apply like conditions
	for field, pattern := range filters.WhereLike {
		query = query.Where(fmt.Sprintf("%s LIKE ?", field), "%"+pattern+"%")
	}
	
	// Apply date range filters
	for field, dateRange := range filters.DateRange {
		if dateRange.Start != "" {
			query = query.Where(fmt.Sprintf("%s >= ?", field), dateRange.Start)
		}
		if dateRange.End != "" {
			query = query.Where(fmt.Sprintf("%s <= ?", field), dateRange.End)
		}
	}
	
	// Apply custom conditions
	for _, condition := range filters.Conditions {
		query = r.applyCondition(query, condition)
	}
	
	// Apply text search
	if filters.Search != "" && len(filters.SearchIn) > 0 {
		var searchConditions []string
		var searchArgs []interface{}
		
		for _, field := range filters.SearchIn {
			searchConditions = append(searchConditions, fmt.Sprintf("%s ILIKE ?", field))
			searchArgs = append(searchArgs, "%"+filters.Search+"%")
		}
		
		if len(searchConditions) > 0 {
			query = query.Where(strings.Join(searchConditions, " OR "), searchArgs...)
		}
	}
	
	return query
}

// applyCondition applies a custom condition to a GORM query
func (r *BaseRepository[T]) applyCondition(query *gorm.DB, condition Condition) *gorm.DB {
	switch strings.ToUpper(condition.Operator) {
	case "=":
		return query.Where(fmt.Sprintf("%s = ?", condition.Field), condition.Value)
	case "!=":
		return query.Where(fmt.Sprintf("%s != ?", condition.Field), condition.Value)
	case ">":
		return query.Where(fmt.Sprintf("%s > ?", condition.Field), condition.Value)
	case ">=":
		return query.Where(fmt.Sprintf("%s >= ?", condition.Field), condition.Value)
	case "<":
		return query.Where(fmt.Sprintf("%s < ?", condition.Field), condition.Value)
	case "<=":
		return query.Where(fmt.Sprintf("%s <= ?", condition.Field), condition.Value)
	case "IN":
		return query.Where(fmt.Sprintf("%s IN ?", condition.Field), condition.Value)
	case "NOT IN":
		return query.Where(fmt.Sprintf("%s NOT IN ?", condition.Field), condition.Value)
	case "LIKE":
		return query.Where(fmt.Sprintf("%s LIKE ?", condition.Field), condition.Value)
	case "ILIKE":
		return query.Where(fmt.Sprintf("%s ILIKE ?", condition.Field), condition.Value)
	case "IS NULL":
		return query.Where(fmt.Sprintf("%s IS NULL", condition.Field))
	case "IS NOT NULL":
		return query.Where(fmt.Sprintf("%s IS NOT NULL", condition.Field))
	default:
		// Default to equality
		return query.Where(fmt.Sprintf("%s = ?", condition.Field), condition.Value)
	}
}

// applyPagination applies pagination to a GORM query
func (r *BaseRepository[T]) applyPagination(query *gorm.DB, pagination Pagination) *gorm.DB {
	// Calculate offset and limit
	offset := pagination.Offset
	limit := pagination.Limit
	
	// Use page and page_size if offset and limit are not provided
	if offset == 0 && limit == 0 {
		if pagination.Page > 0 && pagination.PageSize > 0 {
			offset = (pagination.Page - 1) * pagination.PageSize
			limit = pagination.PageSize
		}
	}
	
	// Apply default limit if none specified
	if limit == 0 {
		limit = 20 // Default page size
	}
	
	// Apply pagination
	if offset > 0 {
		query = query.Offset(offset)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	
	return query
}

// hasDeletedAtField checks if the model has a DeletedAt field for soft delete
func (r *BaseRepository[T]) hasDeletedAtField() bool {
	t := reflect.TypeOf(*r.model)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Name == "DeletedAt" {
			return true
		}
	}
	return false
}

// TransactionManager implements transaction management using GORM
type TransactionManager struct {
	db *gorm.DB
}

// NewTransactionManager creates a new transaction manager
func NewTransactionManager(db *gorm.DB) *TransactionManager {
	return &TransactionManager{db: db}
}

// Begin starts a new database transaction
func (tm *TransactionManager) Begin(ctx context.Context) (Transaction, error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	
	return &TransactionImpl{tx: tx}, nil
}

// WithTransaction executes a function within a database transaction
func (tm *TransactionManager) WithTransaction(ctx context.Context, fn func(Transaction) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txImpl := &TransactionImpl{tx: tx}
		return fn(txImpl)
	})
}

// TransactionImpl implements the Transaction interface
type TransactionImpl struct {
	tx *gorm.DB
}

// Commit commits the transaction
func (t *TransactionImpl) Commit() error {
	return t.tx.Commit().Error
}

// Rollback rolls back the transaction
func (t *TransactionImpl) Rollback() error {
	return t.tx.Rollback().Error
}

// RepositoryInTx returns a repository instance scoped to the transaction.
// (Go methods can't take their own type parameters, so this is a free
// function rather than a method on TransactionImpl.)
func RepositoryInTx[T any](t *TransactionImpl) Repository[T] {
	return &BaseRepository[T]{
		db:    t.tx,
		model: new(T),
	}
}

// RepositoryManager owns the solve-run repository plus the shared
// transaction manager.
type RepositoryManager struct {
	db                 *gorm.DB
	transactionManager *TransactionManager
	solveRuns          *BaseRepository[models.SolveRun]
}

// NewRepositoryManager creates a new repository manager
func NewRepositoryManager(db *gorm.DB) *RepositoryManager {
	tm := NewTransactionManager(db)

	return &RepositoryManager{
		db:                 db,
		transactionManager: tm,
		solveRuns:          NewBaseRepository[models.SolveRun](db),
	}
}

// GetTransactionManager returns the transaction manager
func (rm *RepositoryManager) GetTransactionManager() TransactionManager {
	return *rm.transactionManager
}

// GetSolveRuns returns the solve-run repository.
func (rm *RepositoryManager) GetSolveRuns() *BaseRepository[models.SolveRun] {
	return rm.solveRuns
}

// HealthCheck performs a health check on the database connection
func (rm *RepositoryManager) HealthCheck(ctx context.Context) error {
	sqlDB, err := rm.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	
	return nil
}

// GetStats returns database connection statistics
func (rm *RepositoryManager) GetStats() (map[string]interface{}, error) {
	sqlDB, err := rm.db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	
	stats := sqlDB.Stats()
	return map[string]interface{}{
		"max_open_connections":     stats.MaxOpenConnections,
		"open_connections":         stats.OpenConnections,
		"in_use":                   stats.InUse,
		"idle":                     stats.Idle,
		"wait_count":               stats.WaitCount,
		"wait_duration":            stats.WaitDuration.String(),
		"max_idle_closed":          stats.MaxIdleClosed,
		"max_idle_time_closed":     stats.MaxIdleTimeClosed,
		"max_lifetime_closed":      stats.MaxLifetimeClosed,
	}, nil
}
