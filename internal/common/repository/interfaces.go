package repository

import (
	"context"
)

// Repository defines the base repository interface for CRUD operations
type Repository[T any] interface {
	Create(ctx context.Context, entity *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id string) error

	List(ctx context.Context, filters FilterOptions, pagination Pagination) ([]*T, error)
	Count(ctx context.Context, filters FilterOptions) (int64, error)

	WithTransaction(ctx context.Context, fn func(Repository[T]) error) error
}

// FilterOptions represents filtering options for queries
type FilterOptions struct {
	Where     map[string]interface{}   `json:"where"`
	WhereIn   map[string][]interface{} `json:"where_in"`
	WhereNot  map[string]interface{}   `json:"where_not"`
	WhereLike map[string]string        `json:"where_like"`

	DateRange map[string]DateRange `json:"date_range"`

	Search   string   `json:"search"`
	SearchIn []string `json:"search_in"`

	Conditions []Condition `json:"conditions"`
}

// Condition represents a custom query condition
type Condition struct {
	Field    string      `json:"field"`
	Operator string      `json:"operator"` // =, !=, >, <, >=, <=, IN, NOT IN, LIKE, ILIKE
	Value    interface{} `json:"value"`
}

// DateRange represents a date range filter
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Pagination represents pagination options
type Pagination struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Offset   int `json:"offset"`
	Limit    int `json:"limit"`
}

// SortOptions represents sorting options
type SortOptions struct {
	Field     string `json:"field"`
	Direction string `json:"direction"` // ASC, DESC
}

// Transaction represents a database transaction
type Transaction interface {
	Commit() error
	Rollback() error
}
