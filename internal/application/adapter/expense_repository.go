// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockbook/backend/internal/domain/entity"
)

// ExpenseRepository defines the interface for expense persistence operations.
type ExpenseRepository interface {
	// CreateBatch persists the sibling records of one expense submission.
	CreateBatch(ctx context.Context, expenses []*entity.Expense) error

	// FindByID retrieves an expense by its ID.
	FindByID(ctx context.Context, id string) (*entity.Expense, error)

	// FindByOwner retrieves all expenses for an owner, newest first.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Expense, error)

	// Delete removes an expense by ID.
	Delete(ctx context.Context, id string) error
}
