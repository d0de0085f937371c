package ports

import (
	"context"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// IssueStore is the durable mirror of the issue registry.
//
// Insert, Update and Delete stage changes; nothing is durable until Commit.
// Commit is a no-op when HasChanges reports false.
type IssueStore interface {
	Insert(ctx context.Context, rec *domain.IssueRecord) error
	// FindAll returns every record in insertion order.
	FindAll(ctx context.Context) ([]*domain.IssueRecord, error)
	// FindByIssueID returns the records carrying the given registry identifier.
	FindByIssueID(ctx context.Context, issueID string) ([]*domain.IssueRecord, error)
	// FindByKey returns the records matching title == title AND created_by == createdBy,
	// in insertion order.
	FindByKey(ctx context.Context, title, createdBy string) ([]*domain.IssueRecord, error)
	Update(ctx context.Context, storeID string, edit domain.IssueEdit) error
	Delete(ctx context.Context, storeID string) error

	HasChanges() bool
	Commit(ctx context.Context) error
	// Discard drops staged changes without persisting them.
	Discard(ctx context.Context) error
}
