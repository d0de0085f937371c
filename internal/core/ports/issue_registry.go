package ports

import (
	"context"
	"time"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

// AddIssueInput carries every field of a new issue. No field is validated
// by the registry itself.
type AddIssueInput struct {
	Title            string
	Date             time.Time
	District         string
	Province         string
	AffectedArea     string
	Description      string
	ExpectedSolution string
	CreatedBy        string
}

// IssueRegistry is the in-memory working set of issues kept in step with
// the issue store.
type IssueRegistry interface {
	Refresh(ctx context.Context) error
	Add(ctx context.Context, in AddIssueInput) (domain.Issue, error)
	Delete(ctx context.Context, issue domain.Issue) error
	Edit(ctx context.Context, issue domain.Issue, edit domain.IssueEdit) error

	Issues() []domain.Issue
	IssuesBy(createdBy string) []domain.Issue
	Issue(id string) (domain.Issue, bool)
}
