package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// legacyNamespace seeds the identifiers derived for records that were
// persisted without one, so that repeated refreshes agree on them.
var legacyNamespace = uuid.MustParse("6f1c1f2e-4b8a-4d0e-9a57-3d3c2b7e51a4")

// IssueRegistry holds the working set of issues and keeps it in step with
// the issue store. The store is written and committed first; the in-memory
// list only changes once the store has accepted the change.
type IssueRegistry struct {
	mu     sync.RWMutex
	issues []domain.Issue

	store ports.IssueStore
	newID func() string
	log   zerolog.Logger
}

// NewIssueRegistry returns an empty registry backed by store. Call Refresh
// to load the stored issues.
func NewIssueRegistry(store ports.IssueStore, log zerolog.Logger) *IssueRegistry {
	return &IssueRegistry{
		store: store,
		newID: uuid.NewString,
		log:   log,
	}
}

// Refresh replaces the working set with every stored issue. On a read
// failure the current list is kept.
func (r *IssueRegistry) Refresh(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, err := r.store.FindAll(ctx)
	if err != nil {
		r.log.Error().Err(err).Str("op", "refresh").Msg("failed to fetch issues")
		return fmt.Errorf("refresh issues: %w: %w", domain.ErrStoreRead, err)
	}

	issues := make([]domain.Issue, 0, len(records))
	for _, rec := range records {
		issues = append(issues, r.fromRecord(rec))
	}
	r.issues = issues

	r.log.Debug().Int("count", len(issues)).Msg("issues refreshed")
	return nil
}

// Add creates a new issue, persists it and appends it to the working set.
func (r *IssueRegistry) Add(ctx context.Context, in ports.AddIssueInput) (domain.Issue, error) {
	issue := domain.Issue{
		ID:               r.newID(),
		Title:            in.Title,
		Date:             in.Date,
		District:         in.District,
		Province:         in.Province,
		AffectedArea:     in.AffectedArea,
		Description:      in.Description,
		ExpectedSolution: in.ExpectedSolution,
		CreatedBy:        in.CreatedBy,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.store.Insert(ctx, domain.NewIssueRecord(issue)); err != nil {
		return domain.Issue{}, r.writeFailed(ctx, "add", issue, err)
	}
	if err := r.store.Commit(ctx); err != nil {
		return domain.Issue{}, r.writeFailed(ctx, "add", issue, err)
	}

	r.issues = append(r.issues, issue)

	r.log.Info().Str("issue_id", issue.ID).Str("created_by", issue.CreatedBy).Msg("issue added")
	return issue, nil
}

// Delete removes issue from the store and from the working set. A missing
// stored record is not an error: the in-memory entry is still removed.
func (r *IssueRegistry) Delete(ctx context.Context, issue domain.Issue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.locate(ctx, issue)
	if err != nil {
		r.readFailed("delete", issue, err)
		return fmt.Errorf("delete issue: %w: %w", domain.ErrStoreRead, err)
	}

	if rec != nil {
		if err := r.store.Delete(ctx, rec.StoreID); err != nil {
			return r.writeFailed(ctx, "delete", issue, err)
		}
		if err := r.store.Commit(ctx); err != nil {
			return r.writeFailed(ctx, "delete", issue, err)
		}
	} else {
		r.log.Warn().Str("issue_id", issue.ID).Str("title", issue.Title).Msg("no stored record for issue")
	}

	if idx := r.indexOf(issue.ID); idx >= 0 {
		r.issues = slices.Delete(r.issues, idx, idx+1)
	}
	return nil
}

// Edit overwrites the editable fields of issue. The stored record is located
// through the reference as passed in, so legacy rows match on the title it
// carried before the edit. A stale reference leaves the working set alone
// but still updates the store.
func (r *IssueRegistry) Edit(ctx context.Context, issue domain.Issue, edit domain.IssueEdit) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, err := r.locate(ctx, issue)
	if err != nil {
		r.readFailed("edit", issue, err)
		return fmt.Errorf("edit issue: %w: %w", domain.ErrStoreRead, err)
	}

	if rec != nil {
		if err := r.store.Update(ctx, rec.StoreID, edit); err != nil {
			return r.writeFailed(ctx, "edit", issue, err)
		}
		if err := r.store.Commit(ctx); err != nil {
			return r.writeFailed(ctx, "edit", issue, err)
		}
	} else {
		r.log.Warn().Str("issue_id", issue.ID).Str("title", issue.Title).Msg("no stored record for issue")
	}

	if idx := r.indexOf(issue.ID); idx >= 0 {
		r.issues[idx].Apply(edit)
	}
	return nil
}

// Issues returns a copy of the working set in fetch/insertion order.
func (r *IssueRegistry) Issues() []domain.Issue {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.issues)
}

// IssuesBy returns the issues reported by createdBy.
func (r *IssueRegistry) IssuesBy(createdBy string) []domain.Issue {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Issue
	for _, issue := range r.issues {
		if issue.CreatedBy == createdBy {
			out = append(out, issue)
		}
	}
	return out
}

// Issue looks up a single issue by identifier.
func (r *IssueRegistry) Issue(id string) (domain.Issue, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if idx := r.indexOf(id); idx >= 0 {
		return r.issues[idx], true
	}
	return domain.Issue{}, false
}

// locate finds the stored record behind issue: the record carrying its
// identifier, else a legacy record with the same title and reporter. Among
// legacy records the one whose derived identifier equals issue.ID wins,
// then the first match. Returns nil when nothing matches.
func (r *IssueRegistry) locate(ctx context.Context, issue domain.Issue) (*domain.IssueRecord, error) {
	if issue.ID != "" {
		recs, err := r.store.FindByIssueID(ctx, issue.ID)
		if err != nil {
			return nil, err
		}
		if len(recs) > 0 {
			return recs[0], nil
		}
	}

	recs, err := r.store.FindByKey(ctx, issue.Title, issue.CreatedBy)
	if err != nil {
		return nil, err
	}

	var first *domain.IssueRecord
	for _, rec := range recs {
		if !rec.Legacy() {
			continue
		}
		if legacyID(rec.StoreID) == issue.ID {
			return rec, nil
		}
		if first == nil {
			first = rec
		}
	}
	return first, nil
}

func (r *IssueRegistry) fromRecord(rec *domain.IssueRecord) domain.Issue {
	id := rec.IssueID
	if id == "" {
		id = legacyID(rec.StoreID)
	}

	var date time.Time
	if rec.Date != nil {
		date = *rec.Date
	} else {
		r.log.Warn().Str("store_id", rec.StoreID).Msg("stored issue has no date")
	}

	return domain.Issue{
		ID:               id,
		Title:            rec.Title,
		Date:             date,
		District:         rec.District,
		Province:         rec.Province,
		AffectedArea:     rec.AffectedArea,
		Description:      rec.Description,
		ExpectedSolution: rec.ExpectedSolution,
		CreatedBy:        rec.CreatedBy,
	}
}

func (r *IssueRegistry) indexOf(id string) int {
	return slices.IndexFunc(r.issues, func(i domain.Issue) bool { return i.ID == id })
}

func (r *IssueRegistry) readFailed(op string, issue domain.Issue, err error) {
	r.log.Error().Err(err).
		Str("op", op).
		Str("issue_id", issue.ID).
		Str("title", issue.Title).
		Str("created_by", issue.CreatedBy).
		Msg("issue lookup failed")
}

// writeFailed drops whatever the failed operation staged, so a later commit
// cannot persist half of it.
func (r *IssueRegistry) writeFailed(ctx context.Context, op string, issue domain.Issue, err error) error {
	if dErr := r.store.Discard(ctx); dErr != nil {
		r.log.Warn().Err(dErr).Str("op", op).Msg("failed to discard staged changes")
	}
	r.log.Error().Err(err).
		Str("op", op).
		Str("issue_id", issue.ID).
		Str("title", issue.Title).
		Str("created_by", issue.CreatedBy).
		Msg("issue write failed")
	return fmt.Errorf("%s issue: %w: %w", op, domain.ErrStoreWrite, err)
}

func legacyID(storeID string) string {
	return uuid.NewSHA1(legacyNamespace, []byte(storeID)).String()
}
