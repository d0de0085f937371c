package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

const issueColumns = `id, issue_id, title, date, district, province, affected_area, description, expected_solution, created_by`

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// IssueStore persists issue records. Writes run inside a transaction that is
// opened by the first staged change and closed by Commit or Discard; reads
// issued while it is open go through it.
type IssueStore struct {
	db *sql.DB

	mu sync.Mutex
	tx *sql.Tx
}

func NewIssueStore(db *sql.DB) *IssueStore {
	return &IssueStore{db: db}
}

func (s *IssueStore) Insert(ctx context.Context, rec *domain.IssueRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}

	var date any
	if rec.Date != nil {
		date = rec.Date.UTC()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO issues (issue_id, title, date, district, province, affected_area, description, expected_solution, created_by)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.IssueID, rec.Title, date, rec.District, rec.Province,
		rec.AffectedArea, rec.Description, rec.ExpectedSolution, rec.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	rec.StoreID = strconv.FormatInt(id, 10)
	return nil
}

// FindAll returns every record ordered by rowid, i.e. insertion order.
func (s *IssueStore) FindAll(ctx context.Context) ([]*domain.IssueRecord, error) {
	return s.query(ctx, `SELECT `+issueColumns+` FROM issues ORDER BY id`)
}

func (s *IssueStore) FindByIssueID(ctx context.Context, issueID string) ([]*domain.IssueRecord, error) {
	return s.query(ctx, `SELECT `+issueColumns+` FROM issues WHERE issue_id = ? ORDER BY id`, issueID)
}

func (s *IssueStore) FindByKey(ctx context.Context, title, createdBy string) ([]*domain.IssueRecord, error) {
	return s.query(ctx, `SELECT `+issueColumns+` FROM issues WHERE title = ? AND created_by = ? ORDER BY id`, title, createdBy)
}

func (s *IssueStore) Update(ctx context.Context, storeID string, e domain.IssueEdit) error {
	id, err := parseStoreID(storeID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE issues SET title = ?, description = ?, expected_solution = ?, affected_area = ? WHERE id = ?`,
		e.Title, e.Description, e.ExpectedSolution, e.AffectedArea, id,
	)
	if err != nil {
		return fmt.Errorf("update issue %s: %w", storeID, err)
	}
	return nil
}

func (s *IssueStore) Delete(ctx context.Context, storeID string) error {
	id, err := parseStoreID(storeID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.begin(ctx)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM issues WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete issue %s: %w", storeID, err)
	}
	return nil
}

func (s *IssueStore) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tx != nil
}

// Commit makes staged changes durable. Without staged changes it does
// nothing.
func (s *IssueStore) Commit(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit issues: %w", err)
	}
	return nil
}

func (s *IssueStore) Discard(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx = nil
	if err := tx.Rollback(); err != nil {
		return fmt.Errorf("discard issues: %w", err)
	}
	return nil
}

// begin returns the pending transaction, opening one if needed. Callers hold mu.
func (s *IssueStore) begin(ctx context.Context) (*sql.Tx, error) {
	if s.tx != nil {
		return s.tx, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin issue transaction: %w", err)
	}
	s.tx = tx
	return tx, nil
}

func (s *IssueStore) query(ctx context.Context, q string, args ...any) ([]*domain.IssueRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var src querier = s.db
	if s.tx != nil {
		src = s.tx
	}

	rows, err := src.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	defer rows.Close()

	var out []*domain.IssueRecord
	for rows.Next() {
		rec, err := scanIssue(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query issues: %w", err)
	}
	return out, nil
}

// scanIssue tolerates NULL columns left by older rows; they map to "" and a
// nil date.
func scanIssue(rows *sql.Rows) (*domain.IssueRecord, error) {
	var (
		id                                             int64
		issueID, title, district, province, area, desc sql.NullString
		solution, createdBy                            sql.NullString
		date                                           sql.NullTime
	)
	if err := rows.Scan(&id, &issueID, &title, &date, &district, &province, &area, &desc, &solution, &createdBy); err != nil {
		return nil, fmt.Errorf("scan issue: %w", err)
	}

	rec := &domain.IssueRecord{
		StoreID:          strconv.FormatInt(id, 10),
		IssueID:          issueID.String,
		Title:            title.String,
		District:         district.String,
		Province:         province.String,
		AffectedArea:     area.String,
		Description:      desc.String,
		ExpectedSolution: solution.String,
		CreatedBy:        createdBy.String,
	}
	if date.Valid {
		d := date.Time
		rec.Date = &d
	}
	return rec, nil
}

func parseStoreID(storeID string) (int64, error) {
	id, err := strconv.ParseInt(storeID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid store id %q: %w", storeID, err)
	}
	return id, nil
}
