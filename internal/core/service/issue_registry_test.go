package service

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
	"github.com/lankacivic/issue-tracker/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub store
// ---------------------------------------------------------------------------

// stubIssueStore stages writes on a copy of the committed rows, the same way
// the real adapters hold changes until Commit.
type stubIssueStore struct {
	committed []*domain.IssueRecord
	staged    []*domain.IssueRecord
	seq       int

	findErr   error
	insertErr error
	updateErr error
	deleteErr error
	commitErr error

	commits  int
	discards int
}

func newStubIssueStore() *stubIssueStore {
	return &stubIssueStore{}
}

func cloneRecord(r *domain.IssueRecord) *domain.IssueRecord {
	c := *r
	if r.Date != nil {
		d := *r.Date
		c.Date = &d
	}
	return &c
}

func cloneRecords(in []*domain.IssueRecord) []*domain.IssueRecord {
	out := make([]*domain.IssueRecord, len(in))
	for i, r := range in {
		out[i] = cloneRecord(r)
	}
	return out
}

func (s *stubIssueStore) view() []*domain.IssueRecord {
	if s.staged != nil {
		return s.staged
	}
	return s.committed
}

func (s *stubIssueStore) stage() {
	if s.staged == nil {
		s.staged = cloneRecords(s.committed)
	}
}

// seed writes a committed row directly, bypassing staging.
func (s *stubIssueStore) seed(rec domain.IssueRecord) *domain.IssueRecord {
	s.seq++
	rec.StoreID = strconv.Itoa(s.seq)
	s.committed = append(s.committed, cloneRecord(&rec))
	return &rec
}

func (s *stubIssueStore) Insert(_ context.Context, rec *domain.IssueRecord) error {
	if s.insertErr != nil {
		return s.insertErr
	}
	s.stage()
	s.seq++
	c := cloneRecord(rec)
	c.StoreID = strconv.Itoa(s.seq)
	s.staged = append(s.staged, c)
	return nil
}

func (s *stubIssueStore) FindAll(_ context.Context) ([]*domain.IssueRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return cloneRecords(s.view()), nil
}

func (s *stubIssueStore) FindByIssueID(_ context.Context, issueID string) ([]*domain.IssueRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []*domain.IssueRecord
	for _, r := range s.view() {
		if r.IssueID == issueID {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (s *stubIssueStore) FindByKey(_ context.Context, title, createdBy string) ([]*domain.IssueRecord, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	var out []*domain.IssueRecord
	for _, r := range s.view() {
		if r.Title == title && r.CreatedBy == createdBy {
			out = append(out, cloneRecord(r))
		}
	}
	return out, nil
}

func (s *stubIssueStore) Update(_ context.Context, storeID string, e domain.IssueEdit) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.stage()
	for _, r := range s.staged {
		if r.StoreID == storeID {
			r.Title = e.Title
			r.Description = e.Description
			r.ExpectedSolution = e.ExpectedSolution
			r.AffectedArea = e.AffectedArea
		}
	}
	return nil
}

func (s *stubIssueStore) Delete(_ context.Context, storeID string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.stage()
	for i, r := range s.staged {
		if r.StoreID == storeID {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			break
		}
	}
	return nil
}

func (s *stubIssueStore) HasChanges() bool { return s.staged != nil }

func (s *stubIssueStore) Commit(_ context.Context) error {
	if !s.HasChanges() {
		return nil
	}
	if s.commitErr != nil {
		return s.commitErr
	}
	s.committed = s.staged
	s.staged = nil
	s.commits++
	return nil
}

func (s *stubIssueStore) Discard(_ context.Context) error {
	s.staged = nil
	s.discards++
	return nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var issueDate = time.Date(2024, time.May, 14, 0, 0, 0, 0, time.UTC)

func sampleInput(title, createdBy string) ports.AddIssueInput {
	return ports.AddIssueInput{
		Title:            title,
		Date:             issueDate,
		District:         "Badulla",
		Province:         "Uva",
		AffectedArea:     "Passara Rd",
		Description:      "Street lights out",
		ExpectedSolution: "Replace bulbs",
		CreatedBy:        createdBy,
	}
}

func newRegistry(store *stubIssueStore) *IssueRegistry {
	return NewIssueRegistry(store, zerolog.Nop())
}

func assertMatchesInput(t *testing.T, got domain.Issue, in ports.AddIssueInput) {
	t.Helper()
	want := domain.Issue{
		ID:               got.ID,
		Title:            in.Title,
		Date:             in.Date,
		District:         in.District,
		Province:         in.Province,
		AffectedArea:     in.AffectedArea,
		Description:      in.Description,
		ExpectedSolution: in.ExpectedSolution,
		CreatedBy:        in.CreatedBy,
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("issue mismatch:\n got  %+v\n want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// Add
// ---------------------------------------------------------------------------

func TestIssueRegistry_Add_AppendsAndPersists(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)

	in := sampleInput("Broken lights", "alice")
	issue, err := reg.Add(context.Background(), in)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if issue.ID == "" {
		t.Fatal("expected generated identifier")
	}

	issues := reg.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	assertMatchesInput(t, issues[len(issues)-1], in)

	if len(store.committed) != 1 {
		t.Fatalf("expected 1 committed record, got %d", len(store.committed))
	}
	rec := store.committed[0]
	if rec.IssueID != issue.ID {
		t.Errorf("record issue id = %q, want %q", rec.IssueID, issue.ID)
	}
	if rec.Date == nil || !rec.Date.Equal(issueDate) {
		t.Errorf("record date = %v, want %v", rec.Date, issueDate)
	}
	if store.HasChanges() {
		t.Error("expected nothing left staged after Add")
	}
}

func TestIssueRegistry_Add_GrowsByOne(t *testing.T) {
	reg := newRegistry(newStubIssueStore())

	for i := 0; i < 3; i++ {
		before := len(reg.Issues())
		in := sampleInput("Issue "+strconv.Itoa(i), "bob")
		if _, err := reg.Add(context.Background(), in); err != nil {
			t.Fatalf("Add #%d: %v", i, err)
		}
		issues := reg.Issues()
		if len(issues) != before+1 {
			t.Fatalf("Add #%d: length %d, want %d", i, len(issues), before+1)
		}
		assertMatchesInput(t, issues[len(issues)-1], in)
	}
}

func TestIssueRegistry_Add_AcceptsEmptyFields(t *testing.T) {
	reg := newRegistry(newStubIssueStore())

	if _, err := reg.Add(context.Background(), ports.AddIssueInput{}); err != nil {
		t.Fatalf("expected empty input to be accepted, got %v", err)
	}
	if got := len(reg.Issues()); got != 1 {
		t.Fatalf("expected 1 issue, got %d", got)
	}
}

func TestIssueRegistry_Add_CommitFailureLeavesListUnchanged(t *testing.T) {
	store := newStubIssueStore()
	store.commitErr = errors.New("disk full")
	reg := newRegistry(store)

	_, err := reg.Add(context.Background(), sampleInput("Flooding", "alice"))
	if !errors.Is(err, domain.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if got := len(reg.Issues()); got != 0 {
		t.Fatalf("expected empty list after failed add, got %d", got)
	}
	if store.discards != 1 {
		t.Errorf("expected staged insert to be discarded, discards=%d", store.discards)
	}
	if store.HasChanges() {
		t.Error("expected no staged changes after failed add")
	}
}

func TestIssueRegistry_Add_InsertFailure(t *testing.T) {
	store := newStubIssueStore()
	store.insertErr = errors.New("closed")
	reg := newRegistry(store)

	if _, err := reg.Add(context.Background(), sampleInput("x", "alice")); !errors.Is(err, domain.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if len(reg.Issues()) != 0 {
		t.Fatal("expected empty list")
	}
}

// ---------------------------------------------------------------------------
// Delete
// ---------------------------------------------------------------------------

func TestIssueRegistry_Delete_RemovesFromListAndStore(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	keep, _ := reg.Add(ctx, sampleInput("Keep", "alice"))
	gone, _ := reg.Add(ctx, sampleInput("Gone", "alice"))

	if err := reg.Delete(ctx, gone); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	issues := reg.Issues()
	if len(issues) != 1 || issues[0].ID != keep.ID {
		t.Fatalf("unexpected list after delete: %+v", issues)
	}
	if _, ok := reg.Issue(gone.ID); ok {
		t.Fatal("deleted issue still present")
	}
	if len(store.committed) != 1 || store.committed[0].IssueID != keep.ID {
		t.Fatalf("unexpected store rows after delete: %+v", store.committed)
	}
}

func TestIssueRegistry_Delete_TwiceIsNoOp(t *testing.T) {
	reg := newRegistry(newStubIssueStore())
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Once", "alice"))
	_, _ = reg.Add(ctx, sampleInput("Other", "alice"))

	if err := reg.Delete(ctx, issue); err != nil {
		t.Fatalf("first Delete: %v", err)
	}
	if err := reg.Delete(ctx, issue); err != nil {
		t.Fatalf("second Delete: %v", err)
	}
	if got := len(reg.Issues()); got != 1 {
		t.Fatalf("expected 1 issue left, got %d", got)
	}
}

func TestIssueRegistry_Delete_WithoutStoredRecord(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)

	issue := domain.Issue{ID: "mem-only", Title: "Test Issue", CreatedBy: "Test User"}
	reg.issues = append(reg.issues, issue)

	if err := reg.Delete(context.Background(), issue); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if got := len(reg.Issues()); got != 0 {
		t.Fatalf("expected empty list, got %d", got)
	}
	if store.commits != 0 {
		t.Errorf("expected no commit, got %d", store.commits)
	}
}

func TestIssueRegistry_Delete_ReadFailureKeepsEntry(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Stay", "alice"))
	store.findErr = errors.New("io error")

	if err := reg.Delete(ctx, issue); !errors.Is(err, domain.ErrStoreRead) {
		t.Fatalf("expected ErrStoreRead, got %v", err)
	}
	if got := len(reg.Issues()); got != 1 {
		t.Fatalf("expected entry to be kept, got %d issues", got)
	}
}

func TestIssueRegistry_Delete_CommitFailureKeepsEntry(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Stay", "alice"))
	store.commitErr = errors.New("locked")

	if err := reg.Delete(ctx, issue); !errors.Is(err, domain.ErrStoreWrite) {
		t.Fatalf("expected ErrStoreWrite, got %v", err)
	}
	if got := len(reg.Issues()); got != 1 {
		t.Fatalf("expected entry to be kept, got %d issues", got)
	}
	if len(store.committed) != 1 {
		t.Fatalf("expected stored row to survive, got %d", len(store.committed))
	}
}

// ---------------------------------------------------------------------------
// Edit
// ---------------------------------------------------------------------------

func TestIssueRegistry_Edit_UpdatesEditableFieldsOnly(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Test Issue", "Test User"))

	edit := domain.IssueEdit{
		Title:            "Updated Issue",
		Description:      "Updated Description",
		ExpectedSolution: "Updated Solution",
		AffectedArea:     "Updated Area",
	}
	if err := reg.Edit(ctx, issue, edit); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	issues := reg.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	got := issues[0]
	if got.Title != edit.Title || got.Description != edit.Description ||
		got.ExpectedSolution != edit.ExpectedSolution || got.AffectedArea != edit.AffectedArea {
		t.Fatalf("editable fields not updated: %+v", got)
	}
	if !got.Date.Equal(issue.Date) || got.District != issue.District ||
		got.Province != issue.Province || got.CreatedBy != issue.CreatedBy {
		t.Fatalf("fixed fields changed: %+v", got)
	}

	rec := store.committed[0]
	if rec.Title != edit.Title || rec.AffectedArea != edit.AffectedArea {
		t.Fatalf("stored record not updated: %+v", rec)
	}
	if rec.District != issue.District {
		t.Fatalf("stored district changed: %q", rec.District)
	}
}

func TestIssueRegistry_Edit_StaleReferenceStillUpdatesStore(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Old", "alice"))
	reg.issues = nil // simulate a reference the working set no longer holds

	if err := reg.Edit(ctx, issue, domain.IssueEdit{Title: "New"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if len(reg.Issues()) != 0 {
		t.Fatal("expected working set untouched")
	}
	if store.committed[0].Title != "New" {
		t.Fatalf("expected stored title updated, got %q", store.committed[0].Title)
	}
}

func TestIssueRegistry_Edit_NoStoredRecordChangesMemoryOnly(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)

	issue := domain.Issue{ID: "mem-only", Title: "Test Issue", CreatedBy: "Test User"}
	reg.issues = append(reg.issues, issue)

	if err := reg.Edit(context.Background(), issue, domain.IssueEdit{Title: "Renamed"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}
	got, ok := reg.Issue("mem-only")
	if !ok || got.Title != "Renamed" {
		t.Fatalf("expected in-memory rename, got %+v", got)
	}
	if store.commits != 0 || len(store.committed) != 0 {
		t.Fatal("expected store untouched")
	}
}

func TestIssueRegistry_Edit_LegacyRecordsMatchedByOriginalTitle(t *testing.T) {
	store := newStubIssueStore()
	first := store.seed(domain.IssueRecord{Title: "Drain", CreatedBy: "alice", Description: "one"})
	second := store.seed(domain.IssueRecord{Title: "Drain", CreatedBy: "alice", Description: "two"})
	reg := newRegistry(store)
	ctx := context.Background()

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	issues := reg.Issues()
	if len(issues) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(issues))
	}

	if err := reg.Edit(ctx, issues[1], domain.IssueEdit{Title: "Drain (blocked)", Description: "two+"}); err != nil {
		t.Fatalf("Edit: %v", err)
	}

	if store.committed[0].StoreID != first.StoreID || store.committed[0].Title != "Drain" {
		t.Fatalf("first legacy record should be untouched: %+v", store.committed[0])
	}
	if store.committed[1].StoreID != second.StoreID || store.committed[1].Title != "Drain (blocked)" {
		t.Fatalf("second legacy record should be edited: %+v", store.committed[1])
	}
}

func TestIssueRegistry_Edit_ReadFailure(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	issue, _ := reg.Add(ctx, sampleInput("Keep", "alice"))
	store.findErr = errors.New("io")

	if err := reg.Edit(ctx, issue, domain.IssueEdit{Title: "Changed"}); !errors.Is(err, domain.ErrStoreRead) {
		t.Fatalf("expected ErrStoreRead, got %v", err)
	}
	if got, _ := reg.Issue(issue.ID); got.Title != "Keep" {
		t.Fatalf("expected title unchanged, got %q", got.Title)
	}
}

// ---------------------------------------------------------------------------
// Refresh
// ---------------------------------------------------------------------------

func TestIssueRegistry_Refresh_Idempotent(t *testing.T) {
	store := newStubIssueStore()
	store.seed(domain.IssueRecord{Title: "Legacy", CreatedBy: "carol", Date: &issueDate})
	reg := newRegistry(store)
	ctx := context.Background()
	_, _ = reg.Add(ctx, sampleInput("Fresh", "carol"))

	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("first Refresh: %v", err)
	}
	first := reg.Issues()
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh: %v", err)
	}
	second := reg.Issues()

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("refresh not idempotent:\n%+v\n%+v", first, second)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 issues, got %d", len(first))
	}
}

func TestIssueRegistry_Refresh_RoundTrip(t *testing.T) {
	reg := newRegistry(newStubIssueStore())
	ctx := context.Background()

	in := sampleInput("Landslide", "dave")
	added, err := reg.Add(ctx, in)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	reg.issues = nil
	if err := reg.Refresh(ctx); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	got, ok := reg.Issue(added.ID)
	if !ok {
		t.Fatalf("added issue missing after refresh: %+v", reg.Issues())
	}
	assertMatchesInput(t, got, in)
}

func TestIssueRegistry_Refresh_FailureKeepsStaleList(t *testing.T) {
	store := newStubIssueStore()
	reg := newRegistry(store)
	ctx := context.Background()

	_, _ = reg.Add(ctx, sampleInput("Stale", "erin"))
	store.findErr = errors.New("unavailable")

	if err := reg.Refresh(ctx); !errors.Is(err, domain.ErrStoreRead) {
		t.Fatalf("expected ErrStoreRead, got %v", err)
	}
	if got := len(reg.Issues()); got != 1 {
		t.Fatalf("expected stale list of 1, got %d", got)
	}
}

func TestIssueRegistry_Refresh_MissingFieldsMapToZeroValues(t *testing.T) {
	store := newStubIssueStore()
	store.seed(domain.IssueRecord{})
	reg := newRegistry(store)

	if err := reg.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	issues := reg.Issues()
	if len(issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(issues))
	}
	got := issues[0]
	if got.ID == "" {
		t.Error("expected derived identifier for legacy record")
	}
	if got.HasDate() {
		t.Errorf("expected zero date, got %v", got.Date)
	}
	if got.Title != "" || got.CreatedBy != "" || got.District != "" {
		t.Errorf("expected empty text fields, got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// Read helpers
// ---------------------------------------------------------------------------

func TestIssueRegistry_IssuesBy(t *testing.T) {
	reg := newRegistry(newStubIssueStore())
	ctx := context.Background()

	_, _ = reg.Add(ctx, sampleInput("A1", "alice"))
	_, _ = reg.Add(ctx, sampleInput("B1", "bob"))
	_, _ = reg.Add(ctx, sampleInput("A2", "alice"))

	mine := reg.IssuesBy("alice")
	if len(mine) != 2 || mine[0].Title != "A1" || mine[1].Title != "A2" {
		t.Fatalf("unexpected issues for alice: %+v", mine)
	}
	if got := reg.IssuesBy("nobody"); len(got) != 0 {
		t.Fatalf("expected none, got %+v", got)
	}
}

func TestIssueRegistry_IssuesReturnsCopy(t *testing.T) {
	reg := newRegistry(newStubIssueStore())
	issue, _ := reg.Add(context.Background(), sampleInput("Original", "alice"))

	snapshot := reg.Issues()
	snapshot[0].Title = "Mutated"

	if got, _ := reg.Issue(issue.ID); got.Title != "Original" {
		t.Fatalf("snapshot mutation leaked into registry: %q", got.Title)
	}
}
