package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

const collectionIssues = "issues"

// issueDocument is the stored shape of an issue. Fields absent from older
// documents decode to their zero values.
type issueDocument struct {
	ID               primitive.ObjectID `bson:"_id,omitempty"`
	IssueID          string             `bson:"issue_id,omitempty"`
	Title            string             `bson:"title"`
	Date             *time.Time         `bson:"date,omitempty"`
	District         string             `bson:"district"`
	Province         string             `bson:"province"`
	AffectedArea     string             `bson:"affected_area"`
	Description      string             `bson:"description"`
	ExpectedSolution string             `bson:"expected_solution"`
	CreatedBy        string             `bson:"created_by"`
}

func toIssueDocument(rec *domain.IssueRecord, id primitive.ObjectID) issueDocument {
	return issueDocument{
		ID:               id,
		IssueID:          rec.IssueID,
		Title:            rec.Title,
		Date:             rec.Date,
		District:         rec.District,
		Province:         rec.Province,
		AffectedArea:     rec.AffectedArea,
		Description:      rec.Description,
		ExpectedSolution: rec.ExpectedSolution,
		CreatedBy:        rec.CreatedBy,
	}
}

func (d issueDocument) record() *domain.IssueRecord {
	return &domain.IssueRecord{
		StoreID:          d.ID.Hex(),
		IssueID:          d.IssueID,
		Title:            d.Title,
		Date:             d.Date,
		District:         d.District,
		Province:         d.Province,
		AffectedArea:     d.AffectedArea,
		Description:      d.Description,
		ExpectedSolution: d.ExpectedSolution,
		CreatedBy:        d.CreatedBy,
	}
}

func editUpdate(e domain.IssueEdit) bson.M {
	return bson.M{"$set": bson.M{
		"title":             e.Title,
		"description":       e.Description,
		"expected_solution": e.ExpectedSolution,
		"affected_area":     e.AffectedArea,
	}}
}

// IssueStore persists issue records in MongoDB. Staged writes are buffered
// as write models and sent in one ordered BulkWrite on Commit. Reads go to
// the collection and do not see the buffer.
type IssueStore struct {
	col *mongo.Collection

	mu      sync.Mutex
	pending []mongo.WriteModel
}

func NewIssueStore(db *mongo.Database) *IssueStore {
	return &IssueStore{col: db.Collection(collectionIssues)}
}

// Insert stages a new document. The ObjectID is assigned here so that the
// record's StoreID is known before Commit.
func (s *IssueStore) Insert(_ context.Context, rec *domain.IssueRecord) error {
	id := primitive.NewObjectID()
	doc := toIssueDocument(rec, id)

	s.mu.Lock()
	s.pending = append(s.pending, mongo.NewInsertOneModel().SetDocument(doc))
	s.mu.Unlock()

	rec.StoreID = id.Hex()
	return nil
}

// FindAll returns every document ordered by _id, which follows insertion
// order for ObjectIDs generated by this process.
func (s *IssueStore) FindAll(ctx context.Context) ([]*domain.IssueRecord, error) {
	return s.find(ctx, bson.M{})
}

func (s *IssueStore) FindByIssueID(ctx context.Context, issueID string) ([]*domain.IssueRecord, error) {
	return s.find(ctx, bson.M{"issue_id": issueID})
}

func (s *IssueStore) FindByKey(ctx context.Context, title, createdBy string) ([]*domain.IssueRecord, error) {
	return s.find(ctx, bson.M{"title": title, "created_by": createdBy})
}

func (s *IssueStore) Update(_ context.Context, storeID string, e domain.IssueEdit) error {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return fmt.Errorf("invalid store id %q: %w", storeID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, mongo.NewUpdateOneModel().
		SetFilter(bson.M{"_id": id}).
		SetUpdate(editUpdate(e)))
	return nil
}

func (s *IssueStore) Delete(_ context.Context, storeID string) error {
	id, err := primitive.ObjectIDFromHex(storeID)
	if err != nil {
		return fmt.Errorf("invalid store id %q: %w", storeID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append(s.pending, mongo.NewDeleteOneModel().SetFilter(bson.M{"_id": id}))
	return nil
}

func (s *IssueStore) HasChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending) > 0
}

// Commit flushes the buffered writes. The buffer is kept on failure so the
// caller can decide to Discard it.
func (s *IssueStore) Commit(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := s.col.BulkWrite(ctx, s.pending, options.BulkWrite().SetOrdered(true)); err != nil {
		return fmt.Errorf("commit issues: %w", err)
	}
	s.pending = nil
	return nil
}

func (s *IssueStore) Discard(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}

// EnsureIndexes creates the lookup indexes on the issues collection.
func (s *IssueStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "issue_id", Value: 1}}},
		{Keys: bson.D{{Key: "title", Value: 1}, {Key: "created_by", Value: 1}}},
	}

	_, err := s.col.Indexes().CreateMany(ctx, indexes)
	return err
}

func (s *IssueStore) find(ctx context.Context, filter bson.M) ([]*domain.IssueRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := s.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find issues: %w", err)
	}
	defer cur.Close(ctx)

	var docs []issueDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}

	out := make([]*domain.IssueRecord, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.record())
	}
	return out, nil
}
