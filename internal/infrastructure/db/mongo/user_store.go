package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lankacivic/issue-tracker/internal/core/domain"
)

const collectionUsers = "users"

type userDocument struct {
	Username  string    `bson:"username"`
	Password  string    `bson:"password"`
	Email     string    `bson:"email,omitempty"`
	CreatedAt time.Time `bson:"created_at,omitempty"`
}

type UserStore struct {
	col *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{col: db.Collection(collectionUsers)}
}

// Create inserts a new user document.
func (r *UserStore) Create(ctx context.Context, u *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, userDocument{
		Username:  u.Username,
		Password:  u.Password,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	})
	return err
}

// FindByUsername returns every user document with the given username.
func (r *UserStore) FindByUsername(ctx context.Context, username string) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"username": username}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]*domain.User, 0, len(docs))
	for _, d := range docs {
		out = append(out, &domain.User{
			Username:  d.Username,
			Password:  d.Password,
			Email:     d.Email,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

// EnsureIndexes creates the username index. It is not unique: older data
// may already hold duplicates and registration checks by lookup.
func (r *UserStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "username", Value: 1}}})
	return err
}
