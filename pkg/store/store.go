// Package store persists inventory reports.
//
// [MongoStore] keeps one document per dependency in the "artifacts"
// collection, keyed by "group:artifact". Each save overwrites the
// dependency's previous document and records the run that produced it.
package store

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/ossinfo/pkg/errors"
	"github.com/matzehuels/ossinfo/pkg/inventory"
)

// DefaultDatabase is used when no database name is configured.
const DefaultDatabase = "ossinfo"

const collection = "artifacts"

// Store saves inventory reports.
type Store interface {
	SaveReport(ctx context.Context, r *inventory.Report) (int, error)
	Close(ctx context.Context) error
}

// ArtifactDoc is the stored form of one successful inventory entry.
type ArtifactDoc struct {
	Dependency    string    `bson:"_id"`
	InputVersion  string    `bson:"version_input,omitempty"`
	LatestVersion string    `bson:"version_latest"`
	Packaging     string    `bson:"packaging,omitempty"`
	Name          string    `bson:"name,omitempty"`
	Description   string    `bson:"description,omitempty"`
	Licenses      []string  `bson:"licenses"`
	License       string    `bson:"license"`
	URL           string    `bson:"url"`
	RunID         string    `bson:"run_id"`
	UpdatedAt     time.Time `bson:"updated_at"`
}

// Documents converts the successful entries of r.
func Documents(r *inventory.Report) []ArtifactDoc {
	var docs []ArtifactDoc
	for _, e := range r.Entries {
		if !e.OK() {
			continue
		}
		a := e.Artifact
		docs = append(docs, ArtifactDoc{
			Dependency:    e.Dependency,
			InputVersion:  e.Version,
			LatestVersion: a.Version,
			Packaging:     a.Packaging,
			Name:          a.Name,
			Description:   a.Description,
			Licenses:      a.Licenses,
			License:       strings.Join(a.Licenses, "/"),
			URL:           a.URL,
			RunID:         r.ID.String(),
			UpdatedAt:     r.GeneratedAt,
		})
	}
	return docs
}

// MongoStore is a [Store] backed by MongoDB.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and verifies the connection. An empty
// database selects [DefaultDatabase].
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid mongo uri")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "mongo ping failed")
	}
	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(collection),
	}, nil
}

// SaveReport upserts one document per successful entry and returns the
// number of documents written.
func (s *MongoStore) SaveReport(ctx context.Context, r *inventory.Report) (int, error) {
	docs := Documents(r)
	if len(docs) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, len(docs))
	for i, d := range docs {
		models[i] = mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": d.Dependency}).
			SetReplacement(d).
			SetUpsert(true)
	}

	res, err := s.coll.BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "failed to save report %s", r.ID)
	}
	return int(res.UpsertedCount + res.MatchedCount), nil
}

// Close disconnects from the server.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
