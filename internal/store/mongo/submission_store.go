// Package mongo implements the submission store on top of MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/TravelTales/travel-claims-backend/errors"
	"github.com/TravelTales/travel-claims-backend/internal/store"
	"github.com/TravelTales/travel-claims-backend/types"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// NewClient constructs the process-wide MongoDB client. The driver connects
// lazily and pools connections, so the single client returned here is the
// cached handle every request reuses; redundant connect attempts are
// idempotent. Server selection is bounded so an unreachable store fails a
// request instead of hanging it.
func NewClient(ctx context.Context, uri string, serverSelectionTimeout time.Duration) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(serverAPI).
		SetServerSelectionTimeout(serverSelectionTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}
	return client, nil
}

// submissionStore is a MongoDB implementation of store.SubmissionStore.
type submissionStore struct {
	collection *mongo.Collection
}

// NewSubmissionStore creates a submission store over the given database and
// collection name.
func NewSubmissionStore(db *mongo.Database, collectionName string) store.SubmissionStore {
	return &submissionStore{
		collection: db.Collection(collectionName),
	}
}

// CreateSubmission inserts a new record, assigning its ObjectID and creation
// timestamp at persist time.
func (s *submissionStore) CreateSubmission(ctx context.Context, sub *types.Submission) (string, error) {
	if sub.ID.IsZero() {
		sub.ID = primitive.NewObjectID()
	}
	if sub.CreatedAt.IsZero() {
		sub.CreatedAt = time.Now().UTC()
	}

	_, err := s.collection.InsertOne(ctx, sub)
	if err != nil {
		return "", classifyError(err)
	}
	return sub.ID.Hex(), nil
}

// GetSubmission retrieves a record by its hex ObjectID.
func (s *submissionStore) GetSubmission(ctx context.Context, id string) (*types.Submission, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ValidationFailed("invalid_id", fmt.Sprintf("invalid submission ID %q", id))
	}

	var sub types.Submission
	err = s.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&sub)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Submission", id)
		}
		return nil, classifyError(err)
	}
	return &sub, nil
}

// Ping verifies connectivity to the store.
func (s *submissionStore) Ping(ctx context.Context) error {
	if err := s.collection.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return apperrors.NewStoreConnectionError(err)
	}
	return nil
}

// classifyError maps driver failures onto the error taxonomy: connectivity
// faults (server selection timeouts, network errors) are distinguished from
// write rejections so operators can tell them apart.
func classifyError(err error) *apperrors.AppError {
	if mongo.IsTimeout(err) || mongo.IsNetworkError(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, mongo.ErrClientDisconnected) {
		return apperrors.NewStoreConnectionError(err)
	}
	return apperrors.NewStoreInsertError(err)
}
