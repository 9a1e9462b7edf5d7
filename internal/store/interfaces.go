// Package store defines the persistence interfaces for submission records.
package store

import (
	"context"

	"github.com/TravelTales/travel-claims-backend/types"
)

// SubmissionStore handles submission-related data operations against the
// document store.
type SubmissionStore interface {
	// CreateSubmission persists a new record as a single insert and returns
	// its generated identifier. Identity and creation timestamp are assigned
	// at persist time.
	CreateSubmission(ctx context.Context, sub *types.Submission) (string, error)

	// GetSubmission retrieves a persisted record by its identifier.
	GetSubmission(ctx context.Context, id string) (*types.Submission, error)

	// Ping verifies store connectivity within the configured bounded wait.
	Ping(ctx context.Context) error
}
