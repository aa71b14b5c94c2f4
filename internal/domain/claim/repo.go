package claim

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, c *Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*Claim, error)
	// List returns claims matching f, newest first.
	List(ctx context.Context, f Filter) ([]*Claim, error)
	// ListByPatient returns a patient's own claims, newest first.
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*Claim, error)
	// UpdateReview persists the review fields of c.
	UpdateReview(ctx context.Context, c *Claim) error
}
