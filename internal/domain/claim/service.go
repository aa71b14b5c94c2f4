package claim

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"github.com/medclaims/medclaims/internal/platform/apperr"
	"github.com/medclaims/medclaims/internal/platform/auth"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit creates a claim owned by the caller. New claims always start
// Pending with no review fields set.
func (s *Service) Submit(ctx context.Context, caller auth.Identity, in SubmitInput) (*Claim, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Description = strings.TrimSpace(in.Description)

	if in.Name == "" {
		return nil, apperr.Validation("name", "name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return nil, apperr.Validation("email", "a valid email is required")
	}
	if in.ClaimAmount <= 0 {
		return nil, apperr.Validation("claimAmount", "claim amount must be greater than zero")
	}
	if in.Description == "" {
		return nil, apperr.Validation("description", "description is required")
	}
	if in.Document == "" {
		return nil, apperr.Validation("document", "a supporting document is required")
	}

	c := &Claim{
		PatientID:   caller.UserID,
		Name:        in.Name,
		Email:       in.Email,
		ClaimAmount: in.ClaimAmount,
		Description: in.Description,
		Document:    in.Document,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns all claims matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]*Claim, error) {
	if f.MinAmount != nil && *f.MinAmount < 0 {
		return nil, apperr.Validation("minAmount", "minAmount must not be negative")
	}
	if f.MinAmount != nil && f.MaxAmount != nil && *f.MaxAmount < *f.MinAmount {
		return nil, apperr.Validation("maxAmount", "maxAmount must not be less than minAmount")
	}
	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return nil, apperr.Validation("endDate", "endDate must not be before startDate")
	}
	return s.repo.List(ctx, f)
}

// ListByOwner returns the caller's own claims, newest first.
func (s *Service) ListByOwner(ctx context.Context, caller auth.Identity) ([]*Claim, error) {
	return s.repo.ListByPatient(ctx, caller.UserID)
}

// Get returns one claim. Existence is checked before ownership, so a claim
// the caller may not see still reads as not found only when it truly does
// not exist.
func (s *Service) Get(ctx context.Context, caller auth.Identity, id uuid.UUID) (*Claim, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.CanViewClaim(c.PatientID) {
		return nil, apperr.Forbidden("you may only view your own claims")
	}
	return c, nil
}

// Review applies an insurer's decision. Nil review fields keep their stored
// values; present fields overwrite, zero values included. The reviewer is
// always recorded.
func (s *Service) Review(ctx context.Context, caller auth.Identity, id uuid.UUID, rev Review) (*Claim, error) {
	if rev.Status != nil {
		if _, err := ParseStatus(string(*rev.Status)); err != nil {
			return nil, apperr.Validation("status", err.Error())
		}
	}
	if rev.ApprovedAmount != nil && *rev.ApprovedAmount < 0 {
		return nil, apperr.Validation("approvedAmount", "approved amount must not be negative")
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if rev.Status != nil {
		c.Status = *rev.Status
	}
	if rev.ApprovedAmount != nil {
		c.ApprovedAmount = *rev.ApprovedAmount
	}
	if rev.InsurerComments != nil {
		c.InsurerComments = *rev.InsurerComments
	}
	reviewer := caller.UserID
	c.ReviewedBy = &reviewer

	if err := s.repo.UpdateReview(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
