// Package claim implements the insurance claim workflow: patients submit
// claims with a supporting document, insurers list, inspect, and review
// them.
package claim

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending  Status = "Pending"
	StatusApproved Status = "Approved"
	StatusRejected Status = "Rejected"
)

// ParseStatus validates a status string.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown status: %s", s)
	}
}

type Claim struct {
	ID              uuid.UUID  `json:"id"`
	PatientID       uuid.UUID  `json:"patientId"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	ClaimAmount     float64    `json:"claimAmount"`
	Description     string     `json:"description"`
	Document        string     `json:"document"`
	Status          Status     `json:"status"`
	ApprovedAmount  float64    `json:"approvedAmount"`
	InsurerComments string     `json:"insurerComments"`
	ReviewedBy      *uuid.UUID `json:"reviewedBy,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// SubmitInput carries the form fields of a new claim. The supporting
// document is uploaded separately and recorded as a stored path.
type SubmitInput struct {
	Name        string
	Email       string
	ClaimAmount float64
	Description string
	Document    string
}

// Review carries an insurer's decision. Nil fields are left unchanged;
// present fields overwrite, including zero values, so clearing a comment or
// an approved amount is distinct from omitting it.
type Review struct {
	Status          *Status  `json:"status"`
	ApprovedAmount  *float64 `json:"approvedAmount"`
	InsurerComments *string  `json:"insurerComments"`
}

// Filter narrows claim listings. Nil fields match everything. StartDate and
// EndDate are set together or not at all.
type Filter struct {
	Status    *Status
	StartDate *time.Time
	EndDate   *time.Time
	MinAmount *float64
	MaxAmount *float64
}
