package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	userID := uuid.New()

	token, err := tm.Issue(userID, RolePatient)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	id, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if id.UserID != userID {
		t.Errorf("expected user %s, got %s", userID, id.UserID)
	}
	if id.Role != RolePatient {
		t.Errorf("expected role patient, got %s", id.Role)
	}
}

func TestTokenManager_VerifyExpired(t *testing.T) {
	tm := NewTokenManager(testSecret, -time.Minute)
	token, err := tm.Issue(uuid.New(), RoleInsurer)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	if _, err := tm.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestTokenManager_VerifyWrongSecret(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	token, err := tm.Issue(uuid.New(), RolePatient)
	if err != nil {
		t.Fatalf("Issue() error: %v", err)
	}

	other := NewTokenManager([]byte("ffffffffffffffffffffffffffffffff"), time.Hour)
	if _, err := other.Verify(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestTokenManager_VerifyGarbage(t *testing.T) {
	tm := NewTokenManager(testSecret, time.Hour)
	if _, err := tm.Verify("not-a-token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestParseRole(t *testing.T) {
	if _, err := ParseRole("patient"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseRole("insurer"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Error("expected error for unknown role")
	}
	if _, err := ParseRole(""); err == nil {
		t.Error("expected error for empty role")
	}
}

func TestIdentity_CanViewClaim(t *testing.T) {
	owner := uuid.New()
	other := uuid.New()

	tests := []struct {
		name string
		id   Identity
		want bool
	}{
		{"insurer reads any", Identity{UserID: other, Role: RoleInsurer}, true},
		{"patient reads own", Identity{UserID: owner, Role: RolePatient}, true},
		{"patient blocked from others", Identity{UserID: other, Role: RolePatient}, false},
		{"unknown role blocked", Identity{UserID: owner, Role: "auditor"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.id.CanViewClaim(owner); got != tt.want {
				t.Errorf("CanViewClaim() = %v, want %v", got, tt.want)
			}
		})
	}
}
