package auth

import (
	"testing"
	"time"

	apperrors "trade2cart/internal/errors"
)

const testSecret = "test-secret"

func TestIssueAndParseToken(t *testing.T) {
	token, err := IssueToken("9876543210", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	principal, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if principal.Phone != "9876543210" {
		t.Errorf("expected phone 9876543210, got %s", principal.Phone)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := IssueToken("9876543210", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = ParseToken(token, "other-secret")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}
}

func TestParseToken_Expired(t *testing.T) {
	token, err := IssueToken("9876543210", testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("expected error for expired token, got nil")
	}
}

func TestIssueToken_EmptySecret(t *testing.T) {
	if _, err := IssueToken("9876543210", "", time.Hour); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}

func TestParseToken_Garbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", testSecret); err == nil {
		t.Fatal("expected error, got nil")
	}
}
