package auth

import (
	"testing"
	"time"

	apperrors "trade2cart/internal/errors"
)

func TestChallengeStore_VerifySuccess(t *testing.T) {
	store := NewChallengeStore(5 * time.Minute)

	requestID, code, err := store.Create("9876543210")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(code) != 4 {
		t.Errorf("expected 4-digit code, got %q", code)
	}

	phone, err := store.Verify(requestID, code)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if phone != "9876543210" {
		t.Errorf("expected phone 9876543210, got %s", phone)
	}
}

func TestChallengeStore_WrongCode(t *testing.T) {
	store := NewChallengeStore(5 * time.Minute)

	requestID, code, err := store.Create("9876543210")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	wrong := "0000"
	if wrong == code {
		wrong = "1111"
	}

	if _, err := store.Verify(requestID, wrong); err == nil {
		t.Fatal("expected error for wrong code, got nil")
	} else if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}

	// Single use: even the right code must fail now.
	if _, err := store.Verify(requestID, code); err == nil {
		t.Error("expected error after consumed challenge, got nil")
	}
}

func TestChallengeStore_UnknownRequest(t *testing.T) {
	store := NewChallengeStore(5 * time.Minute)

	_, err := store.Verify("no-such-request", "1234")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}
}

func TestChallengeStore_Expiry(t *testing.T) {
	store := NewChallengeStore(5 * time.Minute)
	current := time.Now()
	store.now = func() time.Time { return current }

	requestID, code, err := store.Create("9876543210")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	current = current.Add(6 * time.Minute)

	if _, err := store.Verify(requestID, code); err == nil {
		t.Fatal("expected error for expired challenge, got nil")
	} else if _, ok := apperrors.IsUnauthorizedError(err); !ok {
		t.Errorf("expected UnauthorizedError, got %T", err)
	}
}
