package token

import (
	"testing"
	"time"
)

func TestIssueVerify(t *testing.T) {
	issuer, err := NewIssuer("secret", time.Hour)
	if err != nil {
		t.Fatalf("new issuer: %v", err)
	}

	signed, claims, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed == "" {
		t.Fatal("empty token")
	}
	if claims.ID == "" {
		t.Fatal("empty jti")
	}
	if claims.UserID() != 42 {
		t.Fatalf("claims user id %d, want 42", claims.UserID())
	}

	got, err := issuer.Verify(signed)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got.ID != claims.ID {
		t.Fatalf("jti %q, want %q", got.ID, claims.ID)
	}
	if got.UserID() != 42 {
		t.Fatalf("verified user id %d, want 42", got.UserID())
	}
}

func TestIssueUniqueIDs(t *testing.T) {
	issuer, _ := NewIssuer("secret", time.Hour)

	_, a, _ := issuer.Issue(1)
	_, b, _ := issuer.Issue(1)
	if a.ID == b.ID {
		t.Fatalf("two tokens share jti %q", a.ID)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer, _ := NewIssuer("secret", time.Hour)
	other, _ := NewIssuer("different", time.Hour)

	signed, _, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := other.Verify(signed); err == nil {
		t.Fatal("expected verification failure with wrong secret")
	}
}

func TestVerifyTampered(t *testing.T) {
	issuer, _ := NewIssuer("secret", time.Hour)

	signed, _, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	tampered := signed[:len(signed)-2] + "xx"
	if _, err := issuer.Verify(tampered); err == nil {
		t.Fatal("expected verification failure for tampered token")
	}
}

func TestVerifyExpired(t *testing.T) {
	issuer, _ := NewIssuer("secret", time.Nanosecond)

	signed, _, err := issuer.Issue(1)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := issuer.Verify(signed); err == nil {
		t.Fatal("expected verification failure for expired token")
	}
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	if _, err := NewIssuer("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}
