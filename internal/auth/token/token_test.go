package token

import (
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
)

func testNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake.NewNode: %v", err)
	}
	return node
}

func TestIssueAndParse(t *testing.T) {
	node := testNode(t)
	issuer := NewIssuer("test-secret", time.Hour)

	userID := node.Generate()
	tokenString, err := issuer.Issue(userID, "admin@example.com", "Admin")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	claims, err := issuer.Parse(tokenString)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Email != "admin@example.com" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	parsedID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID returned error: %v", err)
	}
	if parsedID != userID {
		t.Fatalf("subject roundtrip mismatch: got %s want %s", parsedID, userID)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	node := testNode(t)
	issuer := NewIssuer("test-secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	tokenString, err := issuer.Issue(node.Generate(), "admin@example.com", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if _, err := other.Parse(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseRejectsExpired(t *testing.T) {
	node := testNode(t)
	issuer := NewIssuer("test-secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().UTC().Add(-2 * time.Minute) }

	tokenString, err := issuer.Issue(node.Generate(), "admin@example.com", "")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	issuer.now = func() time.Time { return time.Now().UTC() }
	if _, err := issuer.Parse(tokenString); !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	if _, err := issuer.Parse("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
