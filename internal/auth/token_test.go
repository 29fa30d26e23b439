package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/storeratings/storeratings/internal/domain"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	issuer := NewIssuer("test-secret", 24*time.Hour)

	token, err := issuer.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	identity, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Fatalf("UserID = %q, want user-1", identity.UserID)
	}
	if identity.Role != domain.RoleUser {
		t.Fatalf("Role = %q, want USER", identity.Role)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Second)

	token, err := issuer.Issue("user-1", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify expired token error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	other := NewIssuer("other-secret", time.Hour)

	token, err := issuer.Issue("user-1", domain.RoleStore)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := other.Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify with wrong secret error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyTamperedToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("user-1", domain.RoleUser)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	if _, err := issuer.Verify(tampered); err != ErrInvalidToken {
		t.Fatalf("Verify tampered token error = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyMalformedToken(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := issuer.Verify(token); err != ErrInvalidToken {
			t.Fatalf("Verify(%q) error = %v, want ErrInvalidToken", token, err)
		}
	}
}

func TestVerifyUnknownRoleClaim(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	// Issue does not validate the role; Verify must reject what it cannot map
	// onto the closed role set.
	token, err := issuer.Issue("user-1", domain.Role("SUPERUSER"))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := issuer.Verify(token); err != ErrInvalidToken {
		t.Fatalf("Verify unknown role error = %v, want ErrInvalidToken", err)
	}
}
