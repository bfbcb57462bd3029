package security

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestHashAndVerifyPassword(t *testing.T) {
	const password = "Tr0ub4dour&Horse"

	encoded, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !strings.HasPrefix(encoded, "argon2id$v=19$") {
		t.Fatalf("unexpected hash prefix: %s", encoded)
	}

	ok, err := VerifyPassword(password, encoded)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Fatal("expected password to verify")
	}

	ok, err = VerifyPassword("wrong-password", encoded)
	if err != nil {
		t.Fatalf("VerifyPassword mismatch: %v", err)
	}
	if ok {
		t.Fatal("expected mismatch to fail verification")
	}
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	if _, err := VerifyPassword("whatever", "not-an-encoded-hash"); err == nil {
		t.Fatal("expected error for malformed hash")
	}

	ok, err := VerifyPassword("", "")
	if err != nil {
		t.Fatalf("empty inputs: %v", err)
	}
	if ok {
		t.Fatal("empty inputs must never verify")
	}
}

func TestConfigureArgon2Rejected(t *testing.T) {
	err := ConfigureArgon2(Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	if err == nil {
		t.Fatal("expected low memory config to be rejected")
	}
}

func TestJWTIssueAndParse(t *testing.T) {
	mgr, err := NewJWTManager(strings.Repeat("s", 32), "user-access-service", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := mgr.Issue("user-1", "ent-1", "HR")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := mgr.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if claims.UserID != "user-1" || claims.EnterpriseID != "ent-1" || claims.RoleCode != "HR" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTExpired(t *testing.T) {
	mgr, err := NewJWTManager(strings.Repeat("s", 32), "user-access-service", time.Minute)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	issued := time.Now()
	mgr.WithClock(func() time.Time { return issued })

	token, err := mgr.Issue("user-1", "ent-1", "HR")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	mgr.WithClock(func() time.Time { return issued.Add(2 * time.Minute) })

	if _, err := mgr.Parse(token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestJWTWrongSecret(t *testing.T) {
	issuer, err := NewJWTManager(strings.Repeat("a", 32), "user-access-service", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}
	verifier, err := NewJWTManager(strings.Repeat("b", 32), "user-access-service", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager: %v", err)
	}

	token, err := issuer.Issue("user-1", "ent-1", "HR")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	if _, err := verifier.Parse(token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestPasswordValidator(t *testing.T) {
	validator := DefaultPasswordValidator()

	if err := validator.Validate("short"); err == nil {
		t.Fatal("expected short password to be rejected")
	}

	if err := validator.Validate("alllowercaseonly"); err == nil {
		t.Fatal("expected single character class to be rejected")
	}

	if err := validator.Validate("Viol3t-Meadow!Lamp"); err != nil {
		t.Fatalf("expected strong password to pass: %v", err)
	}
}
