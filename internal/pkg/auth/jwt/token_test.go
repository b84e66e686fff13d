package jwt

import (
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken(&Claims{Name: "ops", Role: RoleAdmin}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ParseToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}

	if claims.Name != "ops" || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if !claims.IsAdmin() {
		t.Fatal("expected admin claims")
	}
	if claims.Issuer != TokenIssuer {
		t.Fatalf("expected issuer %q, got %q", TokenIssuer, claims.Issuer)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken(&Claims{Name: "ops", Role: RoleAdmin}, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, "a different secret"); err == nil {
		t.Fatal("expected verification failure under a different secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken(&Claims{Name: "ops", Role: RoleAdmin}, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ParseToken(token, testSecret); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-jwt", testSecret); err == nil {
		t.Fatal("expected malformed token to be rejected")
	}
}

func TestIsAdminRole(t *testing.T) {
	cases := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{"user", false},
		{"", false},
	}

	for _, tc := range cases {
		c := &Claims{Role: tc.role}
		if got := c.IsAdmin(); got != tc.want {
			t.Errorf("IsAdmin() with role %q = %v, want %v", tc.role, got, tc.want)
		}
	}

	var nilClaims *Claims
	if nilClaims.IsAdmin() {
		t.Error("nil claims must not be admin")
	}
}
